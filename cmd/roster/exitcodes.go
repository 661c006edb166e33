package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, including %Q and end of input
	ExitError       = 1 // General error (invalid arguments, unreadable input)
	ExitConfigError = 2 // Configuration error (bad config file, invalid log level, missing index)
	ExitDataError   = 3 // Data error (file given to index fails to load)
)
