// Package main provides the roster CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/matsen/roster/internal/config"
	"github.com/matsen/roster/internal/logging"
	"github.com/matsen/roster/internal/session"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput  bool
	logLevelFlag string
	loadFiles    []string
	noAutoload   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Line-oriented address-book record manager",
	Long: `roster reads lines from standard input. Each line is either a record
or a directive.

Records have five comma-separated fields:
  <id>,<name>,<YYYY-MM-DD>,<address>,<note>

Directives:
  %Q          quit
  %C          print the number of records
  %P <n>      print the first n records (n<0: last |n|, 0: all)
  %W <file>   write all records to file
  %R <file>   read lines from file as if typed
  %S <1-5>    sort by id, name, date, address, or note
  %F <word>   print records with a field exactly equal to word`,
	Args:          cobra.NoArgs,
	RunE:          runSession,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	rootCmd.Flags().StringArrayVar(&loadFiles, "load", nil, "Read a file before standard input (repeatable)")
	rootCmd.Flags().BoolVar(&noAutoload, "no-autoload", false, "Skip autoload files from the config file")
	rootCmd.Version = Version
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithErrorReporter(reportError),
	}
	if isInteractive(os.Stdin) {
		opts = append(opts, session.WithPrompt(cfg.Prompt))
	}
	s := session.New(os.Stdout, opts...)

	for _, path := range preloadFiles(cfg) {
		if err := s.Load(path); err != nil {
			if errors.Is(err, session.ErrQuit) {
				return nil
			}
			logger.Info("preload failed", "path", path, "kind", session.Kind(err), "error", err)
			reportError(os.Stdout, err)
		}
	}

	err := s.Run(os.Stdin)
	if errors.Is(err, session.ErrQuit) {
		return nil
	}
	return err
}

// preloadFiles returns the config autoload files followed by --load files.
func preloadFiles(cfg *config.Config) []string {
	if noAutoload {
		return loadFiles
	}
	return append(slices.Clone(cfg.Autoload), loadFiles...)
}

// isInteractive reports whether f is a terminal.
func isInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// mustLoadConfig loads configuration and applies flag overrides, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	return cfg
}

// mustNewLogger builds the stderr logger for cfg, exits on an invalid level.
func mustNewLogger(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return logging.New(os.Stderr, level)
}
