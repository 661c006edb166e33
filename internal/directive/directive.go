// Package directive parses %-prefixed control lines into typed commands.
//
// A directive line has the form "%<LETTER>[ <ARG>]". Fields are separated by a
// single space and only the first argument is read; anything after it is ignored.
package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/roster/internal/collection"
	"github.com/matsen/roster/internal/record"
)

// Prefix marks a line as a directive.
const Prefix = "%"

// Directive errors.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidSortKey  = errors.New("invalid sort key")
)

// UnknownDirectiveError reports an unrecognized directive letter.
type UnknownDirectiveError struct {
	Letter string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive %q", Prefix+e.Letter)
}

// IsUnknownDirective returns true if err is or wraps an *UnknownDirectiveError.
func IsUnknownDirective(err error) bool {
	var ue *UnknownDirectiveError
	return errors.As(err, &ue)
}

// Command is a parsed directive. The set of implementations is closed.
type Command interface {
	// Letter returns the directive letter without the prefix.
	Letter() string
	command()
}

// Quit terminates the session (%Q).
type Quit struct{}

// Count reports the number of records (%C).
type Count struct{}

// Print displays a prefix, suffix, or all records (%P n).
type Print struct {
	N int
}

// Write saves all records to a file (%W path).
type Write struct {
	Path string
}

// Read feeds every line of a file back through the classifier (%R path).
type Read struct {
	Path string
}

// Sort reorders the collection (%S key).
type Sort struct {
	Key collection.SortKey
}

// Find displays records with a field exactly equal to Word (%F word).
type Find struct {
	Word string
}

// Unknown is a directive with an unrecognized letter.
type Unknown struct {
	Raw string
}

func (Quit) Letter() string { return "Q" }
func (Count) Letter() string { return "C" }
func (Print) Letter() string { return "P" }
func (Write) Letter() string { return "W" }
func (Read) Letter() string { return "R" }
func (Sort) Letter() string { return "S" }
func (Find) Letter() string { return "F" }
func (u Unknown) Letter() string { return u.Raw }

func (Quit) command() {}
func (Count) command() {}
func (Print) command() {}
func (Write) command() {}
func (Read) command() {}
func (Sort) command() {}
func (Find) command() {}
func (Unknown) command() {}

// IsDirective reports whether line is a directive rather than record data.
func IsDirective(line string) bool {
	return strings.HasPrefix(line, Prefix)
}

// Parse converts a directive line (terminator already removed) into a Command.
// An unrecognized letter yields Unknown with a nil error; executing it is what fails.
func Parse(line string) (Command, error) {
	fields := strings.Split(line, " ")
	letter := strings.TrimPrefix(fields[0], Prefix)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch letter {
	case "Q":
		return Quit{}, nil
	case "C":
		return Count{}, nil
	case "P":
		n, err := intArg(letter, arg)
		if err != nil {
			return nil, err
		}
		return Print{N: n}, nil
	case "W":
		if arg == "" {
			return nil, missing(letter)
		}
		return Write{Path: arg}, nil
	case "R":
		if arg == "" {
			return nil, missing(letter)
		}
		return Read{Path: arg}, nil
	case "S":
		n, err := intArg(letter, arg)
		if err != nil {
			return nil, err
		}
		key := collection.SortKey(n)
		if !key.Valid() {
			return nil, fmt.Errorf("%w: %d (expected 1-5)", ErrInvalidSortKey, n)
		}
		return Sort{Key: key}, nil
	case "F":
		if arg == "" {
			return nil, missing(letter)
		}
		return Find{Word: arg}, nil
	}
	return Unknown{Raw: letter}, nil
}

func missing(letter string) error {
	return fmt.Errorf("%w for %s%s", ErrMissingArgument, Prefix, letter)
}

func intArg(letter, arg string) (int, error) {
	if arg == "" {
		return 0, missing(letter)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &record.ParseError{Field: "argument", Value: arg, Reason: "not an integer"}
	}
	return n, nil
}
