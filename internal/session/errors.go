package session

import (
	"errors"

	"github.com/matsen/roster/internal/directive"
	"github.com/matsen/roster/internal/record"
	"github.com/matsen/roster/internal/storage"
)

// Error kinds reported by Kind.
const (
	KindParse            = "ParseError"
	KindMalformedRecord  = "MalformedRecord"
	KindMissingArgument  = "MissingArgument"
	KindInvalidSortKey   = "InvalidSortKey"
	KindUnknownDirective = "UnknownDirective"
	KindIO               = "IoError"
	KindOther            = "Error"
)

// Kind classifies an error produced while applying a line.
func Kind(err error) string {
	switch {
	case record.IsParseError(err):
		return KindParse
	case errors.Is(err, record.ErrMalformedRecord):
		return KindMalformedRecord
	case errors.Is(err, directive.ErrMissingArgument):
		return KindMissingArgument
	case errors.Is(err, directive.ErrInvalidSortKey):
		return KindInvalidSortKey
	case directive.IsUnknownDirective(err):
		return KindUnknownDirective
	case storage.IsIOError(err):
		return KindIO
	}
	return KindOther
}
