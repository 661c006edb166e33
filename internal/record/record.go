// Package record defines the address-book record and its comma-separated line encoding.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the fixed calendar-date pattern used for parsing and display.
const DateLayout = "2006-01-02"

// FieldCount is the number of comma-separated fields in an encoded record.
const FieldCount = 5

// Separator is the line drawn above and below a displayed record.
const Separator = "-----"

// Record is a single address-book entry.
type Record struct {
	ID      uint32
	Name    string
	Date    time.Time
	Address string
	Note    string
}

// ErrMalformedRecord is returned when a data line does not split into FieldCount fields.
var ErrMalformedRecord = errors.New("malformed record")

// ParseError describes a field or argument that failed to parse.
type ParseError struct {
	Field  string // "id", "date", or "argument"
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// SplitFields splits a data line into exactly FieldCount fields.
// Only the first four commas separate fields; the note keeps any further commas.
func SplitFields(line string) ([]string, error) {
	fields := strings.SplitN(line, ",", FieldCount)
	if len(fields) < FieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, FieldCount, len(fields))
	}
	return fields, nil
}

// Parse builds a Record from exactly FieldCount fields.
// Nothing is returned unless every field parses.
func Parse(fields []string) (Record, error) {
	if len(fields) != FieldCount {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, FieldCount, len(fields))
	}

	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Record{}, &ParseError{Field: "id", Value: fields[0], Reason: "not an unsigned integer"}
	}

	date, err := time.Parse(DateLayout, fields[2])
	if err != nil {
		return Record{}, &ParseError{Field: "date", Value: fields[2], Reason: "expected YYYY-MM-DD"}
	}

	return Record{
		ID:      uint32(id),
		Name:    fields[1],
		Date:    date,
		Address: fields[3],
		Note:    fields[4],
	}, nil
}

// ParseLine splits and parses a data line.
func ParseLine(line string) (Record, error) {
	fields, err := SplitFields(line)
	if err != nil {
		return Record{}, err
	}
	return Parse(fields)
}

// DateString returns the date in DateLayout.
func (r Record) DateString() string {
	return r.Date.Format(DateLayout)
}

// IDString returns the id as a decimal string.
func (r Record) IDString() string {
	return strconv.FormatUint(uint64(r.ID), 10)
}

// CSV encodes the record as a single line without a terminator.
// Commas inside fields are not escaped, so only the note may safely contain them.
func (r Record) CSV() string {
	return strings.Join([]string{r.IDString(), r.Name, r.DateString(), r.Address, r.Note}, ",")
}

// Display returns the bordered multi-line block for the record, ending in a newline.
func (r Record) Display() string {
	var sb strings.Builder
	sb.WriteString(Separator + "\n")
	fmt.Fprintf(&sb, "ID: %d\n", r.ID)
	fmt.Fprintf(&sb, "Name: %s\n", r.Name)
	fmt.Fprintf(&sb, "Date: %s\n", r.DateString())
	fmt.Fprintf(&sb, "Addr: %s\n", r.Address)
	fmt.Fprintf(&sb, "Note: %s\n", r.Note)
	sb.WriteString(Separator + "\n")
	return sb.String()
}

// Matches reports whether word exactly equals the string form of any field.
func (r Record) Matches(word string) bool {
	return word == r.IDString() ||
		word == r.Name ||
		word == r.DateString() ||
		word == r.Address ||
		word == r.Note
}
