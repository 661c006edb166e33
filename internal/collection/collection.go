// Package collection holds the ordered in-memory sequence of records.
package collection

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matsen/roster/internal/record"
)

// SortKey selects the field a Collection is sorted by.
type SortKey int

// Sort keys, numbered as the sort directive accepts them.
const (
	SortByID SortKey = iota + 1
	SortByName
	SortByDate
	SortByAddress
	SortByNote
)

// Valid reports whether k names a sortable field.
func (k SortKey) Valid() bool {
	return k >= SortByID && k <= SortByNote
}

func (k SortKey) String() string {
	switch k {
	case SortByID:
		return "id"
	case SortByName:
		return "name"
	case SortByDate:
		return "date"
	case SortByAddress:
		return "address"
	case SortByNote:
		return "note"
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// Collection is an ordered sequence of records. It is not safe for concurrent use.
type Collection struct {
	records []record.Record
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{}
}

// Append adds a record at the end.
func (c *Collection) Append(r record.Record) {
	c.records = append(c.records, r)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of all records in current order.
func (c *Collection) Records() []record.Record {
	return slices.Clone(c.records)
}

// Head returns the first n records, or all of them if fewer exist.
func (c *Collection) Head(n int) []record.Record {
	n = min(max(n, 0), len(c.records))
	return slices.Clone(c.records[:n])
}

// Tail returns the last n records in their current relative order.
func (c *Collection) Tail(n int) []record.Record {
	n = min(max(n, 0), len(c.records))
	return slices.Clone(c.records[len(c.records)-n:])
}

// Select implements the print directive's count argument:
// n > 0 is a prefix, n < 0 a suffix of |n| records, and 0 is everything.
// The suffix keeps current order rather than being reversed.
func (c *Collection) Select(n int) []record.Record {
	switch {
	case n > 0:
		return c.Head(n)
	case n < 0:
		return c.Tail(-n)
	default:
		return c.Records()
	}
}

// Sort reorders the collection in place by key. Ties keep their prior order.
func (c *Collection) Sort(key SortKey) error {
	compare, err := comparator(key)
	if err != nil {
		return err
	}
	slices.SortStableFunc(c.records, compare)
	return nil
}

// Find returns the records matching word exactly, in current order.
func (c *Collection) Find(word string) []record.Record {
	var matches []record.Record
	for _, r := range c.records {
		if r.Matches(word) {
			matches = append(matches, r)
		}
	}
	return matches
}

func comparator(key SortKey) (func(a, b record.Record) int, error) {
	switch key {
	case SortByID:
		return func(a, b record.Record) int { return cmp.Compare(a.ID, b.ID) }, nil
	case SortByName:
		return func(a, b record.Record) int { return strings.Compare(a.Name, b.Name) }, nil
	case SortByDate:
		return func(a, b record.Record) int { return a.Date.Compare(b.Date) }, nil
	case SortByAddress:
		return func(a, b record.Record) int { return strings.Compare(a.Address, b.Address) }, nil
	case SortByNote:
		return func(a, b record.Record) int { return strings.Compare(a.Note, b.Note) }, nil
	}
	return nil, fmt.Errorf("unsupported sort key %d", int(key))
}
