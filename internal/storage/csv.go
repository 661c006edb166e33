// Package storage handles record persistence in comma-separated line files and SQLite.
package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/roster/internal/record"
)

// MaxLineCapacity is the maximum buffer size for reading a single line (1MB).
const MaxLineCapacity = 1024 * 1024

// IOError reports a failed file operation.
type IOError struct {
	Op   string // open, create, read, write
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError returns true if err is or wraps an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

// WriteAll writes records to path, one encoded record per line, creating or
// truncating the file. All lines are encoded before the file is touched.
func WriteAll(path string, recs []record.Record) error {
	var buf bytes.Buffer
	for _, r := range recs {
		buf.WriteString(r.CSV())
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadLines calls fn for each line of the file at path with the line terminator removed.
// Reading stops at the first error returned by fn, which is returned wrapped with the
// path and line number.
func ReadLines(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MaxLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := fn(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}
	return nil
}
