// Package session interprets a stream of lines against a record collection.
//
// Each line is either a directive (see package directive) or a data line that
// encodes one record. Apply is the single entry point for both the top-level
// input and the lines of files loaded with %R, so nested files behave exactly
// like typed input.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/matsen/roster/internal/collection"
	"github.com/matsen/roster/internal/directive"
	"github.com/matsen/roster/internal/logging"
	"github.com/matsen/roster/internal/record"
	"github.com/matsen/roster/internal/storage"
)

// MaxReadDepth limits how deeply %R directives may nest.
const MaxReadDepth = 32

// ErrQuit is returned when a %Q directive is executed, including from inside a loaded file.
var ErrQuit = errors.New("quit")

// ErrReadDepth is wrapped in the IOError returned when %R nesting exceeds MaxReadDepth.
var ErrReadDepth = errors.New("read directives nested too deeply")

// ErrorReporter writes a per-line error to the session output.
type ErrorReporter func(w io.Writer, err error)

// Session owns a Collection and applies lines to it.
// It is not safe for concurrent use.
type Session struct {
	coll   *collection.Collection
	out    io.Writer
	log    *slog.Logger
	prompt string
	report ErrorReporter
	depth  int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithPrompt writes prompt to the output before each line Run reads.
func WithPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// WithErrorReporter replaces the default "Error: <message>" line.
func WithErrorReporter(r ErrorReporter) Option {
	return func(s *Session) { s.report = r }
}

// New returns a Session with an empty collection that prints to out.
func New(out io.Writer, opts ...Option) *Session {
	s := &Session{
		coll:   collection.New(),
		out:    out,
		log:    logging.Discard(),
		report: ReportError,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportError writes "Error: <message>" on its own line.
func ReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}

// Collection returns the session's collection.
func (s *Session) Collection() *collection.Collection {
	return s.coll
}

// Run applies every line read from r until end of input or %Q.
// A failing line is reported to the output and the loop continues.
// Returns ErrQuit after %Q, nil at end of input, or the read error.
func (s *Session) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), storage.MaxLineCapacity)

	for {
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := s.Apply(scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return ErrQuit
			}
			s.log.Info("line failed", "kind", Kind(err), "error", err)
			s.report(s.out, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// Load feeds the file at path through Apply, the same way %R does.
func (s *Session) Load(path string) error {
	return s.Execute(directive.Read{Path: path})
}

// Apply classifies one input line and applies it. Only the line terminator is
// removed; whitespace inside fields is kept.
func (s *Session) Apply(line string) error {
	line = trimTerminator(line)

	if directive.IsDirective(line) {
		cmd, err := directive.Parse(line)
		if err != nil {
			return err
		}
		return s.Execute(cmd)
	}

	r, err := record.ParseLine(line)
	if err != nil {
		return err
	}
	s.write(r.Display())
	s.coll.Append(r)
	s.log.Debug("record added", "id", r.ID, "count", s.coll.Len())
	return nil
}

// Execute runs a parsed directive against the collection.
func (s *Session) Execute(cmd directive.Command) error {
	s.log.Debug("directive", "letter", cmd.Letter())

	switch c := cmd.(type) {
	case directive.Quit:
		return ErrQuit
	case directive.Count:
		s.write(fmt.Sprintf("%d items\n", s.coll.Len()))
	case directive.Print:
		s.display(s.coll.Select(c.N))
	case directive.Write:
		recs := s.coll.Records()
		if err := storage.WriteAll(c.Path, recs); err != nil {
			return err
		}
		s.log.Debug("wrote records", "path", c.Path, "count", len(recs))
	case directive.Read:
		return s.read(c.Path)
	case directive.Sort:
		return s.coll.Sort(c.Key)
	case directive.Find:
		s.display(s.coll.Find(c.Word))
	case directive.Unknown:
		return &directive.UnknownDirectiveError{Letter: c.Raw}
	default:
		return fmt.Errorf("unhandled directive %T", cmd)
	}
	return nil
}

// read applies each line of path, stopping at the first failure.
// Records added before the failure stay in the collection.
func (s *Session) read(path string) error {
	if s.depth >= MaxReadDepth {
		return &storage.IOError{Op: "read", Path: path, Err: ErrReadDepth}
	}
	s.depth++
	defer func() { s.depth-- }()

	before := s.coll.Len()
	err := storage.ReadLines(path, s.Apply)
	s.log.Debug("read file", "path", path, "added", s.coll.Len()-before, "depth", s.depth)
	return err
}

func (s *Session) display(recs []record.Record) {
	var sb strings.Builder
	for _, r := range recs {
		sb.WriteString(r.Display())
	}
	s.write(sb.String())
}

func (s *Session) write(text string) {
	if text == "" {
		return
	}
	if _, err := io.WriteString(s.out, text); err != nil {
		s.log.Error("writing output", "error", err)
	}
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
