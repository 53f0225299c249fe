// Package splitsql splits raw SQL script text into individual statements.
// It tracks quoted string literals, strips line comments, and honors
// DELIMITER directive lines that change the statement terminator mid-stream.
package splitsql

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

const (
	commentStart     = "--"
	stringDelimiter  = "'"
	defaultDelimiter = ";"
)

// delimiterLinePattern matches a directive line like "DELIMITER //".
// The new delimiter takes effect from the following line onward.
var delimiterLinePattern = regexp.MustCompile(`(?i)^\s*delimiter\s+(.*?)\s*$`)

// Splitter scans SQL text and yields one statement at a time, in source
// order. It follows the bufio.Scanner idiom:
//
//	s := splitsql.New(r)
//	for s.Scan() {
//	    exec(s.Statement())
//	}
//	if err := s.Err(); err != nil { ... }
//
// A Splitter is single-use; construct a fresh one per script body.
//
// String literals use simple quote-toggle semantics: there is no support
// for escaped quotes, double-quoted identifiers, or dollar quoting.
type Splitter struct {
	lines *bufio.Scanner

	buf       strings.Builder // statement accumulated so far
	inString  bool
	delimiter string

	pending []string // statements closed on the current line, not yet returned
	current string
	done    bool
	err     error
}

// New creates a Splitter reading from r with the default ";" delimiter.
func New(r io.Reader) *Splitter {
	return &Splitter{
		lines:     bufio.NewScanner(r),
		delimiter: defaultDelimiter,
	}
}

// Scan advances to the next statement. It returns false when the input is
// exhausted or a read error occurred; check Err afterwards.
func (s *Splitter) Scan() bool {
	for len(s.pending) == 0 {
		if s.done {
			return false
		}
		if !s.lines.Scan() {
			s.err = s.lines.Err()
			s.done = true
			// Flush whatever is left in the buffer once the input ends.
			if stmt := strings.TrimSpace(s.buf.String()); s.err == nil && stmt != "" {
				s.pending = append(s.pending, stmt)
			}
			s.buf.Reset()
			continue
		}
		s.parseLine(s.lines.Text())
	}
	s.current = s.pending[0]
	s.pending = s.pending[1:]
	return true
}

// Statement returns the statement produced by the last successful Scan,
// with leading and trailing whitespace trimmed.
func (s *Splitter) Statement() string {
	return s.current
}

// Err returns the first error encountered while reading the input.
func (s *Splitter) Err() error {
	return s.err
}

// parseLine consumes one line of input, appending closed statements to the
// pending queue. A delimiter directive line contributes no SQL content.
func (s *Splitter) parseLine(line string) {
	if m := delimiterLinePattern.FindStringSubmatch(line); m != nil {
		s.delimiter = m[1]
		return
	}

	pos := 0
	for pos < len(line) {
		rest := line[pos:]
		switch {
		case !s.inString && strings.HasPrefix(rest, commentStart):
			// Rest of the line is a comment.
			return
		case !s.inString && s.delimiter != "" && strings.HasPrefix(rest, s.delimiter):
			if stmt := strings.TrimSpace(s.buf.String()); stmt != "" {
				s.pending = append(s.pending, stmt)
			}
			s.buf.Reset()
			pos += len(s.delimiter)
		case strings.HasPrefix(rest, stringDelimiter):
			s.inString = !s.inString
			s.buf.WriteString(stringDelimiter)
			pos += len(stringDelimiter)
		default:
			s.buf.WriteByte(line[pos])
			pos++
		}
	}
	// Statements may span lines; keep the line break in the buffer.
	s.buf.WriteByte('\n')
}

// SplitString splits a complete SQL script held in memory and returns its
// statements in order.
func SplitString(script string) []string {
	var stmts []string
	s := New(strings.NewReader(script))
	for s.Scan() {
		stmts = append(stmts, s.Statement())
	}
	return stmts
}
