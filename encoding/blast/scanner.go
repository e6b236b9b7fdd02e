package blast

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading a stream of tabular
// hit lines. The Scan method parses the next record, returning a boolean
// indicating whether the scan succeeded. Scanning stops at the first
// malformed line; the resulting *ParseError is available from Err.
// Lines starting with '#' (-outfmt 7 comments) are skipped.
// Scanners are not threadsafe.
type Scanner struct {
	b   *bufio.Scanner
	err error
}

// NewScanner constructs a new Scanner that reads tabular hit lines from the
// provided reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan the next record into rec. Scan returns a boolean indicating whether
// the scan succeeded. Once Scan returns false, it never returns true again.
// Upon completion, the user should check the Err method to determine whether
// scanning stopped because of an error or because the end of the stream was
// reached.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		line := s.b.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		r, err := Parse(line)
		if err != nil {
			s.err = err
			return false
		}
		*rec = r
		return true
	}
	if s.err = s.b.Err(); s.err == nil {
		s.err = errEOF
	}
	return false
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// ReadAll reads records from r until EOF. It fails on the first malformed
// line.
func ReadAll(r io.Reader) ([]Record, error) {
	var (
		recs []Record
		rec  Record
	)
	s := NewScanner(r)
	for s.Scan(&rec) {
		recs = append(recs, rec)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
