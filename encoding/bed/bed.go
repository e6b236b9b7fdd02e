// Package bed contains code for reading and writing BED features. Feature
// start positions are 1-based inclusive in memory and 0-based half-open in
// the text form, following the usual BED convention.
package bed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError describes a malformed BED line.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid bed line %q: %v", e.Line, e.Err)
}

// Feature is one BED6 feature. Start is held 1-based inclusive; String
// emits Start-1. Missing optional columns parse as Accn "", Score "0" and
// Strand '+'; String always emits all six columns.
type Feature struct {
	Seqid  string
	Start  int
	End    int
	Accn   string
	Score  string
	Strand byte
}

// Parse parses one BED line of at least three columns.
func Parse(line string) (Feature, error) {
	line = strings.TrimRight(line, "\r\n")
	f := strings.Split(line, "\t")
	if len(f) < 3 {
		return Feature{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("%d columns, expected at least 3", len(f)),
		}
	}
	start, err := strconv.Atoi(f[1])
	if err != nil {
		return Feature{}, &ParseError{Line: line, Err: err}
	}
	end, err := strconv.Atoi(f[2])
	if err != nil {
		return Feature{}, &ParseError{Line: line, Err: err}
	}
	b := Feature{Seqid: f[0], Start: start + 1, End: end, Score: "0", Strand: '+'}
	if len(f) > 3 {
		b.Accn = f[3]
	}
	if len(f) > 4 {
		b.Score = f[4]
	}
	if len(f) > 5 && len(f[5]) > 0 {
		b.Strand = f[5][0]
	}
	return b, nil
}

func (b Feature) String() string {
	return strings.Join([]string{
		b.Seqid,
		strconv.Itoa(b.Start - 1),
		strconv.Itoa(b.End),
		b.Accn,
		b.Score,
		string(b.Strand),
	}, "\t")
}

// Len returns the feature span in bases.
func (b Feature) Len() int { return b.End - b.Start + 1 }

var errEOF = errors.New("eof")

// Scanner reads BED features from a stream, skipping '#' comments and
// track/browser header lines. Scanning stops at the first malformed line;
// the resulting *ParseError is available from Err.
type Scanner struct {
	b   *bufio.Scanner
	err error
}

// NewScanner constructs a new Scanner reading BED text from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan the next feature into feat, returning whether the scan succeeded.
func (s *Scanner) Scan(feat *Feature) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		line := s.b.Text()
		if strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") ||
			strings.HasPrefix(line, "browser") {
			continue
		}
		f, err := Parse(line)
		if err != nil {
			s.err = err
			return false
		}
		*feat = f
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
