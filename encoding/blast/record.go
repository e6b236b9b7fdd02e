// Package blast contains code for reading and writing tabular alignment
// records as produced by BLAST -m8 / -outfmt 6 and compatible aligners
// (BLAT, LAST, nucmer via delta conversion).
package blast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/blast/encoding/bed"
)

// numColumns is the number of mandatory columns in a tabular hit line.
// Aligners may append optional columns; they are ignored.
const numColumns = 12

// ParseError describes a malformed tabular hit line.
type ParseError struct {
	// Line is the offending input line, without the trailing newline.
	Line string
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid blast line %q: %v", e.Line, e.Err)
}

// Record is one alignment hit. Subject coordinates are normalized on parse
// so that SStart <= SStop always holds; a hit whose raw subject interval was
// descending gets Orientation '-'. Query coordinates are kept as given.
type Record struct {
	Query     string
	Subject   string
	PctID     float64
	HitLen    int
	NMismatch int
	NGaps     int
	QStart    int
	QStop     int
	SStart    int
	SStop     int
	Evalue    float64
	Score     float64

	// Orientation is '+' or '-', derived from the raw subject interval.
	Orientation byte
}

// Parse parses one tabular hit line. Lines with fewer than numColumns
// tab-separated fields, or with malformed numeric fields, return a
// *ParseError carrying the offending line.
func Parse(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	f := strings.Split(line, "\t")
	if len(f) < numColumns {
		return Record{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("%d columns, expected at least %d", len(f), numColumns),
		}
	}
	var (
		r   Record
		err error
	)
	atoi := func(s string) int {
		if err != nil {
			return 0
		}
		var v int
		v, err = strconv.Atoi(s)
		return v
	}
	atof := func(s string) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = strconv.ParseFloat(s, 64)
		return v
	}
	r.Query = f[0]
	r.Subject = f[1]
	r.PctID = atof(f[2])
	r.HitLen = atoi(f[3])
	r.NMismatch = atoi(f[4])
	r.NGaps = atoi(f[5])
	r.QStart = atoi(f[6])
	r.QStop = atoi(f[7])
	r.SStart = atoi(f[8])
	r.SStop = atoi(f[9])
	r.Evalue = atof(f[10])
	r.Score = atof(f[11])
	if err != nil {
		return Record{}, &ParseError{Line: line, Err: err}
	}
	if r.SStart > r.SStop {
		r.SStart, r.SStop = r.SStop, r.SStart
		r.Orientation = '-'
	} else {
		r.Orientation = '+'
	}
	return r, nil
}

// String formats r as the 12 mandatory tabular columns. Subject coordinates
// are emitted in descending order when Orientation is '-', so parsing the
// result reproduces r exactly.
func (r Record) String() string {
	sstart, sstop := r.SStart, r.SStop
	if r.Orientation == '-' {
		sstart, sstop = sstop, sstart
	}
	return strings.Join([]string{
		r.Query,
		r.Subject,
		strconv.FormatFloat(r.PctID, 'g', -1, 64),
		strconv.Itoa(r.HitLen),
		strconv.Itoa(r.NMismatch),
		strconv.Itoa(r.NGaps),
		strconv.Itoa(r.QStart),
		strconv.Itoa(r.QStop),
		strconv.Itoa(sstart),
		strconv.Itoa(sstop),
		strconv.FormatFloat(r.Evalue, 'g', -1, 64),
		strconv.FormatFloat(r.Score, 'g', -1, 64),
	}, "\t")
}

// Swapped returns r with query and subject exchanged. The new query
// coordinates are the normalized subject interval; the new subject interval
// is the old query interval, reversed when Orientation is '-', then
// normalized again. The result equals what parsing the swapped text line
// would produce.
func (r Record) Swapped() Record {
	s := r
	s.Query, s.Subject = r.Subject, r.Query
	s.QStart, s.QStop = r.SStart, r.SStop
	e1, e2 := r.QStart, r.QStop
	if r.Orientation == '-' {
		e1, e2 = e2, e1
	}
	if e1 > e2 {
		s.SStart, s.SStop = e2, e1
		s.Orientation = '-'
	} else {
		s.SStart, s.SStop = e1, e2
		s.Orientation = '+'
	}
	return s
}

// Bed projects r onto the subject axis as a BED feature: the subject becomes
// the seqid, the query becomes the feature name.
func (r Record) Bed() bed.Feature {
	return bed.Feature{
		Seqid:  r.Subject,
		Start:  r.SStart,
		End:    r.SStop,
		Accn:   r.Query,
		Score:  strconv.FormatFloat(r.Score, 'g', -1, 64),
		Strand: r.Orientation,
	}
}
