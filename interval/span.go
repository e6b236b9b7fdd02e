package interval

import (
	"fmt"
	"sort"
)

// Span is a closed 1-based interval on a named sequence.
type Span struct {
	Seqid  string
	Start  int
	End    int
	Strand byte
}

// DistMode selects how Distance measures two spans.
type DistMode int

const (
	// ModeOuter ("ss") measures the outer span, from the leftmost start to
	// the rightmost end. For mate pairs this is the insert size.
	ModeOuter DistMode = iota
	// ModeInner ("ee") measures the gap between the facing edges. A
	// negative value means the spans overlap.
	ModeInner
)

// ParseDistMode maps the distance-mode spellings "ss" (outer) and "ee"
// (inner) to their DistMode.
func ParseDistMode(s string) (DistMode, error) {
	switch s {
	case "ss":
		return ModeOuter, nil
	case "ee":
		return ModeInner, nil
	}
	return 0, fmt.Errorf("invalid distance mode %q, want ss or ee", s)
}

func (m DistMode) String() string {
	if m == ModeInner {
		return "ee"
	}
	return "ss"
}

// Distance returns the distance between two spans together with their
// strand pair. The spans are ordered first so that the one with the smaller
// start comes left; the strand pair reflects that order. Spans on different
// seqids have distance -1.
func Distance(a, b Span, mode DistMode) (int, string) {
	if a.Start > b.Start {
		a, b = b, a
	}
	dist := -1
	if a.Seqid == b.Seqid {
		switch mode {
		case ModeOuter:
			dist = b.End - a.Start + 1
		case ModeInner:
			dist = b.Start - a.End - 1
		}
	}
	return dist, string([]byte{a.Strand, b.Strand})
}

// Union returns the total number of positions covered by spans. Each seqid
// counts separately; overlapping and adjacent spans collapse.
func Union(spans []Span) int {
	sorted := append([]Span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Seqid != b.Seqid {
			return a.Seqid < b.Seqid
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	var (
		total  int
		seqid  string
		lo, hi int
		open   bool
	)
	flush := func() {
		if open {
			total += hi - lo + 1
		}
	}
	for _, s := range sorted {
		if !open || s.Seqid != seqid || s.Start > hi+1 {
			flush()
			seqid, lo, hi, open = s.Seqid, s.Start, s.End, true
			continue
		}
		if s.End > hi {
			hi = s.End
		}
	}
	flush()
	return total
}

// MinMax returns the smallest start and the largest end over spans,
// ignoring seqids. It panics on an empty slice.
func MinMax(spans []Span) (int, int) {
	lo, hi := spans[0].Start, spans[0].End
	for _, s := range spans[1:] {
		if s.Start < lo {
			lo = s.Start
		}
		if s.End > hi {
			hi = s.End
		}
	}
	return lo, hi
}
