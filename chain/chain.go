// Package chain merges fragmented alignment hits (HSPs) that lie close
// together on both coordinate axes into single spanning records.
package chain

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/encoding/blast"
	"github.com/grailbio/blast/interval"
)

type axis int

const (
	queryAxis axis = iota
	subjectAxis
)

// hspDistance returns the absolute gap between two hits measured on one
// coordinate axis. Seqids and strands do not contribute; overlapping hits
// report their overlap size.
func hspDistance(a, b blast.Record, ax axis) int {
	var sa, sb interval.Span
	if ax == queryAxis {
		sa = interval.Span{Start: a.QStart, End: a.QStop}
		sb = interval.Span{Start: b.QStart, End: b.QStop}
	} else {
		sa = interval.Span{Start: a.SStart, End: a.SStop}
		sb = interval.Span{Start: b.SStart, End: b.SStop}
	}
	d, _ := interval.Distance(sa, sb, interval.ModeInner)
	if d < 0 {
		d = -d
	}
	return d
}

// Combine merges a cluster of hits into one record. The first record is the
// base; alignment lengths, mismatch, gap and score columns add up, the
// coordinate columns take the enclosing envelope, and the identity is
// recomputed from the summed columns. All members must share query, subject
// and orientation; a mismatch is a logic error in the caller and crashes.
func Combine(recs []blast.Record) blast.Record {
	m := recs[0]
	if len(recs) == 1 {
		return m
	}
	for _, b := range recs[1:] {
		if m.Query != b.Query || m.Subject != b.Subject {
			log.Fatalf("chain: cannot combine %s/%s with %s/%s",
				m.Query, m.Subject, b.Query, b.Subject)
		}
		if m.Orientation != b.Orientation {
			log.Fatalf("chain: mixed orientations for %s/%s", m.Query, m.Subject)
		}
		m.HitLen += b.HitLen
		m.NMismatch += b.NMismatch
		m.NGaps += b.NGaps
		if b.QStart < m.QStart {
			m.QStart = b.QStart
		}
		if b.QStop > m.QStop {
			m.QStop = b.QStop
		}
		if b.SStart < m.SStart {
			m.SStart = b.SStart
		}
		if b.SStop > m.SStop {
			m.SStop = b.SStop
		}
		m.Score += b.Score
	}
	m.PctID = 100 - float64(m.NMismatch+m.NGaps)*100/float64(m.HitLen)
	return m
}

// Chain clusters hits that share a (query, subject) pair and orientation
// and lie within xdist on the query axis and ydist on the subject axis,
// then merges each cluster with Combine. Hits joining no cluster pass
// through unchanged. The result is ordered by descending score; clusters
// tied on score keep their first-seen order.
func Chain(recs []blast.Record, xdist, ydist int) []blast.Record {
	sorted := append([]blast.Record(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Query != sorted[j].Query {
			return sorted[i].Query < sorted[j].Query
		}
		return sorted[i].Subject < sorted[j].Subject
	})

	g := NewGrouper(len(sorted))
	for lo := 0; lo < len(sorted); {
		hi := lo
		for hi < len(sorted) &&
			sorted[hi].Query == sorted[lo].Query &&
			sorted[hi].Subject == sorted[lo].Subject {
			hi++
		}
		part := sorted[lo:hi]
		sort.Slice(part, func(i, j int) bool {
			a, b := part[i], part[j]
			if a.QStart != b.QStart {
				return a.QStart < b.QStart
			}
			if a.QStop != b.QStop {
				return a.QStop < b.QStop
			}
			if a.SStart != b.SStart {
				return a.SStart < b.SStart
			}
			return a.SStop < b.SStop
		})
		for i := range part {
			g.Add(lo + i)
			for j := i + 1; j < len(part); j++ {
				if part[i].Orientation != part[j].Orientation {
					continue
				}
				if hspDistance(part[i], part[j], queryAxis) > xdist {
					continue
				}
				if hspDistance(part[i], part[j], subjectAxis) > ydist {
					continue
				}
				g.Join(lo+i, lo+j)
			}
		}
		lo = hi
	}

	groups := g.Groups()
	out := make([]blast.Record, 0, len(groups))
	for _, members := range groups {
		cluster := make([]blast.Record, len(members))
		for k, idx := range members {
			cluster[k] = sorted[idx]
		}
		out = append(out, Combine(cluster))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
