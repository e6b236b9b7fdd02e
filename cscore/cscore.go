// Package cscore scores query/subject pairs by how close each hit comes to
// being a reciprocal best hit. The c-score of a hit is its alignment score
// divided by the best score either of its ids reaches anywhere in the input;
// a c-score of one is a reciprocal best hit.
package cscore

import (
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/blast/encoding/blast"
)

// DefaultCutoff reports only reciprocal best hits and their exact ties.
const DefaultCutoff = 0.9999

// BestScores indexes the best score seen for every id across the whole
// input, whether the id appeared as a query or as a subject. Queries and
// subjects share one namespace.
func BestScores(recs []blast.Record) map[string]float64 {
	best := make(map[string]float64)
	for _, r := range recs {
		if r.Score > best[r.Query] {
			best[r.Query] = r.Score
		}
		if r.Score > best[r.Subject] {
			best[r.Subject] = r.Score
		}
	}
	return best
}

// Pair is a query/subject pair with its c-score.
type Pair struct {
	Query   string
	Subject string
	C       float64
}

// Scores computes c = score / max(best[query], best[subject]) for every
// record, keeps those with c strictly above cutoff, and reduces to the
// maximum c per (query, subject) pair. Pairs come out sorted by query, then
// subject.
func Scores(recs []blast.Record, best map[string]float64, cutoff float64) []Pair {
	type key struct{ q, s string }
	pairs := make(map[key]float64)
	for _, r := range recs {
		den := best[r.Query]
		if bs := best[r.Subject]; bs > den {
			den = bs
		}
		c := r.Score / den
		if c <= cutoff {
			continue
		}
		k := key{r.Query, r.Subject}
		if c > pairs[k] {
			pairs[k] = c
		}
	}
	out := make([]Pair, 0, len(pairs))
	for k, c := range pairs {
		out = append(out, Pair{Query: k.q, Subject: k.s, C: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Query != out[j].Query {
			return out[i].Query < out[j].Query
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

// Run scores recs and writes query<TAB>subject<TAB>cscore rows to w, with
// the c-score formatted to two decimals.
func Run(w io.Writer, recs []blast.Record, cutoff float64) error {
	out := tsv.NewWriter(w)
	for _, p := range Scores(recs, BestScores(recs), cutoff) {
		out.WriteString(p.Query)
		out.WriteString(p.Subject)
		out.WriteString(strconv.FormatFloat(p.C, 'f', 2, 64))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
