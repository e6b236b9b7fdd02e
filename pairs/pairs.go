// Package pairs reports mate-pair statistics over aligned reads: how many
// ends mapped as proper pairs, the distance distribution between mates, and
// the strand orientation census. Mates are matched by read name after
// clipping the pair suffix (/1, /2, .f, .r and the like).
package pairs

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/interval"
	"github.com/pkg/errors"
)

// Mate is one aligned read end: the read name and where it landed.
type Mate struct {
	Accn   string
	Seqid  string
	Start  int
	End    int
	Strand byte
}

func (m Mate) span() interval.Span {
	return interval.Span{Seqid: m.Seqid, Start: m.Start, End: m.End, Strand: m.Strand}
}

// Opts configure Report.
type Opts struct {
	// Cutoff is the largest distance at which two mates count as linked.
	// Zero or negative estimates it from the data: twice the median pair
	// distance, rounded up to a multiple of Bins.
	Cutoff int
	// MateOrientation restricts the distance pool to one strand pairing,
	// one of "++", "--", "+-", "-+". Empty keeps all pairings.
	MateOrientation string
	// Rclip strips this many trailing characters from the read name to form
	// the mate key, e.g. 1 for names ending in /1 and /2. Zero uses the
	// whole name.
	Rclip int
	// DistMode selects the distance measured between mates: the outer span
	// (insert size) or the inner gap.
	DistMode interval.DistMode
	// Bins quantizes the estimated cutoff.
	Bins int
	// NRows caps how many input mates are considered.
	NRows int
	// PairsWriter, when set, receives one accnA<TAB>accnB<TAB>dist line per
	// linked pair.
	PairsWriter io.Writer
}

// DefaultOpts are the defaults used by the pairs command.
var DefaultOpts = Opts{
	Rclip:    1,
	DistMode: interval.ModeOuter,
	Bins:     20,
	NRows:    100000,
}

// Stats summarizes one Report run. The distance figures describe linked
// pairs only and are truncated to whole bases.
type Stats struct {
	Fragments    int
	Pairs        int
	Linked       int
	Cutoff       int
	Mean         int
	Stdev        int
	Median       int
	P025         int
	P975         int
	Orientations map[string]int
}

type pairDist struct {
	dist        int
	orientation string
	accnA       string
	accnB       string
}

// Report groups mates by clipped read name, measures the distance of every
// proper pair, estimates the linking cutoff when opts.Cutoff is unset, and
// writes a text report to w. Groups with any size other than two count as
// fragments. Pairs on different sequences (and overlapping pairs in inner
// distance mode) are dropped from the distance pool.
//
// The percentile figures index into the sorted linked distances; a run that
// links no pair at all crashes there, like the report it mimics.
func Report(w io.Writer, mates []Mate, opts Opts) (Stats, error) {
	switch opts.MateOrientation {
	case "", "++", "--", "+-", "-+":
	default:
		return Stats{}, errors.Errorf("invalid mate orientation %q", opts.MateOrientation)
	}
	if opts.Cutoff <= 0 && opts.Bins <= 0 {
		return Stats{}, errors.Errorf("bins must be positive to estimate a cutoff")
	}
	if opts.NRows > 0 && len(mates) > opts.NRows {
		mates = mates[:opts.NRows]
	}

	key := func(m Mate) string {
		if opts.Rclip <= 0 {
			return m.Accn
		}
		if opts.Rclip >= len(m.Accn) {
			return ""
		}
		return m.Accn[:len(m.Accn)-opts.Rclip]
	}
	sorted := append([]Mate(nil), mates...)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) < key(sorted[j]) })

	var (
		stats = Stats{Orientations: make(map[string]int)}
		pool  []pairDist
	)
	for lo := 0; lo < len(sorted); {
		hi := lo
		for hi < len(sorted) && key(sorted[hi]) == key(sorted[lo]) {
			hi++
		}
		group := sorted[lo:hi]
		lo = hi
		if len(group) != 2 {
			stats.Fragments += len(group)
			continue
		}
		stats.Pairs++
		a, b := group[0], group[1]
		dist, orientation := interval.Distance(a.span(), b.span(), opts.DistMode)
		if dist >= 0 {
			pool = append(pool, pairDist{dist, orientation, a.Accn, b.Accn})
		}
	}

	if opts.MateOrientation != "" {
		kept := pool[:0]
		for _, p := range pool {
			if p.orientation == opts.MateOrientation {
				kept = append(kept, p)
			}
		}
		pool = kept
	}

	cutoff := opts.Cutoff
	if cutoff <= 0 {
		dists := make([]int, len(pool))
		for i, p := range pool {
			dists[i] = p.dist
		}
		cutoff = int(2 * median(dists))
		cutoff = int(math.Ceil(float64(cutoff)/float64(opts.Bins))) * opts.Bins
		log.Debug.Printf("insert size cutoff set to %d, use -cutoff to override", cutoff)
	}
	stats.Cutoff = cutoff

	var linked []int
	for _, p := range pool {
		if p.dist > cutoff {
			continue
		}
		linked = append(linked, p.dist)
		if opts.PairsWriter != nil {
			if _, err := fmt.Fprintf(opts.PairsWriter, "%s\t%s\t%d\n", p.accnA, p.accnB, p.dist); err != nil {
				return Stats{}, err
			}
		}
		stats.Orientations[p.orientation]++
	}
	fmt.Fprintf(w, "%d fragments, %d pairs\n", stats.Fragments, stats.Pairs)

	sort.Ints(linked)
	n := len(linked)
	stats.Linked = n

	var sum float64
	for _, d := range linked {
		sum += float64(d)
	}
	mean := sum / float64(n)
	var ss float64
	for _, d := range linked {
		dev := float64(d) - mean
		ss += dev * dev
	}
	stats.Mean = int(mean)
	stats.Stdev = int(math.Sqrt(ss / float64(n)))
	stats.Median = int(median(linked))
	stats.P025 = linked[int(float64(n)*.025)]
	stats.P975 = linked[int(float64(n)*.975)]

	fmt.Fprintf(w, "%d pairs (%.1f%%) are linked (cutoff=%d)\n",
		n, float64(n)*100/float64(stats.Pairs), cutoff)
	fmt.Fprintf(w, "mean distance between mates: %d +/- %d\n", stats.Mean, stats.Stdev)
	fmt.Fprintf(w, "median distance between mates: %d\n", stats.Median)
	fmt.Fprintf(w, "95%% distance range: %d - %d\n", stats.P025, stats.P975)
	fmt.Fprintf(w, "\nOrientations:\n")
	orientations := make([]string, 0, len(stats.Orientations))
	for o := range stats.Orientations {
		orientations = append(orientations, o)
	}
	sort.Strings(orientations)
	for _, o := range orientations {
		count := stats.Orientations[o]
		fmt.Fprintf(w, "%s:%d (%.1f%%)\n", o, count, float64(count)*100/float64(n))
	}
	return stats, nil
}

// median returns the median of a as a float64, averaging the middle two
// values for even lengths. It panics on an empty slice.
func median(a []int) float64 {
	s := append([]int(nil), a...)
	sort.Ints(s)
	n := len(s)
	if n%2 == 1 {
		return float64(s[n/2])
	}
	return float64(s[n/2-1]+s[n/2]) / 2
}
