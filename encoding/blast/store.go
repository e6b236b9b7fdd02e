package blast

import (
	"io"
	"sort"
)

// A Store yields alignment records grouped by query. The Scan method
// advances to the next query group, returning a boolean indicating whether
// a group is available.
type Store interface {
	// Scan advances to the next query group. Once Scan returns false, it
	// never returns true again; check Err afterwards.
	Scan() bool
	// Group returns the current query and its hits. The slice is valid
	// until the next call to Scan.
	Group() (query string, hits []Record)
	// Err returns the first error encountered while reading, if any.
	Err() error
}

// NewStore reads all records from r into memory and yields groups in
// ascending query order. Input order within a group is preserved.
func NewStore(r io.Reader) (Store, error) {
	recs, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Query < recs[j].Query })
	return &memStore{recs: recs}, nil
}

// NewRecordStore wraps an already-loaded record slice in a Store. The slice
// is sorted in place by query.
func NewRecordStore(recs []Record) Store {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Query < recs[j].Query })
	return &memStore{recs: recs}
}

type memStore struct {
	recs  []Record
	next  int
	query string
	cur   []Record
}

func (s *memStore) Scan() bool {
	if s.next >= len(s.recs) {
		return false
	}
	i := s.next
	q := s.recs[i].Query
	j := i
	for j < len(s.recs) && s.recs[j].Query == q {
		j++
	}
	s.query, s.cur, s.next = q, s.recs[i:j], j
	return true
}

func (s *memStore) Group() (string, []Record) { return s.query, s.cur }

func (s *memStore) Err() error { return nil }

// NewSortedStore yields groups of records sharing a query as they appear in
// the stream, without loading the whole input. The input must already be
// grouped by query, which is the natural order of BLAST and BLAT output; an
// ungrouped stream yields one group per contiguous run instead of one per
// query.
func NewSortedStore(r io.Reader) Store {
	return &sortedStore{sc: NewScanner(r)}
}

type sortedStore struct {
	sc    *Scanner
	next  Record
	have  bool
	query string
	cur   []Record
}

func (s *sortedStore) Scan() bool {
	if !s.have {
		if !s.sc.Scan(&s.next) {
			return false
		}
	}
	q := s.next.Query
	group := []Record{s.next}
	s.have = false
	for s.sc.Scan(&s.next) {
		if s.next.Query != q {
			s.have = true
			break
		}
		group = append(group, s.next)
	}
	if !s.have && s.sc.Err() != nil {
		return false
	}
	s.query, s.cur = q, group
	return true
}

func (s *sortedStore) Group() (string, []Record) { return s.query, s.cur }

func (s *sortedStore) Err() error { return s.sc.Err() }

// Best returns the n best-scoring hits of a single query group, ordered by
// descending score (ties keep input order). When hsps is set, the selection
// widens to every hit whose subject appears among those n best, so all HSPs
// of the best subjects survive.
func Best(hits []Record, n int, hsps bool) []Record {
	sorted := append([]Record(nil), hits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if n > len(sorted) {
		n = len(sorted)
	}
	if !hsps {
		return sorted[:n]
	}
	selected := make(map[string]bool, n)
	for _, r := range sorted[:n] {
		selected[r.Subject] = true
	}
	out := make([]Record, 0, len(sorted))
	for _, r := range sorted {
		if selected[r.Subject] {
			out = append(out, r)
		}
	}
	return out
}
