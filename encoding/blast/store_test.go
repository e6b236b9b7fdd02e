package blast_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/grailbio/blast/encoding/blast"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func hitLine(query, subject string, score float64, qstart int) string {
	return fmt.Sprintf("%s\t%s\t99.00\t100\t1\t0\t%d\t%d\t1\t100\t1e-50\t%g",
		query, subject, qstart, qstart+99, score)
}

func TestScanner(t *testing.T) {
	in := "# BLASTN 2.2.26+\n" + plusLine + "\n" + minusLine + "\n"
	var (
		recs []blast.Record
		rec  blast.Record
	)
	s := blast.NewScanner(strings.NewReader(in))
	for s.Scan(&rec) {
		recs = append(recs, rec)
	}
	assert.NoError(t, s.Err())
	assert.EQ(t, len(recs), 2)
	expect.EQ(t, recs[0].Query, "AT1G01010.1")
	expect.EQ(t, recs[1].Orientation, byte('-'))
}

func TestScannerFailFast(t *testing.T) {
	in := plusLine + "\nnot\ta\tblast\tline\n" + minusLine + "\n"
	s := blast.NewScanner(strings.NewReader(in))
	var rec blast.Record
	n := 0
	for s.Scan(&rec) {
		n++
	}
	assert.EQ(t, n, 1)
	perr, ok := s.Err().(*blast.ParseError)
	if !ok {
		t.Fatalf("got %v, want *ParseError", s.Err())
	}
	expect.EQ(t, perr.Line, "not\ta\tblast\tline")
	if s.Scan(&rec) {
		t.Error("Scan returned true after an error")
	}
}

func TestReadAll(t *testing.T) {
	recs, err := blast.ReadAll(strings.NewReader(plusLine + "\n" + minusLine + "\n"))
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 2)

	_, err = blast.ReadAll(strings.NewReader("short\tline\n"))
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
}

func scanGroups(t *testing.T, s blast.Store) (queries []string, sizes []int) {
	for s.Scan() {
		q, hits := s.Group()
		queries = append(queries, q)
		sizes = append(sizes, len(hits))
	}
	assert.NoError(t, s.Err())
	return queries, sizes
}

func TestStoreSortsQueries(t *testing.T) {
	in := strings.Join([]string{
		hitLine("q2", "s1", 50, 1),
		hitLine("q1", "s1", 70, 1),
		hitLine("q2", "s2", 60, 200),
		hitLine("q3", "s1", 10, 1),
	}, "\n") + "\n"
	s, err := blast.NewStore(strings.NewReader(in))
	assert.NoError(t, err)
	queries, sizes := scanGroups(t, s)
	expect.EQ(t, queries, []string{"q1", "q2", "q3"})
	expect.EQ(t, sizes, []int{1, 2, 1})
}

func TestSortedStoreKeepsStreamOrder(t *testing.T) {
	in := strings.Join([]string{
		hitLine("q9", "s1", 50, 1),
		hitLine("q9", "s2", 60, 200),
		hitLine("q1", "s1", 70, 1),
	}, "\n") + "\n"
	queries, sizes := scanGroups(t, blast.NewSortedStore(strings.NewReader(in)))
	expect.EQ(t, queries, []string{"q9", "q1"})
	expect.EQ(t, sizes, []int{2, 1})
}

func TestSortedStoreFragmentsUngroupedInput(t *testing.T) {
	// The streaming store trusts the input order: a query appearing in two
	// separate runs comes out as two groups.
	in := strings.Join([]string{
		hitLine("q1", "s1", 50, 1),
		hitLine("q2", "s1", 60, 1),
		hitLine("q1", "s2", 70, 1),
	}, "\n") + "\n"
	queries, _ := scanGroups(t, blast.NewSortedStore(strings.NewReader(in)))
	expect.EQ(t, queries, []string{"q1", "q2", "q1"})
}

func TestBest(t *testing.T) {
	group := make([]blast.Record, 0, 4)
	for _, line := range []string{
		hitLine("q1", "s1", 30, 1),
		hitLine("q1", "s2", 90, 1),
		hitLine("q1", "s2", 20, 500),
		hitLine("q1", "s3", 60, 1),
	} {
		r, err := blast.Parse(line)
		assert.NoError(t, err)
		group = append(group, r)
	}

	best := blast.Best(group, 1, false)
	assert.EQ(t, len(best), 1)
	expect.EQ(t, best[0].Subject, "s2")
	expect.EQ(t, best[0].Score, 90.0)

	best = blast.Best(group, 2, false)
	assert.EQ(t, len(best), 2)
	expect.EQ(t, best[1].Subject, "s3")

	// hsps widens the selection to every hit of the best subjects.
	best = blast.Best(group, 1, true)
	assert.EQ(t, len(best), 2)
	expect.EQ(t, best[0].Score, 90.0)
	expect.EQ(t, best[1].Score, 20.0)

	best = blast.Best(group, 10, false)
	assert.EQ(t, len(best), 4)
}
