package pairs_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/grailbio/blast/encoding/bed"
	"github.com/grailbio/blast/encoding/blast"
	"github.com/grailbio/blast/interval"
	"github.com/grailbio/blast/pairs"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

// matePair places both ends of one insert on seqid so that their outer
// distance comes out to exactly dist.
func matePair(name, seqid string, dist int) []pairs.Mate {
	return []pairs.Mate{
		{Accn: name + ".1", Seqid: seqid, Start: 1, End: 1, Strand: '+'},
		{Accn: name + ".2", Seqid: seqid, Start: dist, End: dist, Strand: '+'},
	}
}

func TestReport(t *testing.T) {
	var mates []pairs.Mate
	for d := 1; d <= 100; d++ {
		mates = append(mates, matePair(fmt.Sprintf("p%03d", d), "chr1", d)...)
	}
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 1000
	stats, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Fragments, 0)
	expect.EQ(t, stats.Pairs, 100)
	expect.EQ(t, stats.Linked, 100)
	expect.EQ(t, stats.Mean, 50)
	expect.EQ(t, stats.Stdev, 28)
	expect.EQ(t, stats.Median, 50)
	expect.EQ(t, stats.P025, 3)
	expect.EQ(t, stats.P975, 98)
	expect.EQ(t, buf.String(), `0 fragments, 100 pairs
100 pairs (100.0%) are linked (cutoff=1000)
mean distance between mates: 50 +/- 28
median distance between mates: 50
95% distance range: 3 - 98

Orientations:
++:100 (100.0%)
`)
}

func TestReportEstimatesCutoff(t *testing.T) {
	var buf bytes.Buffer
	mates := append(matePair("a", "chr1", 50), matePair("b", "chr1", 60)...)
	stats, err := pairs.Report(&buf, mates, pairs.DefaultOpts)
	assert.NoError(t, err)
	// Twice the median distance (110), rounded up to a multiple of 20.
	expect.EQ(t, stats.Cutoff, 120)
	expect.EQ(t, stats.Linked, 2)

	buf.Reset()
	stats, err = pairs.Report(&buf, matePair("a", "chr1", 50), pairs.DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Cutoff, 100)
	expect.EQ(t, stats.Linked, 1)
}

func TestReportFragments(t *testing.T) {
	mates := matePair("ok", "chr1", 10)
	mates = append(mates,
		pairs.Mate{Accn: "solo.1", Seqid: "chr1", Start: 1, End: 1, Strand: '+'},
		pairs.Mate{Accn: "trio.1", Seqid: "chr1", Start: 1, End: 1, Strand: '+'},
		pairs.Mate{Accn: "trio.2", Seqid: "chr1", Start: 5, End: 5, Strand: '+'},
		pairs.Mate{Accn: "trio.3", Seqid: "chr1", Start: 9, End: 9, Strand: '+'},
	)
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	stats, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Fragments, 4)
	expect.EQ(t, stats.Pairs, 1)
	expect.EQ(t, stats.Linked, 1)
}

func TestReportDropsCrossSeqidPairs(t *testing.T) {
	mates := matePair("ok", "chr1", 10)
	mates = append(mates,
		pairs.Mate{Accn: "x.1", Seqid: "chr1", Start: 1, End: 1, Strand: '+'},
		pairs.Mate{Accn: "x.2", Seqid: "chr2", Start: 5, End: 5, Strand: '+'},
	)
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	stats, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	// Both groups pair up, but mates on different sequences have no
	// distance and never link.
	expect.EQ(t, stats.Pairs, 2)
	expect.EQ(t, stats.Linked, 1)
}

func TestReportMateOrientation(t *testing.T) {
	mates := []pairs.Mate{
		{Accn: "fr.1", Seqid: "chr1", Start: 1, End: 1, Strand: '+'},
		{Accn: "fr.2", Seqid: "chr1", Start: 50, End: 50, Strand: '-'},
	}
	mates = append(mates, matePair("ff", "chr1", 10)...)
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	opts.MateOrientation = "+-"
	stats, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Pairs, 2)
	expect.EQ(t, stats.Linked, 1)
	expect.EQ(t, stats.Orientations, map[string]int{"+-": 1})
}

func TestReportInvalidMateOrientation(t *testing.T) {
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	opts.MateOrientation = "+/-"
	_, err := pairs.Report(&buf, matePair("m", "chr1", 10), opts)
	assert.HasSubstr(t, err.Error(), "invalid mate orientation")
}

func TestReportPairsWriter(t *testing.T) {
	var buf, pf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	opts.PairsWriter = &pf
	_, err := pairs.Report(&buf, matePair("m", "chr1", 10), opts)
	assert.NoError(t, err)
	expect.EQ(t, pf.String(), "m.1\tm.2\t10\n")
}

func TestReportInnerDistance(t *testing.T) {
	mates := []pairs.Mate{
		{Accn: "m.1", Seqid: "chr1", Start: 1, End: 10, Strand: '+'},
		{Accn: "m.2", Seqid: "chr1", Start: 20, End: 30, Strand: '+'},
	}
	var buf, pf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	opts.DistMode = interval.ModeInner
	opts.PairsWriter = &pf
	_, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, pf.String(), "m.1\tm.2\t9\n")
}

func TestReportRclip(t *testing.T) {
	// Clipping past the end of the name keys every mate to "".
	mates := []pairs.Mate{
		{Accn: "left", Seqid: "chr1", Start: 1, End: 1, Strand: '+'},
		{Accn: "right", Seqid: "chr1", Start: 30, End: 30, Strand: '+'},
	}
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	opts.Rclip = 10
	stats, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Pairs, 1)

	// No clipping matches whole names.
	buf.Reset()
	opts.Rclip = 0
	mates = []pairs.Mate{
		{Accn: "m", Seqid: "chr1", Start: 1, End: 1, Strand: '+'},
		{Accn: "m", Seqid: "chr1", Start: 20, End: 20, Strand: '+'},
	}
	stats, err = pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Pairs, 1)
	expect.EQ(t, stats.Linked, 1)
}

func TestReportNRows(t *testing.T) {
	mates := append(matePair("a", "chr1", 10), matePair("b", "chr1", 20)...)
	var buf bytes.Buffer
	opts := pairs.DefaultOpts
	opts.Cutoff = 100
	opts.NRows = 2
	stats, err := pairs.Report(&buf, mates, opts)
	assert.NoError(t, err)
	expect.EQ(t, stats.Pairs, 1)
	expect.EQ(t, stats.Linked, 1)
}

func TestFromRecords(t *testing.T) {
	rec, err := blast.Parse("read1/1\tchr1\t98.00\t50\t1\t0\t1\t50\t500\t451\t1e-20\t95")
	assert.NoError(t, err)
	mates := pairs.FromRecords([]blast.Record{rec})
	assert.EQ(t, len(mates), 1)
	expect.EQ(t, mates[0], pairs.Mate{Accn: "read1/1", Seqid: "chr1", Start: 451, End: 500, Strand: '-'})
}

func TestFromFeatures(t *testing.T) {
	f, err := bed.Parse("chr2\t100\t200\tread1/2\t60\t-")
	assert.NoError(t, err)
	mates := pairs.FromFeatures([]bed.Feature{f})
	assert.EQ(t, len(mates), 1)
	expect.EQ(t, mates[0], pairs.Mate{Accn: "read1/2", Seqid: "chr2", Start: 101, End: 200, Strand: '-'})
}

func TestReadSAM(t *testing.T) {
	samText := `@HD	VN:1.3	SO:coordinate
@SQ	SN:chr1	LN:10000
read1/1	0	chr1	100	60	10M	=	200	110	ACGTACGTAC	ABCDEFGHIJ
read1/2	16	chr1	200	60	10M	=	100	-110	ACGTACGTAC	ABCDEFGHIJ
frag	4	*	0	0	*	*	0	0	ACGTACGTAC	ABCDEFGHIJ
`
	r, err := sam.NewReader(bytes.NewBuffer([]byte(samText)))
	assert.NoError(t, err)
	mates, err := pairs.ReadSAM(r)
	assert.NoError(t, err)
	assert.EQ(t, len(mates), 2)
	expect.EQ(t, mates[0], pairs.Mate{Accn: "read1/1", Seqid: "chr1", Start: 100, End: 109, Strand: '+'})
	expect.EQ(t, mates[1], pairs.Mate{Accn: "read1/2", Seqid: "chr1", Start: 200, End: 209, Strand: '-'})
}
