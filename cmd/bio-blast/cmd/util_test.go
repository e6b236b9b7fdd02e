package cmd

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/blast/pairs"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const testBlast = "q1\ts1\t98.00\t120\t2\t0\t1\t120\t1\t120\t1e-50\t200\n" +
	"q1\ts2\t90.00\t80\t8\t0\t1\t80\t1\t80\t1e-10\t80\n" +
	"# a comment\n" +
	"q2\ts1\t99.00\t150\t1\t1\t1\t150\t200\t51\t1e-70\t250\n"

func writeTestFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	assert.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRecords(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestFile(t, tmpDir, "test.blast", testBlast)
	recs, err := readRecords(path)
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 3)
	expect.EQ(t, recs[0].Query, "q1")
	expect.EQ(t, recs[2].Orientation, byte('-'))
}

func TestRunFilter(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestFile(t, tmpDir, "test.blast", testBlast)
	assert.NoError(t, runFilter(path, 0, 95, 100, 0.01))
	out, err := ioutil.ReadFile(path + ".P95L100")
	assert.NoError(t, err)
	// Lines survive verbatim, including unnormalized subject coordinates.
	expect.EQ(t, string(out),
		"q1\ts1\t98.00\t120\t2\t0\t1\t120\t1\t120\t1e-50\t200\n"+
			"q2\ts1\t99.00\t150\t1\t1\t1\t150\t200\t51\t1e-70\t250\n")
}

func TestReadKeyedLines(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestFile(t, tmpDir, "test.blast", testBlast)
	lines, err := readKeyedLines(path)
	assert.NoError(t, err)
	assert.EQ(t, len(lines), 3)
	expect.EQ(t, lines[2].line, "q2\ts1\t99.00\t150\t1\t1\t1\t150\t200\t51\t1e-70\t250")
	expect.EQ(t, lines[2].rec.SStart, 51)
}

func TestReadIDMap(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeTestFile(t, tmpDir, "ids.tsv", "s1\tSpeciesOne\ns2\tSpeciesTwo\n")
	m, err := readIDMap(path)
	assert.NoError(t, err)
	expect.EQ(t, m, map[string]string{"s1": "SpeciesOne", "s2": "SpeciesTwo"})
}

func TestReadMatesDispatch(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	blastPath := writeTestFile(t, tmpDir, "test.blast", testBlast)
	mates, err := readMates(blastPath)
	assert.NoError(t, err)
	assert.EQ(t, len(mates), 3)
	expect.EQ(t, mates[0].Seqid, "s1")

	bedPath := writeTestFile(t, tmpDir, "test.bed", "chr1\t100\t200\tread/1\t60\t+\n")
	mates, err = readMates(bedPath)
	assert.NoError(t, err)
	assert.EQ(t, len(mates), 1)
	expect.EQ(t, mates[0], pairs.Mate{Accn: "read/1", Seqid: "chr1", Start: 101, End: 200, Strand: '+'})
}
