package cmd

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"math"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

type checksumOpts struct {
	// all treats all the following bool fields to be true. If all=true, then
	// the individual values of the following fields are ignored.
	all bool

	// coords causes the hit coordinates and orientation to be added to the
	// checksum.
	coords bool
	// scores causes pctid, evalue and score to be added to the checksum.
	scores bool
	// counts causes hitlen, nmismatch and ngaps to be added to the checksum.
	counts bool
}

// fileChecksum represents the checksum of a file: commutative per-field
// sums, so two files holding the same hits in different order checksum
// alike.
type fileChecksum struct {
	// NRecs is the # of hits found in the file.
	NRecs int64
	// SumPos is sum of all start positions. A quick commutative hash.
	SumPos uint64
	// SumPairs is the sum of all query/subject name hashes.
	SumPairs uint64
	// SumCoords is the sum of all coordinate hashes.
	SumCoords uint64
	// SumScores is the sum of all pctid/evalue/score hashes.
	SumScores uint64
	// SumCounts is the sum of all hitlen/nmismatch/ngaps hashes.
	SumCounts uint64
}

func hashField(h hash.Hash64, key, value []byte) uint64 {
	h.Reset()
	h.Write(key)
	h.Write(value)
	return h.Sum64()
}

func (c *fileChecksum) add(r blast.Record, h hash.Hash64, opts checksumOpts) {
	c.NRecs++
	c.SumPos += uint64(r.QStart) + uint64(r.SStart)

	key := make([]byte, 0, len(r.Query)+len(r.Subject)+1)
	key = append(key, r.Query...)
	key = append(key, 0)
	key = append(key, r.Subject...)
	c.SumPairs += hashField(h, key, nil)

	coords := [17]byte{}
	binary.LittleEndian.PutUint32(coords[:4], uint32(r.QStart))
	binary.LittleEndian.PutUint32(coords[4:8], uint32(r.QStop))
	binary.LittleEndian.PutUint32(coords[8:12], uint32(r.SStart))
	binary.LittleEndian.PutUint32(coords[12:16], uint32(r.SStop))
	coords[16] = r.Orientation

	if opts.all || opts.coords {
		c.SumCoords += hashField(h, key, coords[:])
	}
	if opts.all || opts.scores {
		value := [24]byte{}
		binary.LittleEndian.PutUint64(value[:8], math.Float64bits(r.PctID))
		binary.LittleEndian.PutUint64(value[8:16], math.Float64bits(r.Evalue))
		binary.LittleEndian.PutUint64(value[16:], math.Float64bits(r.Score))
		h.Reset()
		h.Write(key)
		h.Write(coords[:])
		h.Write(value[:])
		c.SumScores += h.Sum64()
	}
	if opts.all || opts.counts {
		value := [12]byte{}
		binary.LittleEndian.PutUint32(value[:4], uint32(r.HitLen))
		binary.LittleEndian.PutUint32(value[4:8], uint32(r.NMismatch))
		binary.LittleEndian.PutUint32(value[8:], uint32(r.NGaps))
		h.Reset()
		h.Write(key)
		h.Write(coords[:])
		h.Write(value[:])
		c.SumCounts += h.Sum64()
	}
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "checksum",
		Short: `Compute a checksum of a BLAST tabular file.
The checksum is a JSON block of order-independent per-field sums, for comparing pipeline outputs that may shuffle hits`,
		ArgsName: "blastfile",
	}
	opts := checksumOpts{}
	cmd.Flags.BoolVar(&opts.all, "all", false, "Checksum all the fields")
	cmd.Flags.BoolVar(&opts.coords, "coords", false, "Checksum the coordinate fields")
	cmd.Flags.BoolVar(&opts.scores, "scores", false, "Checksum the pctid, evalue and score fields")
	cmd.Flags.BoolVar(&opts.counts, "counts", false, "Checksum the hitlen, nmismatch and ngaps fields")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("checksum takes one blastfile argument, but got %v", argv)
		}
		return checksum(argv[0], opts)
	})
	return cmd
}

func checksum(path string, opts checksumOpts) error {
	csum := fileChecksum{}
	h := seahash.New()
	err := withInput(path, func(r io.Reader) error {
		sc := blast.NewScanner(r)
		var rec blast.Record
		for sc.Scan(&rec) {
			csum.add(rec, h, opts)
		}
		return sc.Err()
	})
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(csum, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	fmt.Println(string(js))
	return nil
}
