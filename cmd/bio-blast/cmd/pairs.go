package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/encoding/bed"
	"github.com/grailbio/blast/interval"
	"github.com/grailbio/blast/pairs"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"v.io/x/lib/cmdline"
)

func newCmdPairs() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "pairs",
		Short: "Print paired-end read statistics of input alignments",
		Long: `
Report how many paired-end reads mapped, the distance distribution between
mates and the orientation census. Mates share a name prefix; -rclip controls
how many trailing characters to strip when matching them up. The input format
follows the file extension: .bed, .sam and .bam read as such, anything else
reads as tabular BLAST projected onto the subject axis.
`,
		ArgsName: "file",
	}
	opts := pairs.DefaultOpts
	cmd.Flags.IntVar(&opts.Cutoff, "cutoff", 0,
		"Distance to call valid links between mates; 0 estimates it from the input")
	cmd.Flags.StringVar(&opts.MateOrientation, "mateorientation", "",
		"Use only mates with this orientation (one of ++, --, +-, -+)")
	cmd.Flags.IntVar(&opts.Rclip, "rclip", pairs.DefaultOpts.Rclip,
		"Pair ID is derived from clipping this many trailing chars off the read name")
	cmd.Flags.IntVar(&opts.NRows, "nrows", pairs.DefaultOpts.NRows, "Only use the first n input records")
	cmd.Flags.IntVar(&opts.Bins, "bins", pairs.DefaultOpts.Bins, "Quantize the estimated cutoff to a multiple of this")
	distModeFlag := cmd.Flags.String("distmode", interval.ModeOuter.String(),
		"Distance mode between paired reads: ss is outer distance, ee is inner distance")
	pairsFileFlag := cmd.Flags.String("pairsfile", "", "Write linked pairs to this file")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("pairs takes one input file argument, but got %v", argv)
		}
		mode, err := interval.ParseDistMode(*distModeFlag)
		if err != nil {
			return err
		}
		opts.DistMode = mode
		mates, err := readMates(argv[0])
		if err != nil {
			return err
		}
		if *pairsFileFlag == "" {
			_, err := pairs.Report(os.Stderr, mates, opts)
			return err
		}
		return withOutput(*pairsFileFlag, func(w io.Writer) error {
			opts.PairsWriter = w
			_, err := pairs.Report(os.Stderr, mates, opts)
			return err
		})
	})
	return cmd
}

// readMates loads one mate per aligned input record, dispatching on the file
// extension.
func readMates(path string) ([]pairs.Mate, error) {
	switch {
	case strings.HasSuffix(path, ".bed"):
		var feats []bed.Feature
		err := withInput(path, func(r io.Reader) error {
			sc := bed.NewScanner(r)
			var f bed.Feature
			for sc.Scan(&f) {
				feats = append(feats, f)
			}
			return sc.Err()
		})
		if err != nil {
			return nil, err
		}
		return pairs.FromFeatures(feats), nil
	case strings.HasSuffix(path, ".sam"):
		var mates []pairs.Mate
		err := withInput(path, func(r io.Reader) error {
			sr, err := sam.NewReader(r)
			if err != nil {
				return err
			}
			mates, err = pairs.ReadSAM(sr)
			return err
		})
		return mates, err
	case strings.HasSuffix(path, ".bam"):
		var mates []pairs.Mate
		err := withInput(path, func(r io.Reader) error {
			br, err := bam.NewReader(r, runtime.NumCPU())
			if err != nil {
				return err
			}
			defer br.Close() // nolint: errcheck
			mates, err = pairs.ReadSAM(br)
			return err
		})
		return mates, err
	default:
		recs, err := readRecords(path)
		if err != nil {
			return nil, err
		}
		return pairs.FromRecords(recs), nil
	}
}
