package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

const (
	histogramBins = 20
	histogramMax  = 20
	barWidth      = 50
)

func newCmdMismatches() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "mismatches",
		Short: "Print a histogram of mismatches of best HSPs",
		Long: `
Take the best hit of every query, count its mismatches plus gaps, and print
a histogram of those counts over [0, 20]. Usually used to gauge SNP levels.
`,
		ArgsName: "blastfile",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("mismatches takes one blastfile argument, but got %v", argv)
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		var data []int
		st := blast.NewRecordStore(recs)
		for st.Scan() {
			_, hits := st.Group()
			b := blast.Best(hits, 1, false)[0]
			data = append(data, b.NMismatch+b.NGaps)
		}
		nonzero := 0
		for _, mm := range data {
			if mm != 0 {
				nonzero++
			}
		}
		return withOutput("", func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Polymorphic sites: %d of %d (%.1f%%)\n",
				nonzero, len(data), float64(nonzero)*100/float64(len(data)))
			if err != nil {
				return err
			}
			bins := make([]int, histogramBins)
			for _, mm := range data {
				if mm < 0 || mm > histogramMax {
					continue
				}
				i := mm
				if i == histogramMax {
					i = histogramBins - 1
				}
				bins[i]++
			}
			maxCount := 0
			for _, n := range bins {
				if n > maxCount {
					maxCount = n
				}
			}
			for i, n := range bins {
				bar := ""
				if n > 0 {
					width := n * barWidth / maxCount
					if width == 0 {
						width = 1
					}
					bar = strings.Repeat("*", width)
				}
				if _, err := fmt.Fprintf(w, "%2d|%s %d\n", i, bar, n); err != nil {
					return err
				}
			}
			return nil
		})
	})
	return cmd
}
