package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"v.io/x/lib/cmdline"
)

func newCmdSwap() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "swap",
		Short: "Swap queries and subjects in a BLAST tabular file",
		Long: `
Write blastfile.swapped with query and subject exchanged on every hit,
sorted the way the sort subcommand sorts by default.
`,
		ArgsName: "blastfile",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("swap takes one blastfile argument, but got %v", argv)
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		for i := range recs {
			recs[i] = recs[i].Swapped()
		}
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].Query != recs[j].Query {
				return recs[i].Query < recs[j].Query
			}
			return recs[i].Score > recs[j].Score
		})
		outPath := argv[0] + ".swapped"
		if err := withOutput(outPath, func(w io.Writer) error {
			return writeRecords(w, recs)
		}); err != nil {
			return err
		}
		log.Printf("Wrote %s", outPath)
		return nil
	})
	return cmd
}
