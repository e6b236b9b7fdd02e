package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

func newCmdBest() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "best",
		Short: "Print the best hit for each query",
		Long: `
Write the -n highest scoring hits of every query to blastfile.best. With
-hsps, every hit against the subjects of those best hits survives as well.
`,
		ArgsName: "blastfile",
	}
	nFlag := cmd.Flags.Int("n", 1, "Get the best n hits")
	hspsFlag := cmd.Flags.Bool("hsps", false, "Keep all HSPs against the best n subjects")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("best takes one blastfile argument, but got %v", argv)
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		outPath := argv[0] + ".best"
		err = withOutput(outPath, func(w io.Writer) error {
			st := blast.NewRecordStore(recs)
			for st.Scan() {
				_, hits := st.Group()
				if err := writeRecords(w, blast.Best(hits, *nFlag, *hspsFlag)); err != nil {
					return err
				}
			}
			return st.Err()
		})
		if err != nil {
			return err
		}
		log.Printf("Wrote %s", outPath)
		return nil
	})
	return cmd
}
