package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/cscore"
	"v.io/x/lib/cmdline"
)

func newCmdCscore() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "cscore",
		Short: "Calculate C-score for BLAST pairs",
		Long: `
The C-score of an aligned pair is its score divided by the best score
involving either its query or its subject. A C-score of one is the same as a
reciprocal best hit. Output is 3-column: query, subject, C-score.
`,
		ArgsName: "blastfile",
	}
	cutoffFlag := cmd.Flags.Float64("cutoff", cscore.DefaultCutoff, "Minimum C-score to report")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("cscore takes one blastfile argument, but got %v", argv)
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		return withOutput("", func(w io.Writer) error {
			return cscore.Run(w, recs, *cutoffFlag)
		})
	})
	return cmd
}
