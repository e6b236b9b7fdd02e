package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/chain"
	"v.io/x/lib/cmdline"
)

func newCmdChain() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "chain",
		Short: "Chain adjacent HSPs together",
		Long: `
Chain adjacent HSPs together to form larger HSPs. Two hits of the same
query/subject pair merge when they share an orientation and their flanking
distance stays within -dist on both the query and the subject axis.
`,
		ArgsName: "blastfile",
	}
	distFlag := cmd.Flags.Int("dist", 100, "Extent of flanking regions to search")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("chain takes one blastfile argument, but got %v", argv)
		}
		if *distFlag <= 0 {
			return fmt.Errorf("-dist must be positive, got %d", *distFlag)
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		return withOutput("", func(w io.Writer) error {
			return writeRecords(w, chain.Chain(recs, *distFlag, *distFlag))
		})
	})
	return cmd
}
