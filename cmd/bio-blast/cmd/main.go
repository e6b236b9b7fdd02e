package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run parses the command line and dispatches to one of the subcommands.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-blast",
			Short:    "Tools for working with tabular BLAST (-m8) files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdSummary(),
				newCmdCompleteness(),
				newCmdAnnotation(),
				newCmdTop10(),
				newCmdFilter(),
				newCmdCovfilter(),
				newCmdCscore(),
				newCmdBest(),
				newCmdPairs(),
				newCmdBed(),
				newCmdChain(),
				newCmdSwap(),
				newCmdSort(),
				newCmdMismatches(),
				newCmdChecksum(),
			},
		})
}
