package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

func newCmdBed() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "bed",
		Short: "Get a BED file from a BLAST tabular file",
		Long: `
Project every hit onto its subject and write the resulting features, named
by query, to <blastfile minus extension>.bed.
`,
		ArgsName: "blastfile",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("bed takes one blastfile argument, but got %v", argv)
		}
		base := argv[0]
		if i := strings.LastIndexByte(base, '.'); i >= 0 {
			base = base[:i]
		}
		outPath := base + ".bed"
		err := withInput(argv[0], func(r io.Reader) error {
			return withOutput(outPath, func(w io.Writer) error {
				sc := blast.NewScanner(r)
				var rec blast.Record
				for sc.Scan(&rec) {
					if _, err := fmt.Fprintln(w, rec.Bed().String()); err != nil {
						return err
					}
				}
				return sc.Err()
			})
		})
		if err != nil {
			return err
		}
		log.Printf("Wrote %s", outPath)
		return nil
	})
	return cmd
}
