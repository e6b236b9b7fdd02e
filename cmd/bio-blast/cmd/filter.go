package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

func newCmdFilter() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "filter",
		Short: "Filter BLAST hits on score, identity and alignment length",
		Long: `
Keep hits whose score, percent identity and alignment length meet the
cutoffs and whose E-value does not exceed -evalue. The surviving lines are
written verbatim to blastfile.P<pctid>L<hitlen>.
`,
		ArgsName: "blastfile",
	}
	scoreFlag := cmd.Flags.Int("score", 0, "Score cutoff")
	pctidFlag := cmd.Flags.Int("pctid", 95, "Percent identity cutoff")
	hitlenFlag := cmd.Flags.Int("hitlen", 100, "Hit length cutoff")
	evalueFlag := cmd.Flags.Float64("evalue", 0.01, "E-value cutoff")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("filter takes one blastfile argument, but got %v", argv)
		}
		return runFilter(argv[0], *scoreFlag, *pctidFlag, *hitlenFlag, *evalueFlag)
	})
	return cmd
}

func runFilter(path string, score, pctid, hitlen int, evalue float64) error {
	outPath := fmt.Sprintf("%s.P%dL%d", path, pctid, hitlen)
	err := withInput(path, func(r io.Reader) error {
		return withOutput(outPath, func(w io.Writer) error {
			sc := bufio.NewScanner(r)
			for sc.Scan() {
				line := sc.Text()
				if strings.HasPrefix(line, "#") {
					continue
				}
				rec, err := blast.Parse(line)
				if err != nil {
					return err
				}
				if rec.Score < float64(score) || rec.PctID < float64(pctid) ||
					rec.HitLen < hitlen || rec.Evalue > evalue {
					continue
				}
				if _, err := fmt.Fprintln(w, line); err != nil {
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
}
