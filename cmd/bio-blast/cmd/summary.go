package cmd

import (
	"fmt"
	"os"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/interval"
	"v.io/x/lib/cmdline"
)

func newCmdSummary() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "summary",
		Short: "Summarize alignment identity and coverage",
		Long: `
Report how many query and reference bases the alignments cover, plus the
overall identity weighted by alignment length. Often used when comparing
two genomes.
`,
		ArgsName: "blastfile",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("summary takes one blastfile argument, but got %v", argv)
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		var (
			qrySpans   = make([]interval.Span, 0, len(recs))
			refSpans   = make([]interval.Span, 0, len(recs))
			identicals float64
			alignLen   int
		)
		for _, r := range recs {
			qs, qe := r.QStart, r.QStop
			if qs > qe {
				qs, qe = qe, qs
			}
			qrySpans = append(qrySpans, interval.Span{Seqid: r.Query, Start: qs, End: qe})
			refSpans = append(refSpans, interval.Span{Seqid: r.Subject, Start: r.SStart, End: r.SStop})
			alen := r.SStop - r.SStart
			alignLen += alen
			identicals += r.PctID / 100 * float64(alen)
		}
		fmt.Fprintf(os.Stderr, "Query coverage: %d bp\n", interval.Union(qrySpans))
		fmt.Fprintf(os.Stderr, "Reference coverage: %d bp\n", interval.Union(refSpans))
		fmt.Fprintf(os.Stderr, "Identity: %.2f%%\n", identicals*100/float64(alignLen))
		return nil
	})
	return cmd
}
