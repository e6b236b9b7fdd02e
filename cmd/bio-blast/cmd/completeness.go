package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/blast/encoding/blast"
	"github.com/grailbio/blast/encoding/sizes"
	"github.com/grailbio/blast/interval"
	"v.io/x/lib/cmdline"
)

func newCmdCompleteness() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "completeness",
		Short: "Print completeness statistics for each query",
		Long: `
For each query, report how far its alignments stay from the two ends of the
subject: query, subject, distance to the subject start, distance to the
subject end. sizesfile supplies the subject lengths.
`,
		ArgsName: "blastfile sizesfile",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("completeness takes blastfile and sizesfile arguments, but got %v", argv)
		}
		sz, err := sizes.Open(vcontext.Background(), argv[1])
		if err != nil {
			return err
		}
		recs, err := readRecords(argv[0])
		if err != nil {
			return err
		}
		return withOutput("", func(w io.Writer) error {
			st := blast.NewRecordStore(recs)
			for st.Scan() {
				query, hits := st.Group()
				spans := make([]interval.Span, len(hits))
				for i, b := range hits {
					spans[i] = interval.Span{Seqid: b.Subject, Start: b.SStart, End: b.SStop}
				}
				rmin, rmax := interval.MinMax(spans)
				subject := hits[0].Subject
				_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
					query, subject, rmin-1, sz.MustLen(subject)-rmax+1)
				if err != nil {
					return err
				}
			}
			return st.Err()
		})
	})
	return cmd
}
