package cmd

import (
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

func newCmdAnnotation() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "annotation",
		Short: "Create a two-column file from the query and subject columns",
		Long: `
Print query<TAB>subject for every hit. -queryids and -subjectids name
two-column id<TAB>description files used to substitute the ids.
`,
		ArgsName: "blastfile",
	}
	queryIDsFlag := cmd.Flags.String("queryids", "", "Query ids file to switch")
	subjectIDsFlag := cmd.Flags.String("subjectids", "", "Subject ids file to switch")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("annotation takes one blastfile argument, but got %v", argv)
		}
		var (
			qids, sids map[string]string
			err        error
		)
		if *queryIDsFlag != "" {
			if qids, err = readIDMap(*queryIDsFlag); err != nil {
				return err
			}
		}
		if *subjectIDsFlag != "" {
			if sids, err = readIDMap(*subjectIDsFlag); err != nil {
				return err
			}
		}
		return withInput(argv[0], func(r io.Reader) error {
			return withOutput("", func(w io.Writer) error {
				sc := blast.NewScanner(r)
				var rec blast.Record
				for sc.Scan(&rec) {
					query, subject := rec.Query, rec.Subject
					if qids != nil {
						mapped, ok := qids[query]
						if !ok {
							log.Fatalf("annotation: id %q not in %s", query, *queryIDsFlag)
						}
						query = mapped
					}
					if sids != nil {
						mapped, ok := sids[subject]
						if !ok {
							log.Fatalf("annotation: id %q not in %s", subject, *subjectIDsFlag)
						}
						subject = mapped
					}
					if _, err := fmt.Fprintf(w, "%s\t%s\n", query, subject); err != nil {
						return err
					}
				}
				return sc.Err()
			})
		})
	})
	return cmd
}
