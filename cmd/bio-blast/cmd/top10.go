package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

func newCmdTop10() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "top10",
		Short: "Count the most frequent 10 hits",
		Long: `
Count how often each subject appears and print the ten most frequent as
count<TAB>subject. The input usually needs a best-hit screen first. -ids
names a two-column file mapping subject ids, e.g. to species names.
`,
		ArgsName: "blastfile",
	}
	idsFlag := cmd.Flags.String("ids", "", "Two-column ids file to map subject ids")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("top10 takes one blastfile argument, but got %v", argv)
		}
		var mapping map[string]string
		if *idsFlag != "" {
			var err error
			if mapping, err = readIDMap(*idsFlag); err != nil {
				return err
			}
		}
		counts := make(map[string]int)
		err := withInput(argv[0], func(r io.Reader) error {
			sc := blast.NewScanner(r)
			var rec blast.Record
			for sc.Scan(&rec) {
				counts[rec.Subject]++
			}
			return sc.Err()
		})
		if err != nil {
			return err
		}
		type subjectCount struct {
			subject string
			count   int
		}
		ranked := make([]subjectCount, 0, len(counts))
		for s, n := range counts {
			ranked = append(ranked, subjectCount{s, n})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].count != ranked[j].count {
				return ranked[i].count > ranked[j].count
			}
			return ranked[i].subject < ranked[j].subject
		})
		if len(ranked) > 10 {
			ranked = ranked[:10]
		}
		return withOutput("", func(w io.Writer) error {
			for _, sc := range ranked {
				name := sc.subject
				if mapped, ok := mapping[name]; ok {
					name = mapped
				}
				if _, err := fmt.Fprintf(w, "%d\t%s\n", sc.count, name); err != nil {
					return err
				}
			}
			return nil
		})
	})
	return cmd
}
