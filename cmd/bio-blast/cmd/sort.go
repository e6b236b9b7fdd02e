package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/blast/encoding/blast"
	"v.io/x/lib/cmdline"
)

func newCmdSort() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "sort",
		Short: "Sort a BLAST file so that hits of one query group together",
		Long: `
Rewrite blastfile in place. The default order is by query with scores
descending; -query orders by query position and -ref by subject position.
`,
		ArgsName: "blastfile",
	}
	queryFlag := cmd.Flags.Bool("query", false, "Sort by query position")
	refFlag := cmd.Flags.Bool("ref", false, "Sort by reference position")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("sort takes one blastfile argument, but got %v", argv)
		}
		if *queryFlag && *refFlag {
			return fmt.Errorf("-query and -ref are mutually exclusive")
		}
		lines, err := readKeyedLines(argv[0])
		if err != nil {
			return err
		}
		switch {
		case *queryFlag:
			sort.SliceStable(lines, func(i, j int) bool {
				a, b := lines[i].rec, lines[j].rec
				if a.Query != b.Query {
					return a.Query < b.Query
				}
				return a.QStart < b.QStart
			})
		case *refFlag:
			sort.SliceStable(lines, func(i, j int) bool {
				a, b := lines[i].rec, lines[j].rec
				if a.Subject != b.Subject {
					return a.Subject < b.Subject
				}
				return a.SStart < b.SStart
			})
		default:
			sort.SliceStable(lines, func(i, j int) bool {
				a, b := lines[i].rec, lines[j].rec
				if a.Query != b.Query {
					return a.Query < b.Query
				}
				return a.Score > b.Score
			})
		}
		return withOutput(argv[0], func(w io.Writer) error {
			for _, kl := range lines {
				if _, err := fmt.Fprintln(w, kl.line); err != nil {
					return err
				}
			}
			return nil
		})
	})
	return cmd
}

// keyedLine carries a raw input line together with its parsed fields, so
// sorting can rewrite the file without reformatting anything.
type keyedLine struct {
	line string
	rec  blast.Record
}

func readKeyedLines(path string) (lines []keyedLine, err error) {
	err = withInput(path, func(r io.Reader) error {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			text := sc.Text()
			if strings.HasPrefix(text, "#") {
				continue
			}
			rec, e := blast.Parse(text)
			if e != nil {
				return e
			}
			lines = append(lines, keyedLine{text, rec})
		}
		return sc.Err()
	})
	return lines, err
}
