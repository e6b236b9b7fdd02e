package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/blast/encoding/blast"
	"github.com/grailbio/blast/encoding/sizes"
	"v.io/x/lib/cmdline"
)

func newCmdCovfilter() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "covfilter",
		Short: "Filter BLAST hits on identity and query coverage",
		Long: `
Filter queries by percent identity and by how much of each query its
alignments cover. sizesfile supplies the query lengths: FASTA, a samtools
.fai index, or a two-column name<TAB>length file. Summary totals go to
stderr.
`,
		ArgsName: "blastfile sizesfile",
	}
	opts := covfilterOpts{}
	cmd.Flags.IntVar(&opts.pctid, "pctid", 90, "Percent identity cutoff")
	cmd.Flags.IntVar(&opts.pctcov, "pctcov", 50, "Percent coverage cutoff")
	cmd.Flags.StringVar(&opts.idsPath, "ids", "", "Write the queries that satisfy the cutoffs to this file")
	cmd.Flags.BoolVar(&opts.list, "list", false, "List identity and coverage per query")
	cmd.Flags.StringVar(&opts.outPath, "o", "", "Write hits of valid queries to this file")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("covfilter takes blastfile and sizesfile arguments, but got %v", argv)
		}
		return runCovfilter(argv[0], argv[1], opts)
	})
	return cmd
}

type covfilterOpts struct {
	pctid, pctcov int
	idsPath       string
	list          bool
	outPath       string
}

func runCovfilter(blastPath, sizesPath string, opts covfilterOpts) error {
	sz, err := sizes.Open(vcontext.Background(), sizesPath)
	if err != nil {
		return err
	}
	recs, err := readRecords(blastPath)
	if err != nil {
		return err
	}
	var (
		covered, mismatches, gaps, alignLen int
		queries                             []string
		valid                               = make(map[string]bool)
	)
	// The store sorts its slice; -o below wants the input order back.
	st := blast.NewRecordStore(append([]blast.Record(nil), recs...))
	for st.Scan() {
		query, hits := st.Group()
		queries = append(queries, query)
		var thisCovered, thisAlignLen, thisMismatches, thisGaps int
		for _, b := range hits {
			d := b.QStart - b.QStop
			if d < 0 {
				d = -d
			}
			thisCovered += d + 1
			thisAlignLen += b.HitLen
			thisMismatches += b.NMismatch
			thisGaps += b.NGaps
		}
		identity := 100 - float64(thisMismatches+thisGaps)*100/float64(thisAlignLen)
		coverage := float64(thisCovered) * 100 / float64(sz.MustLen(query))
		if opts.list {
			fmt.Printf("%s\t%.1f\t%.1f\n", query, identity, coverage)
		}
		if identity >= float64(opts.pctid) && coverage >= float64(opts.pctcov) {
			valid[query] = true
		}
		covered += thisCovered
		mismatches += thisMismatches
		gaps += thisGaps
		alignLen += thisAlignLen
	}

	cutoffs := fmt.Sprintf("(id=%d%% cov=%d%%)", opts.pctid, opts.pctcov)
	total := sz.Count()
	fmt.Fprintf(os.Stderr, "Identity: %d mismatches, %d gaps, %d alignlen\n", mismatches, gaps, alignLen)
	fmt.Fprintf(os.Stderr, "Total mapped: %d (%.1f%% of %d)\n",
		len(queries), float64(len(queries))*100/float64(total), total)
	fmt.Fprintf(os.Stderr, "Total valid %s: %d (%.1f%% of %d)\n",
		cutoffs, len(valid), float64(len(valid))*100/float64(total), total)
	fmt.Fprintf(os.Stderr, "Average id = %.2f%%\n",
		100-float64(mismatches+gaps)*100/float64(alignLen))
	queriesCombined := 0
	for _, q := range queries {
		queriesCombined += sz.MustLen(q)
	}
	fmt.Fprintf(os.Stderr, "Coverage: %d covered, %d total\n", covered, queriesCombined)
	fmt.Fprintf(os.Stderr, "Average coverage = %.2f%%\n",
		float64(covered)*100/float64(queriesCombined))

	if opts.idsPath != "" {
		ids := make([]string, 0, len(valid))
		for q := range valid {
			ids = append(ids, q)
		}
		sort.Strings(ids)
		if err := withOutput(opts.idsPath, func(w io.Writer) error {
			for _, id := range ids {
				if _, err := fmt.Fprintln(w, id); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
		log.Printf("Queries beyond cutoffs %s written to %s", cutoffs, opts.idsPath)
	}
	if opts.outPath == "" {
		return nil
	}
	return withOutput(opts.outPath, func(w io.Writer) error {
		for _, b := range recs {
			if !valid[b.Query] {
				continue
			}
			if _, err := fmt.Fprintln(w, b.String()); err != nil {
				return err
			}
		}
		return nil
	})
}
