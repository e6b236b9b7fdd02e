package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/blast/encoding/blast"
	"github.com/klauspost/compress/gzip"
)

// withInput opens path and hands fn an uncompressed reader. "-" reads stdin.
func withInput(path string, fn func(io.Reader) error) (err error) {
	if path == "-" {
		return fn(os.Stdin)
	}
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(r); err != nil {
			return err
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	return fn(r)
}

// withOutput creates path and hands fn a buffered writer. An empty path or
// "-" writes to stdout.
func withOutput(path string, fn func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err = fn(w); err != nil {
			return err
		}
		return w.Flush()
	}
	ctx := vcontext.Background()
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := bufio.NewWriter(out.Writer(ctx))
	if err = fn(w); err != nil {
		return err
	}
	return w.Flush()
}

func readRecords(path string) (recs []blast.Record, err error) {
	err = withInput(path, func(r io.Reader) error {
		var e error
		recs, e = blast.ReadAll(r)
		return e
	})
	return recs, err
}

func writeRecords(w io.Writer, recs []blast.Record) error {
	for i := range recs {
		if _, err := fmt.Fprintln(w, recs[i].String()); err != nil {
			return err
		}
	}
	return nil
}

type idRow struct {
	ID   string
	Name string
}

// readIDMap loads a two-column id<TAB>name file.
func readIDMap(path string) (map[string]string, error) {
	m := make(map[string]string)
	err := withInput(path, func(in io.Reader) error {
		r := tsv.NewReader(in)
		r.Comment = '#'
		for {
			var row idRow
			if err := r.Read(&row); err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			m[row.ID] = row.Name
		}
	})
	return m, err
}
