// Package sizes provides sequence-length tables keyed by sequence name,
// loaded from FASTA text, samtools .fai indexes, or two-column
// name<TAB>length files.
package sizes

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// Sizes maps sequence names to their lengths in bases.
type Sizes struct {
	lens  map[string]int
	names []string
}

func newSizes() *Sizes {
	return &Sizes{lens: make(map[string]int)}
}

func (s *Sizes) add(name string, n int) {
	if _, ok := s.lens[name]; !ok {
		s.names = append(s.names, name)
	}
	s.lens[name] = n
}

// Len returns the length of the named sequence and whether it is present.
func (s *Sizes) Len(name string) (int, bool) {
	n, ok := s.lens[name]
	return n, ok
}

// MustLen returns the length of the named sequence and crashes the process
// when the name is absent. Callers use it where an unknown name means the
// inputs do not belong together.
func (s *Sizes) MustLen(name string) int {
	n, ok := s.lens[name]
	if !ok {
		log.Fatalf("sizes: unknown sequence %q", name)
	}
	return n
}

// Names returns the sequence names in input order.
func (s *Sizes) Names() []string { return s.names }

// Count returns the number of sequences.
func (s *Sizes) Count() int { return len(s.names) }

// Total returns the summed length of all sequences.
func (s *Sizes) Total() int {
	t := 0
	for _, n := range s.lens {
		t += n
	}
	return t
}

// ReadFasta scans FASTA text and records the length of every sequence.
func ReadFasta(in io.Reader) (*Sizes, error) {
	var (
		s     = newSizes()
		r     = bufio.NewReader(in)
		name  string
		bases int
		inSeq bool
		eof   bool
	)
	for !eof {
		fullLine, e := r.ReadBytes('\n')
		if e == io.EOF {
			eof = true
		} else if e != nil {
			return nil, e
		}
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if inSeq {
				s.add(name, bases)
			}
			name = strings.Split(string(line[1:]), " ")[0]
			bases = 0
			inSeq = true
			continue
		}
		if !inSeq {
			return nil, errors.E("malformed FASTA file")
		}
		bases += len(line)
	}
	if !inSeq {
		return nil, errors.E("empty FASTA file")
	}
	s.add(name, bases)
	return s, nil
}

// faiRow follows the column layout defined by "samtools faidx"
// (http://www.htslib.org/doc/faidx.html).
type faiRow struct {
	Name      string
	Len       int64
	Offset    int64
	LineBases int64
	LineWidth int64
}

// ReadFAI reads a samtools .fai index.
func ReadFAI(in io.Reader) (*Sizes, error) {
	r := tsv.NewReader(in)
	s := newSizes()
	for {
		var row faiRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		s.add(row.Name, int(row.Len))
	}
	return s, nil
}

type sizeRow struct {
	Name string
	Len  int64
}

// ReadTSV reads a two-column name<TAB>length file.
func ReadTSV(in io.Reader) (*Sizes, error) {
	r := tsv.NewReader(in)
	r.Comment = '#'
	s := newSizes()
	for {
		var row sizeRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		s.add(row.Name, int(row.Len))
	}
	return s, nil
}

// Open loads a length table from path, dispatching on the file extension:
// .fai loads as an index, .fa/.fasta/.fna (optionally .gz compressed) scan
// the sequences, anything else loads as a two-column file.
func Open(ctx context.Context, path string) (s *Sizes, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var (
		r    io.Reader = in.Reader(ctx)
		base           = path
	)
	if strings.HasSuffix(base, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close() // nolint: errcheck
		r = gz
		base = strings.TrimSuffix(base, ".gz")
	}
	switch {
	case strings.HasSuffix(base, ".fai"):
		return ReadFAI(r)
	case strings.HasSuffix(base, ".fa"), strings.HasSuffix(base, ".fasta"),
		strings.HasSuffix(base, ".fna"):
		return ReadFasta(r)
	}
	return ReadTSV(r)
}
