package pairs

import (
	"io"

	"github.com/grailbio/blast/encoding/bed"
	"github.com/grailbio/blast/encoding/blast"
	"github.com/grailbio/hts/sam"
)

// FromRecords projects alignment hits onto their subject axis, one mate per
// hit: the read is the query, the sequence it landed on is the subject.
func FromRecords(recs []blast.Record) []Mate {
	mates := make([]Mate, len(recs))
	for i, r := range recs {
		mates[i] = Mate{
			Accn:   r.Query,
			Seqid:  r.Subject,
			Start:  r.SStart,
			End:    r.SStop,
			Strand: r.Orientation,
		}
	}
	return mates
}

// FromFeatures converts BED features, one mate per feature.
func FromFeatures(feats []bed.Feature) []Mate {
	mates := make([]Mate, len(feats))
	for i, f := range feats {
		mates[i] = Mate{
			Accn:   f.Accn,
			Seqid:  f.Seqid,
			Start:  f.Start,
			End:    f.End,
			Strand: f.Strand,
		}
	}
	return mates
}

// RecordReader is the reading side shared by sam.Reader and bam.Reader.
type RecordReader interface {
	Read() (*sam.Record, error)
}

// ReadSAM drains rr into mates. Unmapped records are skipped; coordinates
// convert to 1-based inclusive.
func ReadSAM(rr RecordReader) ([]Mate, error) {
	var mates []Mate
	for {
		rec, err := rr.Read()
		if rec == nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}
		if rec.Ref == nil {
			continue
		}
		strand := byte('+')
		if rec.Strand() < 0 {
			strand = '-'
		}
		mates = append(mates, Mate{
			Accn:   rec.Name,
			Seqid:  rec.Ref.Name(),
			Start:  rec.Pos + 1,
			End:    rec.End(),
			Strand: strand,
		})
	}
	return mates, nil
}
