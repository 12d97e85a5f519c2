package fastq

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed marks a record skipped by the Scanner: seq/qual length
	// mismatch, bad header/separator line or an undecodable quality char.
	ErrMalformed = errors.New("malformed FASTQ record")
	// ErrTruncated is reported when the stream ends inside a 4-line block.
	ErrTruncated = errors.New("truncated FASTQ stream")
	// ErrSourceNotFound is returned by Open for a missing input path.
	ErrSourceNotFound = errors.New("FASTQ source not found")
)

// Encoding maps quality characters to Phred scores.
type Encoding struct {
	Name   string
	Offset byte
	// printable range accepted by Decode, inclusive
	Min, Max byte
}

var (
	// Phred33 is the Sanger / Illumina 1.8+ encoding, '!' is Q0.
	Phred33 = Encoding{Name: "phred33", Offset: 33, Min: '!', Max: '~'}
	// Phred64 is the Illumina 1.3-1.7 encoding, '@' is Q0.
	Phred64 = Encoding{Name: "phred64", Offset: 64, Min: '@', Max: '~'}
)

// Decode appends the Phred scores of qual to dst[:0] and returns it.
func (e Encoding) Decode(qual []byte, dst []int) ([]int, error) {
	dst = dst[:0]
	for i, c := range qual {
		if c < e.Min || c > e.Max {
			return dst, fmt.Errorf("%w: %s quality char %q at base %d", ErrMalformed, e.Name, c, i+1)
		}
		dst = append(dst, int(c-e.Offset))
	}
	return dst, nil
}

// Record is one read. Its slices are owned by the Scanner and only valid
// until the next call to Scan.
type Record struct {
	ID   []byte
	Seq  []byte
	Qual []int
}

func (r *Record) Len() int {
	return len(r.Seq)
}

// MeanQuality is the arithmetic mean of the record's quality scores.
func (r *Record) MeanQuality() float64 {
	if len(r.Qual) == 0 {
		return 0
	}
	var sum = 0
	for _, q := range r.Qual {
		sum += q
	}
	return float64(sum) / float64(len(r.Qual))
}
