package fastq

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

const maxLineSize = 4 * 1024 * 1024 // 4MB per line

// Scanner reads FASTQ records one 4-line block at a time. Malformed and
// empty records are skipped and counted; the scan only stops at end of
// stream, at a truncated block or on a read error.
//
// Scanner is single-pass and not safe for concurrent use.
type Scanner struct {
	b   *bufio.Scanner
	enc Encoding
	rec Record
	err error

	line      int
	malformed int
	empty     int
	truncated bool
	// last line ended at EOF without a newline
	unterminated bool
}

// NewScanner returns a Scanner decoding qualities with enc.
func NewScanner(r io.Reader, enc Encoding) *Scanner {
	var b = bufio.NewScanner(r)
	b.Buffer(make([]byte, 64*1024), maxLineSize)
	var s = &Scanner{b: b, enc: enc}
	b.Split(s.splitLines)
	return s
}

// splitLines is bufio.ScanLines, noting whether the token was newline-terminated.
func (s *Scanner) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanLines(data, atEOF)
	if token != nil {
		s.unterminated = data[advance-1] != '\n'
	}
	return advance, token, err
}

// Scan advances to the next valid record. It returns false at the end of
// the stream or on error; Err reports which.
func (s *Scanner) Scan() bool {
	for s.err == nil {
		var start = s.line + 1
		id, ok := s.header()
		if !ok {
			return false
		}
		s.rec.ID = append(s.rec.ID[:0], id...)

		var n = 1
		var seq, sep, qual []byte
		if seq, ok = s.next(); ok {
			s.rec.Seq = append(s.rec.Seq[:0], seq...)
			n++
			if sep, ok = s.next(); ok {
				var plus = len(sep) > 0 && sep[0] == '+'
				n++
				if qual, ok = s.next(); ok {
					if s.unterminated && len(qual) < len(s.rec.Seq) {
						s.truncated = true
						s.err = fmt.Errorf("%w: block at line %d ends inside its quality line", ErrTruncated, start)
						return false
					}
					if s.accept(start, plus, qual) {
						return true
					}
					continue
				}
			}
		}
		if s.err == nil {
			s.truncated = true
			s.err = fmt.Errorf("%w: block at line %d has %d of 4 lines", ErrTruncated, start, n)
		}
		return false
	}
	return false
}

func (s *Scanner) accept(start int, plus bool, qual []byte) bool {
	var err error
	switch {
	case s.rec.ID[0] != '@':
		err = fmt.Errorf("%w: header does not start with '@'", ErrMalformed)
	case !plus:
		err = fmt.Errorf("%w: separator does not start with '+'", ErrMalformed)
	case len(qual) != len(s.rec.Seq):
		err = fmt.Errorf("%w: sequence length %d, quality length %d", ErrMalformed, len(s.rec.Seq), len(qual))
	case len(s.rec.Seq) == 0:
		s.empty++
		slog.Debug("skip empty record", "line", start)
		return false
	default:
		s.rec.Qual, err = s.enc.Decode(qual, s.rec.Qual)
	}
	if err != nil {
		s.malformed++
		slog.Debug("skip record", "line", start, "err", err)
		return false
	}
	return true
}

// header returns the next non-blank line, the first line of a block.
func (s *Scanner) header() ([]byte, bool) {
	for {
		line, ok := s.next()
		if !ok {
			return nil, false
		}
		if len(line) > 0 {
			return line, true
		}
	}
}

func (s *Scanner) next() ([]byte, bool) {
	if !s.b.Scan() {
		if err := s.b.Err(); err != nil {
			s.err = fmt.Errorf("read line %d: %w", s.line+1, err)
		}
		return nil, false
	}
	s.line++
	return bytes.TrimSuffix(s.b.Bytes(), []byte{'\r'}), true
}

// Record returns the current record, valid until the next call to Scan.
func (s *Scanner) Record() *Record {
	return &s.rec
}

// Err returns nil after a clean end of stream, an ErrTruncated wrapper
// for a partial final block, or the underlying read error.
func (s *Scanner) Err() error {
	return s.err
}

// Malformed is the number of skipped malformed records so far.
func (s *Scanner) Malformed() int {
	return s.malformed
}

// Empty is the number of skipped zero-length records so far.
func (s *Scanner) Empty() int {
	return s.empty
}

func (s *Scanner) Truncated() bool {
	return s.truncated
}

// Lines is the number of lines consumed so far.
func (s *Scanner) Lines() int {
	return s.line
}
