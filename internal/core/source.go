package core

// source.go normalizes catalog files before they reach a parser.
//
// Files produced on Windows often start with a UTF-8 byte order mark, and
// hand-edited catalogs sometimes contain bytes that are not valid UTF-8.
// SourceReader strips the former and replaces the latter with '?' so that
// the codecs only ever see well-formed text. LoadFrom wraps every source in
// one and reports the replacement count with the load result.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceReader is an io.Reader that skips a leading UTF-8 BOM and replaces
// invalid UTF-8 bytes with '?'. Memory use is bounded by its buffer.
type SourceReader struct {
	br         *bufio.Reader
	bomChecked bool
	pending    []byte // encoded rune not yet handed to the caller
	replaced   int
}

// NewSourceReader wraps r.
func NewSourceReader(r io.Reader) *SourceReader {
	if sr, ok := r.(*SourceReader); ok {
		return sr
	}
	return &SourceReader{
		br:      bufio.NewReader(r),
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader.
func (s *SourceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !s.bomChecked {
		s.bomChecked = true
		if head, err := s.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = s.br.Discard(len(utf8BOM))
		}
	}

	n := 0
	for n < len(p) {
		if len(s.pending) > 0 {
			c := copy(p[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		// Avoid blocking on the underlying reader once something is ready.
		if n > 0 && s.br.Buffered() == 0 {
			break
		}

		b, err := s.br.ReadByte()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if b < utf8.RuneSelf {
			p[n] = b
			n++
			continue
		}

		_ = s.br.UnreadByte()
		r, size, err := s.br.ReadRune()
		if err != nil {
			return n, err
		}
		if r == utf8.RuneError && size == 1 {
			s.replaced++
			s.pending = append(s.pending[:0], '?')
		} else {
			s.pending = utf8.AppendRune(s.pending[:0], r)
		}
	}

	return n, nil
}

// Replaced returns how many invalid bytes have been replaced so far.
func (s *SourceReader) Replaced() int {
	return s.replaced
}
