package core

// streaming.go provides the reader chain every payload passes through before
// it reaches a table parser:
//
//   - BOM stripping: removes a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - UTF8Sanitizer: replaces invalid UTF-8 bytes with '?'
//   - LimitReader: fails with ErrFileTooLarge past the configured size
//
// Use WrapForIngest to apply all of them in the correct order.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkipBOM returns a reader that drops a leading UTF-8 BOM, if present.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// UTF8Sanitizer wraps an io.Reader and replaces invalid UTF-8 bytes with '?'
// on the fly. A multi-byte sequence split across reads is carried over to
// the next Read instead of being treated as invalid.
type UTF8Sanitizer struct {
	reader  io.Reader
	pending []byte
}

// NewUTF8Sanitizer creates a new streaming UTF-8 sanitizer.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := 0
	if len(s.pending) > 0 {
		offset = copy(p, s.pending)
		s.pending = s.pending[:0]
	}

	n, err := s.reader.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	if isASCII(p[:n]) {
		return n, err
	}
	return s.sanitize(p[:n], err == io.EOF), err
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// sanitize rewrites data in place and returns the number of bytes to hand
// out. Unless atEOF, an incomplete trailing sequence is moved to pending.
func (s *UTF8Sanitizer) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(data[read:]) {
				s.pending = append(s.pending, data[read:]...)
				return write
			}
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

// LimitReader fails with ErrFileTooLarge once more than Max bytes are read.
type LimitReader struct {
	reader    io.Reader
	Max       int64
	BytesRead int64
}

// NewLimitReader wraps r. A max of 0 or less disables the limit.
func NewLimitReader(r io.Reader, max int64) *LimitReader {
	return &LimitReader{reader: r, Max: max}
}

// Read implements io.Reader.
func (l *LimitReader) Read(p []byte) (int, error) {
	n, err := l.reader.Read(p)
	l.BytesRead += int64(n)
	if l.Max > 0 && l.BytesRead > l.Max {
		return 0, ErrFileTooLarge
	}
	return n, err
}

// WrapForIngest applies the size limit, BOM stripping and UTF-8 sanitization.
//
// The order matters:
// 1. The limit counts raw bytes as they arrive
// 2. BOM must be stripped before any decoding
// 3. UTF-8 sanitization happens last
func WrapForIngest(r io.Reader, maxSize int64) io.Reader {
	return NewUTF8Sanitizer(SkipBOM(NewLimitReader(r, maxSize)))
}
