// Package feed supplies length-prefixed binary records from a session file.
package feed

import (
	"bufio"
	"encoding/binary"
	"io"

	"main/pkg/exception"
)

// ReaderOptions controls record decoding.
type ReaderOptions struct {
	// MaxRecordSize rejects records larger than this many bytes. Zero means
	// no limit beyond the 2-byte length prefix itself.
	MaxRecordSize int
}

// Reader decodes records framed by a 2-byte big-endian length prefix.
type Reader struct {
	r      *bufio.Reader
	opts   ReaderOptions
	lenBuf [2]byte
	record []byte
}

// NewReader wraps an io.Reader with record framing.
func NewReader(r io.Reader, opts ReaderOptions) *Reader {
	return &Reader{r: bufio.NewReader(r), opts: opts}
}

// Next returns the next record. The returned slice is only valid until the
// next call to Next. A zero-length prefix terminates the stream the same way
// a clean EOF does.
func (r *Reader) Next() ([]byte, error) {
	n, err := io.ReadFull(r.r, r.lenBuf[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, exception.ErrRecordTruncated
		}
		return nil, err
	}

	size := int(binary.BigEndian.Uint16(r.lenBuf[:]))
	if size == 0 {
		return nil, io.EOF
	}
	if r.opts.MaxRecordSize > 0 && size > r.opts.MaxRecordSize {
		return nil, exception.ErrRecordTooLarge
	}

	if cap(r.record) < size {
		r.record = make([]byte, size)
	}
	r.record = r.record[:size]
	if _, err := io.ReadFull(r.r, r.record); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, exception.ErrRecordTruncated
		}
		return nil, err
	}
	return r.record, nil
}
