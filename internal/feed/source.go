package feed

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

const fileBufferSize = 1 << 20

// Source is a record stream backed by a feed file, transparently
// decompressing gzip input.
type Source struct {
	file   *os.File
	gz     *gzip.Reader
	reader *Reader
}

// OpenFile opens a plain or gzip-compressed feed file. Compression is
// detected from the gzip magic bytes, not the file name.
func OpenFile(path string, opts ReaderOptions) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(file, fileBufferSize)
	var body io.Reader = br
	var gz *gzip.Reader
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err = gzip.NewReader(br)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		body = gz
	}

	return &Source{
		file:   file,
		gz:     gz,
		reader: NewReader(body, opts),
	}, nil
}

// Next returns the next record from the file.
func (s *Source) Next() ([]byte, error) {
	return s.reader.Next()
}

// Close releases the underlying file.
func (s *Source) Close() error {
	if s.gz != nil {
		_ = s.gz.Close()
	}
	return s.file.Close()
}
