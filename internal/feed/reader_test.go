package feed

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"main/pkg/exception"
)

func frame(records ...[]byte) []byte {
	var buf bytes.Buffer
	var prefix [2]byte
	for _, record := range records {
		binary.BigEndian.PutUint16(prefix[:], uint16(len(record)))
		buf.Write(prefix[:])
		buf.Write(record)
	}
	return buf.Bytes()
}

func TestReaderSequential(t *testing.T) {
	first := []byte{'S', 1, 2, 3}
	second := []byte{'A', 9, 8, 7, 6, 5}
	r := NewReader(bytes.NewReader(frame(first, second)), ReaderOptions{})

	got, err := r.Next()
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if !bytes.Equal(got, first) {
		t.Fatalf("first record mismatch: got %v want %v", got, first)
	}

	got, err = r.Next()
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Fatalf("second record mismatch: got %v want %v", got, second)
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReaderZeroLengthTerminates(t *testing.T) {
	data := frame([]byte{'S', 1})
	data = append(data, 0, 0)
	data = append(data, frame([]byte{'A', 2})...) // unreachable after terminator

	r := NewReader(bytes.NewReader(data), ReaderOptions{})
	if _, err := r.Next(); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected EOF at zero-length prefix, got %v", err)
	}
}

func TestReaderTruncatedBody(t *testing.T) {
	data := frame([]byte{'S', 1, 2, 3})
	r := NewReader(bytes.NewReader(data[:len(data)-2]), ReaderOptions{})
	if _, err := r.Next(); err != exception.ErrRecordTruncated {
		t.Fatalf("expected ErrRecordTruncated, got %v", err)
	}
}

func TestReaderTruncatedPrefix(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00}), ReaderOptions{})
	if _, err := r.Next(); err != exception.ErrRecordTruncated {
		t.Fatalf("expected ErrRecordTruncated, got %v", err)
	}
}

func TestReaderMaxRecordSize(t *testing.T) {
	r := NewReader(bytes.NewReader(frame(make([]byte, 100))), ReaderOptions{MaxRecordSize: 50})
	if _, err := r.Next(); err != exception.ErrRecordTooLarge {
		t.Fatalf("expected ErrRecordTooLarge, got %v", err)
	}
}

func TestOpenFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.itch")
	if err := os.WriteFile(path, frame([]byte{'S', 1}, []byte{'A', 2}), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}

	src, err := OpenFile(path, ReaderOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	var count int
	for {
		_, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Fatalf("record count: got %d want 2", count)
	}
}

func TestOpenFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.itch.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write(frame([]byte{'S', 1, 2}, []byte{'P', 3, 4})); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}

	src, err := OpenFile(path, ReaderOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	record, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if record[0] != 'S' {
		t.Fatalf("first record tag: got %q want 'S'", record[0])
	}
	if _, err := src.Next(); err != nil {
		t.Fatalf("second record: %v", err)
	}
	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}
