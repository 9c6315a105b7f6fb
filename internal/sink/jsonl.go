package sink

import (
	"bufio"
	"os"

	"github.com/bytedance/sonic"

	"main/internal/vwap"
)

// JSONLSink appends one JSON object per row to a single file, carrying the
// window label on every line so downstream pipelines need no file-name
// parsing.
type JSONLSink struct {
	file *os.File
	w    *bufio.Writer
}

type jsonRow struct {
	Window string `json:"window"`
	Symbol string `json:"stock_symbol"`
	VWAP   string `json:"vwap"`
}

// NewJSONL truncates and opens the output file.
func NewJSONL(path string) (*JSONLSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONLSink{file: file, w: bufio.NewWriter(file)}, nil
}

// WriteRows appends the flush rows as JSON lines.
func (s *JSONLSink) WriteRows(label string, rows []vwap.Row) error {
	for _, row := range rows {
		payload, err := sonic.ConfigFastest.Marshal(jsonRow{
			Window: label,
			Symbol: row.Symbol,
			VWAP:   row.VWAP.String(),
		})
		if err != nil {
			return err
		}
		if _, err := s.w.Write(payload); err != nil {
			return err
		}
		if err := s.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// Close flushes buffered lines and closes the file.
func (s *JSONLSink) Close() error {
	if err := s.w.Flush(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
