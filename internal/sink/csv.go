package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"main/internal/vwap"
)

// CSVSink writes each flush as <label>.csv inside a directory.
type CSVSink struct {
	dir string
}

// NewCSV creates the output directory if needed.
func NewCSV(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CSVSink{dir: dir}, nil
}

// WriteRows writes one file per flush, header included even when no
// instrument qualified.
func (s *CSVSink) WriteRows(label string, rows []vwap.Row) error {
	file, err := os.Create(filepath.Join(s.dir, label+".csv"))
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write([]string{"stock_symbol", "VWAP"}); err != nil {
		_ = file.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Symbol, row.VWAP.String()}); err != nil {
			_ = file.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Close is a no-op; every flush closes its own file.
func (s *CSVSink) Close() error {
	return nil
}
