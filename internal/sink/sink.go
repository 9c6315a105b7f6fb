// Package sink delivers computed VWAP rows to tabular outputs.
package sink

import "main/internal/vwap"

// Sink receives one row set per completed hour window. The label is derived
// from the feed timestamp at which the flush fired.
type Sink interface {
	WriteRows(label string, rows []vwap.Row) error
	Close() error
}
