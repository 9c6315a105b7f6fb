// Package obs collects lightweight feed-processing counters.
package obs

import "sync/atomic"

// Metrics counts processed records per message tag plus flush activity.
type Metrics struct {
	tagCounts [256]uint64
	records   uint64
	flushes   uint64
	rows      uint64
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TagCounts map[byte]uint64
	Records   uint64
	Flushes   uint64
	Rows      uint64
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObserveRecord counts one processed record by its type tag.
func (m *Metrics) ObserveRecord(tag byte) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.tagCounts[tag], 1)
	atomic.AddUint64(&m.records, 1)
}

// ObserveFlush counts one flush and the rows it emitted.
func (m *Metrics) ObserveFlush(rowCount int) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.flushes, 1)
	atomic.AddUint64(&m.rows, uint64(rowCount))
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{TagCounts: make(map[byte]uint64)}
	if m == nil {
		return snap
	}
	for tag := range m.tagCounts {
		if count := atomic.LoadUint64(&m.tagCounts[tag]); count > 0 {
			snap.TagCounts[byte(tag)] = count
		}
	}
	snap.Records = atomic.LoadUint64(&m.records)
	snap.Flushes = atomic.LoadUint64(&m.flushes)
	snap.Rows = atomic.LoadUint64(&m.rows)
	return snap
}
