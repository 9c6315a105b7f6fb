// Package vwap holds qualifying executions per instrument and computes the
// hourly volume-weighted average price rows emitted at each flush.
package vwap

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Policy controls how executions accumulate between flushes.
type Policy uint8

const (
	// PolicyReplace keeps only the most recent execution per instrument, so
	// a flush reflects the latest trade's price rather than a true average.
	PolicyReplace Policy = iota
	// PolicyAccumulate keeps every execution until the next flush, yielding
	// a true volume-weighted average for the hour window.
	PolicyAccumulate
)

// ParsePolicy resolves a config/flag value.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "replace":
		return PolicyReplace, nil
	case "accumulate":
		return PolicyAccumulate, nil
	default:
		return PolicyReplace, fmt.Errorf("unknown ledger policy: %q", s)
	}
}

func (p Policy) String() string {
	if p == PolicyAccumulate {
		return "accumulate"
	}
	return "replace"
}

// Trade is one qualifying execution pending the next flush.
type Trade struct {
	Price   uint32
	Qty     uint64
	MatchID uint64
}

// Row is one output row of a flush.
type Row struct {
	Symbol string
	VWAP   decimal.Decimal
}

// priceScale undoes the four implied decimal places of feed prices.
var priceScale = decimal.New(1, 4)

// Ledger holds pending executions keyed by instrument locator.
type Ledger struct {
	policy Policy
	trades map[uint16][]Trade
}

// NewLedger creates an empty ledger with the given accumulation policy.
func NewLedger(policy Policy) *Ledger {
	return &Ledger{
		policy: policy,
		trades: make(map[uint16][]Trade),
	}
}

// Register initializes (or resets) the entry for a locator when its
// instrument definition arrives.
func (l *Ledger) Register(locator uint16) {
	l.trades[locator] = nil
}

// Record stores a qualifying execution per the accumulation policy.
func (l *Ledger) Record(locator uint16, trade Trade) {
	if l.policy == PolicyReplace {
		l.trades[locator] = append(l.trades[locator][:0], trade)
		return
	}
	l.trades[locator] = append(l.trades[locator], trade)
}

// Break removes pending trades for the locator matching the given match id.
// Locators with no entry are a no-op.
func (l *Ledger) Break(locator uint16, matchID uint64) {
	trades, ok := l.trades[locator]
	if !ok {
		return
	}
	kept := trades[:0]
	for _, trade := range trades {
		if trade.MatchID != matchID {
			kept = append(kept, trade)
		}
	}
	l.trades[locator] = kept
}

// Pending returns a copy of the trades currently held for a locator.
func (l *Ledger) Pending(locator uint16) []Trade {
	trades := l.trades[locator]
	if len(trades) == 0 {
		return nil
	}
	out := make([]Trade, len(trades))
	copy(out, trades)
	return out
}

// Flush computes one row per instrument with positive pending volume, sorted
// by symbol. Locators without a registered symbol are skipped rather than
// failing; the directory message may never have arrived. Under
// PolicyAccumulate pending trades are cleared afterwards; under
// PolicyReplace entries persist until overwritten.
func (l *Ledger) Flush(symbolFor func(uint16) (string, bool)) []Row {
	rows := make([]Row, 0, len(l.trades))
	for locator, trades := range l.trades {
		var volume, notional uint64
		for _, trade := range trades {
			volume += trade.Qty
			notional += uint64(trade.Price) * trade.Qty
		}
		if volume == 0 {
			continue
		}
		sym, ok := symbolFor(locator)
		if !ok {
			continue
		}
		value := decimal.NewFromInt(int64(notional)).
			Div(decimal.NewFromInt(int64(volume)).Mul(priceScale))
		rows = append(rows, Row{Symbol: sym, VWAP: value})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })

	if l.policy == PolicyAccumulate {
		for locator := range l.trades {
			l.trades[locator] = nil
		}
	}
	return rows
}
