package vwap

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func symbolTable(symbols map[uint16]string) func(uint16) (string, bool) {
	return func(locator uint16) (string, bool) {
		sym, ok := symbols[locator]
		return sym, ok
	}
}

func TestReplacePolicyKeepsLatestTrade(t *testing.T) {
	l := NewLedger(PolicyReplace)
	l.Register(7)
	l.Record(7, Trade{Price: 1_000_000, Qty: 100, MatchID: 1})
	l.Record(7, Trade{Price: 2_000_000, Qty: 50, MatchID: 2})

	pending := l.Pending(7)
	require.Len(t, pending, 1)
	require.Equal(t, Trade{Price: 2_000_000, Qty: 50, MatchID: 2}, pending[0])
}

func TestAccumulatePolicyAppends(t *testing.T) {
	l := NewLedger(PolicyAccumulate)
	l.Register(7)
	l.Record(7, Trade{Price: 1_000_000, Qty: 100, MatchID: 1})
	l.Record(7, Trade{Price: 2_000_000, Qty: 300, MatchID: 2})

	require.Len(t, l.Pending(7), 2)

	rows := l.Flush(symbolTable(map[uint16]string{7: "ACME"}))
	require.Len(t, rows, 1)
	require.Equal(t, "ACME", rows[0].Symbol)
	// (1000000*100 + 2000000*300) / (400 * 1e4) = 175
	require.True(t, rows[0].VWAP.Equal(decimal.NewFromInt(175)), "got %s", rows[0].VWAP)

	// accumulate clears after flush
	require.Empty(t, l.Pending(7))
}

func TestReplacePolicyPersistsAcrossFlushes(t *testing.T) {
	l := NewLedger(PolicyReplace)
	l.Register(7)
	l.Record(7, Trade{Price: 1_000_000, Qty: 100, MatchID: 1})

	symbols := symbolTable(map[uint16]string{7: "ACME"})
	first := l.Flush(symbols)
	second := l.Flush(symbols)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.True(t, second[0].VWAP.Equal(decimal.NewFromInt(100)))
}

func TestFlushSingleTradeVWAPIsTradePrice(t *testing.T) {
	l := NewLedger(PolicyReplace)
	l.Register(7)
	l.Record(7, Trade{Price: 1_000_000, Qty: 100, MatchID: 55})

	rows := l.Flush(symbolTable(map[uint16]string{7: "ACME"}))
	require.Len(t, rows, 1)
	require.True(t, rows[0].VWAP.Equal(decimal.NewFromInt(100)), "got %s", rows[0].VWAP)
}

func TestFlushSkipsZeroVolumeAndUnknownSymbols(t *testing.T) {
	l := NewLedger(PolicyAccumulate)
	l.Register(1) // registered, never traded
	l.Record(2, Trade{Price: 1_000_000, Qty: 10, MatchID: 1}) // traded, never registered
	l.Record(3, Trade{Price: 1_000_000, Qty: 10, MatchID: 2})

	rows := l.Flush(symbolTable(map[uint16]string{1: "IDLE", 3: "ACME"}))
	require.Len(t, rows, 1)
	require.Equal(t, "ACME", rows[0].Symbol)
}

func TestFlushSortsRowsBySymbol(t *testing.T) {
	l := NewLedger(PolicyReplace)
	l.Record(1, Trade{Price: 1_000_000, Qty: 1, MatchID: 1})
	l.Record(2, Trade{Price: 1_000_000, Qty: 1, MatchID: 2})
	l.Record(3, Trade{Price: 1_000_000, Qty: 1, MatchID: 3})

	rows := l.Flush(symbolTable(map[uint16]string{1: "ZZZ", 2: "AAA", 3: "MMM"}))
	require.Len(t, rows, 3)
	require.Equal(t, []string{"AAA", "MMM", "ZZZ"}, []string{rows[0].Symbol, rows[1].Symbol, rows[2].Symbol})
}

func TestBreakRemovesMatchingTrades(t *testing.T) {
	l := NewLedger(PolicyAccumulate)
	l.Register(7)
	l.Record(7, Trade{Price: 1_000_000, Qty: 100, MatchID: 1})
	l.Record(7, Trade{Price: 2_000_000, Qty: 50, MatchID: 2})

	l.Break(7, 1)
	pending := l.Pending(7)
	require.Len(t, pending, 1)
	require.Equal(t, uint64(2), pending[0].MatchID)
}

func TestBreakUnknownLocatorNoop(t *testing.T) {
	l := NewLedger(PolicyReplace)
	l.Break(99, 1) // must not panic or create an entry
	require.Empty(t, l.Pending(99))
}

func TestRegisterResetsEntry(t *testing.T) {
	l := NewLedger(PolicyAccumulate)
	l.Record(7, Trade{Price: 1, Qty: 1, MatchID: 1})
	l.Register(7)
	require.Empty(t, l.Pending(7))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyReplace, p)

	p, err = ParsePolicy("accumulate")
	require.NoError(t, err)
	require.Equal(t, PolicyAccumulate, p)

	_, err = ParsePolicy("latest")
	require.Error(t, err)
}
