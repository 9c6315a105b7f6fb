package itch

import (
	"encoding/binary"
	"strings"
)

func uint48(src []byte) uint64 {
	_ = src[5]
	return uint64(src[0])<<40 | uint64(src[1])<<32 | uint64(src[2])<<24 |
		uint64(src[3])<<16 | uint64(src[4])<<8 | uint64(src[5])
}

func symbol(src []byte) string {
	return strings.TrimSpace(string(src))
}

// Timestamp extracts the common-header timestamp from any message.
func Timestamp(src []byte) (uint64, bool) {
	if len(src) < HeaderSize {
		return 0, false
	}
	return uint48(src[5:11]), true
}

// Locator extracts the common-header stock locate code.
func Locator(src []byte) (uint16, bool) {
	if len(src) < HeaderSize {
		return 0, false
	}
	return binary.BigEndian.Uint16(src[1:3]), true
}

// DecodeSystemEvent parses an 'S' message.
func DecodeSystemEvent(src []byte) (SystemEvent, bool) {
	if len(src) < SystemEventSize {
		return SystemEvent{}, false
	}
	return SystemEvent{
		Timestamp: uint48(src[5:11]),
		EventCode: src[11],
	}, true
}

// DecodeStockDirectory parses an 'R' message.
func DecodeStockDirectory(src []byte) (StockDirectory, bool) {
	if len(src) < StockDirectorySize {
		return StockDirectory{}, false
	}
	return StockDirectory{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		Symbol:    symbol(src[11:19]),
	}, true
}

// DecodeAddOrder parses an 'A' or 'F' message. The fields used sit at the
// same offsets in both forms.
func DecodeAddOrder(src []byte) (AddOrder, bool) {
	if len(src) < AddOrderSize {
		return AddOrder{}, false
	}
	return AddOrder{
		Timestamp:  uint48(src[5:11]),
		Locator:    binary.BigEndian.Uint16(src[1:3]),
		OrderID:    binary.BigEndian.Uint64(src[11:19]),
		Qty:        binary.BigEndian.Uint32(src[20:24]),
		Price:      binary.BigEndian.Uint32(src[32:36]),
		Attributed: src[0] == TagAddOrderAttributed,
	}, true
}

// DecodeOrderExecuted parses an 'E' message.
func DecodeOrderExecuted(src []byte) (OrderExecuted, bool) {
	if len(src) < OrderExecutedSize {
		return OrderExecuted{}, false
	}
	return OrderExecuted{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		OrderID:   binary.BigEndian.Uint64(src[11:19]),
		Qty:       binary.BigEndian.Uint32(src[19:23]),
		MatchID:   binary.BigEndian.Uint64(src[23:31]),
	}, true
}

// DecodeOrderExecutedPrice parses a 'C' message.
func DecodeOrderExecutedPrice(src []byte) (OrderExecutedPrice, bool) {
	if len(src) < OrderExecutedPriceSize {
		return OrderExecutedPrice{}, false
	}
	return OrderExecutedPrice{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		OrderID:   binary.BigEndian.Uint64(src[11:19]),
		Qty:       binary.BigEndian.Uint32(src[19:23]),
		MatchID:   binary.BigEndian.Uint64(src[23:31]),
		Printable: src[31] != NonPrintable,
		Price:     binary.BigEndian.Uint32(src[32:36]),
	}, true
}

// DecodeOrderCancel parses an 'X' message.
func DecodeOrderCancel(src []byte) (OrderCancel, bool) {
	if len(src) < OrderCancelSize {
		return OrderCancel{}, false
	}
	return OrderCancel{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		OrderID:   binary.BigEndian.Uint64(src[11:19]),
		Qty:       binary.BigEndian.Uint32(src[19:23]),
	}, true
}

// DecodeOrderDelete parses a 'D' message.
func DecodeOrderDelete(src []byte) (OrderDelete, bool) {
	if len(src) < OrderDeleteSize {
		return OrderDelete{}, false
	}
	return OrderDelete{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		OrderID:   binary.BigEndian.Uint64(src[11:19]),
	}, true
}

// DecodeOrderReplace parses a 'U' message.
func DecodeOrderReplace(src []byte) (OrderReplace, bool) {
	if len(src) < OrderReplaceSize {
		return OrderReplace{}, false
	}
	return OrderReplace{
		Timestamp:  uint48(src[5:11]),
		Locator:    binary.BigEndian.Uint16(src[1:3]),
		OldOrderID: binary.BigEndian.Uint64(src[11:19]),
		NewOrderID: binary.BigEndian.Uint64(src[19:27]),
		Qty:        binary.BigEndian.Uint32(src[27:31]),
		Price:      binary.BigEndian.Uint32(src[31:35]),
	}, true
}

// DecodeTrade parses a 'P' message.
func DecodeTrade(src []byte) (Trade, bool) {
	if len(src) < TradeSize {
		return Trade{}, false
	}
	return Trade{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		Qty:       binary.BigEndian.Uint32(src[20:24]),
		Price:     binary.BigEndian.Uint32(src[32:36]),
		MatchID:   binary.BigEndian.Uint64(src[36:44]),
	}, true
}

// DecodeCrossTrade parses a 'Q' message.
func DecodeCrossTrade(src []byte) (CrossTrade, bool) {
	if len(src) < CrossTradeSize {
		return CrossTrade{}, false
	}
	return CrossTrade{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		Qty:       binary.BigEndian.Uint64(src[11:19]),
		Price:     binary.BigEndian.Uint32(src[27:31]),
		MatchID:   binary.BigEndian.Uint64(src[31:39]),
	}, true
}

// DecodeBrokenTrade parses a 'B' message.
func DecodeBrokenTrade(src []byte) (BrokenTrade, bool) {
	if len(src) < BrokenTradeSize {
		return BrokenTrade{}, false
	}
	return BrokenTrade{
		Timestamp: uint48(src[5:11]),
		Locator:   binary.BigEndian.Uint16(src[1:3]),
		MatchID:   binary.BigEndian.Uint64(src[11:19]),
	}, true
}
