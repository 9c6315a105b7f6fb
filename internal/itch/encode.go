package itch

import "encoding/binary"

// Encode functions serialize messages into their canonical wire size,
// mirroring the decode offsets. They exist for the feed generator and tests;
// fields this engine does not model (attribution, cross type, halt reasons)
// are left zeroed.

func prepare(dst []byte, size int) []byte {
	if cap(dst) < size {
		return make([]byte, size)
	}
	dst = dst[:size]
	for i := range dst {
		dst[i] = 0
	}
	return dst
}

func putHeader(dst []byte, tag byte, locator uint16, timestamp uint64) {
	dst[0] = tag
	binary.BigEndian.PutUint16(dst[1:3], locator)
	dst[5] = byte(timestamp >> 40)
	dst[6] = byte(timestamp >> 32)
	dst[7] = byte(timestamp >> 24)
	dst[8] = byte(timestamp >> 16)
	dst[9] = byte(timestamp >> 8)
	dst[10] = byte(timestamp)
}

func putSymbol(dst []byte, symbol string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, symbol)
}

// EncodeTimestampOnly serializes a header-only record for the auxiliary
// message types that carry no VWAP-relevant payload.
func EncodeTimestampOnly(dst []byte, tag byte, locator uint16, timestamp uint64, size int) []byte {
	if size < HeaderSize {
		size = HeaderSize
	}
	dst = prepare(dst, size)
	putHeader(dst, tag, locator, timestamp)
	return dst
}

func (m SystemEvent) Encode(dst []byte) []byte {
	dst = prepare(dst, SystemEventSize)
	putHeader(dst, TagSystemEvent, 0, m.Timestamp)
	dst[11] = m.EventCode
	return dst
}

func (m StockDirectory) Encode(dst []byte) []byte {
	dst = prepare(dst, StockDirectorySize)
	putHeader(dst, TagStockDirectory, m.Locator, m.Timestamp)
	putSymbol(dst[11:19], m.Symbol)
	return dst
}

func (m AddOrder) Encode(dst []byte) []byte {
	tag, size := TagAddOrder, AddOrderSize
	if m.Attributed {
		tag, size = TagAddOrderAttributed, AddOrderAttributedSize
	}
	dst = prepare(dst, size)
	putHeader(dst, tag, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.OrderID)
	binary.BigEndian.PutUint32(dst[20:24], m.Qty)
	binary.BigEndian.PutUint32(dst[32:36], m.Price)
	return dst
}

func (m OrderExecuted) Encode(dst []byte) []byte {
	dst = prepare(dst, OrderExecutedSize)
	putHeader(dst, TagOrderExecuted, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.OrderID)
	binary.BigEndian.PutUint32(dst[19:23], m.Qty)
	binary.BigEndian.PutUint64(dst[23:31], m.MatchID)
	return dst
}

func (m OrderExecutedPrice) Encode(dst []byte) []byte {
	dst = prepare(dst, OrderExecutedPriceSize)
	putHeader(dst, TagOrderExecutedPrice, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.OrderID)
	binary.BigEndian.PutUint32(dst[19:23], m.Qty)
	binary.BigEndian.PutUint64(dst[23:31], m.MatchID)
	if m.Printable {
		dst[31] = 'Y'
	} else {
		dst[31] = NonPrintable
	}
	binary.BigEndian.PutUint32(dst[32:36], m.Price)
	return dst
}

func (m OrderCancel) Encode(dst []byte) []byte {
	dst = prepare(dst, OrderCancelSize)
	putHeader(dst, TagOrderCancel, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.OrderID)
	binary.BigEndian.PutUint32(dst[19:23], m.Qty)
	return dst
}

func (m OrderDelete) Encode(dst []byte) []byte {
	dst = prepare(dst, OrderDeleteSize)
	putHeader(dst, TagOrderDelete, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.OrderID)
	return dst
}

func (m OrderReplace) Encode(dst []byte) []byte {
	dst = prepare(dst, OrderReplaceSize)
	putHeader(dst, TagOrderReplace, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.OldOrderID)
	binary.BigEndian.PutUint64(dst[19:27], m.NewOrderID)
	binary.BigEndian.PutUint32(dst[27:31], m.Qty)
	binary.BigEndian.PutUint32(dst[31:35], m.Price)
	return dst
}

func (m Trade) Encode(dst []byte) []byte {
	dst = prepare(dst, TradeSize)
	putHeader(dst, TagTrade, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint32(dst[20:24], m.Qty)
	binary.BigEndian.PutUint32(dst[32:36], m.Price)
	binary.BigEndian.PutUint64(dst[36:44], m.MatchID)
	return dst
}

func (m CrossTrade) Encode(dst []byte) []byte {
	dst = prepare(dst, CrossTradeSize)
	putHeader(dst, TagCrossTrade, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.Qty)
	binary.BigEndian.PutUint32(dst[27:31], m.Price)
	binary.BigEndian.PutUint64(dst[31:39], m.MatchID)
	return dst
}

func (m BrokenTrade) Encode(dst []byte) []byte {
	dst = prepare(dst, BrokenTradeSize)
	putHeader(dst, TagBrokenTrade, m.Locator, m.Timestamp)
	binary.BigEndian.PutUint64(dst[11:19], m.MatchID)
	return dst
}
