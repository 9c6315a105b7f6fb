/*
Package itch decodes NASDAQ ITCH 5.0 style messages from fixed-offset
big-endian byte layouts.

Every message shares a common header: byte 0 is the one-character type tag,
bytes 1-2 the stock locate code, bytes 3-4 a tracking number, and bytes 5-10
a 48-bit timestamp in nanoseconds since midnight. Decode functions return
(message, ok); ok is false when the record is shorter than the message
layout, which callers treat as a fatal malformed record.
*/
package itch

// Message type tags.
const (
	TagSystemEvent         byte = 'S'
	TagStockDirectory      byte = 'R'
	TagTradingAction       byte = 'H'
	TagRegSHORestriction   byte = 'Y'
	TagParticipantPosition byte = 'L'
	TagMWCBDeclineLevel    byte = 'V'
	TagMWCBStatus          byte = 'W'
	TagIPOQuotingUpdate    byte = 'K'
	TagAuctionCollar       byte = 'J'
	TagOperationalHalt     byte = 'h'
	TagAddOrder            byte = 'A'
	TagAddOrderAttributed  byte = 'F'
	TagOrderExecuted       byte = 'E'
	TagOrderExecutedPrice  byte = 'C'
	TagOrderCancel         byte = 'X'
	TagOrderDelete         byte = 'D'
	TagOrderReplace        byte = 'U'
	TagTrade               byte = 'P'
	TagCrossTrade          byte = 'Q'
	TagBrokenTrade         byte = 'B'
	TagNOII                byte = 'I'
)

// Wire sizes per message type.
const (
	SystemEventSize        = 12
	StockDirectorySize     = 39
	AddOrderSize           = 36
	AddOrderAttributedSize = 40
	OrderExecutedSize      = 31
	OrderExecutedPriceSize = 36
	OrderCancelSize        = 23
	OrderDeleteSize        = 19
	OrderReplaceSize       = 35
	TradeSize              = 44
	CrossTradeSize         = 40
	BrokenTradeSize        = 19
)

// HeaderSize covers the tag, locate code, tracking number and timestamp.
const HeaderSize = 11

// NonPrintable is the printable-flag value that excludes an execution from
// volume and price statistics.
const NonPrintable = byte('N')

// SystemEvent marks a feed lifecycle point such as market open or close.
type SystemEvent struct {
	Timestamp uint64
	EventCode byte
}

// StockDirectory binds a locate code to its ticker symbol for the session.
type StockDirectory struct {
	Timestamp uint64
	Locator   uint16
	Symbol    string
}

// AddOrder places a new resting order on the book. Attributed selects the
// 'F' wire form; the fields used here sit at the same offsets in both.
type AddOrder struct {
	Timestamp  uint64
	Locator    uint16
	OrderID    uint64
	Qty        uint32
	Price      uint32
	Attributed bool
}

// OrderExecuted reports a fill whose price comes from the resting order.
type OrderExecuted struct {
	Timestamp uint64
	Locator   uint16
	OrderID   uint64
	Qty       uint32
	MatchID   uint64
}

// OrderExecutedPrice reports a fill at an explicit price. Printable is false
// when the execution must be excluded from trade statistics.
type OrderExecutedPrice struct {
	Timestamp uint64
	Locator   uint16
	OrderID   uint64
	Qty       uint32
	MatchID   uint64
	Printable bool
	Price     uint32
}

// OrderCancel removes part of a resting order's quantity.
type OrderCancel struct {
	Timestamp uint64
	Locator   uint16
	OrderID   uint64
	Qty       uint32
}

// OrderDelete removes a resting order entirely.
type OrderDelete struct {
	Timestamp uint64
	Locator   uint16
	OrderID   uint64
}

// OrderReplace atomically swaps a resting order for a new one. The locate
// code is taken from this message, not from the replaced order.
type OrderReplace struct {
	Timestamp  uint64
	Locator    uint16
	OldOrderID uint64
	NewOrderID uint64
	Qty        uint32
	Price      uint32
}

// Trade is a non-cross execution that never touched the displayed book.
type Trade struct {
	Timestamp uint64
	Locator   uint16
	Qty       uint32
	Price     uint32
	MatchID   uint64
}

// CrossTrade is an auction cross execution. Shares is 64-bit on the wire.
type CrossTrade struct {
	Timestamp uint64
	Locator   uint16
	Qty       uint64
	Price     uint32
	MatchID   uint64
}

// BrokenTrade voids a previously reported execution by match id.
type BrokenTrade struct {
	Timestamp uint64
	Locator   uint16
	MatchID   uint64
}
