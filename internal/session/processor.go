/*
Package session owns all per-file processing state: the message dispatcher,
the resting-order book, the instrument directory, the execution ledger, the
session-event clock and the hourly flush driver.

A Processor is constructed per feed file and discarded at the end; there is
no shared or global state. Processing is strictly sequential, driven by the
feed's own nanosecond clock rather than wall time.
*/
package session

import (
	"context"
	"io"
	"strconv"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/book"
	"main/internal/itch"
	"main/internal/obs"
	"main/internal/vwap"
	"main/pkg/exception"
)

// hourNanos is one trading hour on the feed clock.
const hourNanos = uint64(3_600_000_000_000)

const (
	defaultOpenEventCode  = 'Q'
	defaultCloseEventCode = 'M'
)

// Config controls session interpretation.
type Config struct {
	// OpenEventCode is the system-event code that starts the trading clock.
	OpenEventCode byte
	// CloseEventCode is the system-event code that ends the session.
	CloseEventCode byte
	// Policy selects the execution-ledger accumulation behavior.
	Policy vwap.Policy
}

func (c Config) withDefaults() Config {
	if c.OpenEventCode == 0 {
		c.OpenEventCode = defaultOpenEventCode
	}
	if c.CloseEventCode == 0 {
		c.CloseEventCode = defaultCloseEventCode
	}
	return c
}

// Source yields length-prefixed feed records in arrival order.
type Source interface {
	Next() ([]byte, error)
}

// Sink receives one row set per completed hour window, labeled by the feed
// timestamp at which the flush fired.
type Sink interface {
	WriteRows(label string, rows []vwap.Row) error
}

// Processor decodes records, mutates session state and drives hourly
// flushes.
type Processor struct {
	cfg     Config
	book    *book.Book
	ledger  *vwap.Ledger
	symbols map[uint16]string
	markers map[byte]uint64

	current   uint64
	start     uint64
	hourIndex int
	closed    bool

	sink    Sink
	metrics *obs.Metrics
}

// NewProcessor builds a processor for a single session file.
func NewProcessor(cfg Config, sink Sink, metrics *obs.Metrics) *Processor {
	cfg = cfg.withDefaults()
	return &Processor{
		cfg:     cfg,
		book:    book.New(),
		ledger:  vwap.NewLedger(cfg.Policy),
		symbols: make(map[uint16]string),
		markers: make(map[byte]uint64),
		sink:    sink,
		metrics: metrics,
	}
}

// Run consumes records until the session-close marker, end of input or
// context cancellation. End of input before the close marker still flushes
// whatever partial-hour data exists and reports ErrFeedTruncated.
func (p *Processor) Run(ctx context.Context, src Source) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := src.Next()
		if err != nil {
			if err == io.EOF {
				if flushErr := p.flush(); flushErr != nil {
					return flushErr
				}
				return exception.ErrFeedTruncated
			}
			return err
		}
		if err := p.Handle(record); err != nil {
			return err
		}
		if p.closed {
			return nil
		}
	}
}

// Handle processes one record: it advances the clock, fires any hour
// boundaries the record's timestamp crossed (so a flush only carries data
// from strictly before the boundary), dispatches by type tag and finally
// reacts to session markers.
func (p *Processor) Handle(record []byte) error {
	if len(record) == 0 {
		return exception.ErrMalformedRecord
	}
	tag := record[0]
	p.metrics.ObserveRecord(tag)

	ts, ok := itch.Timestamp(record)
	if !ok {
		return malformed(tag)
	}
	p.current = ts

	if err := p.flushElapsedHours(); err != nil {
		return err
	}
	if err := p.dispatch(tag, record); err != nil {
		return err
	}
	return p.checkMarkers()
}

func (p *Processor) dispatch(tag byte, record []byte) error {
	switch tag {
	case itch.TagSystemEvent:
		msg, ok := itch.DecodeSystemEvent(record)
		if !ok {
			return malformed(tag)
		}
		p.markers[msg.EventCode] = msg.Timestamp

	case itch.TagStockDirectory:
		msg, ok := itch.DecodeStockDirectory(record)
		if !ok {
			return malformed(tag)
		}
		p.symbols[msg.Locator] = msg.Symbol
		p.ledger.Register(msg.Locator)

	case itch.TagAddOrder, itch.TagAddOrderAttributed:
		msg, ok := itch.DecodeAddOrder(record)
		if !ok {
			return malformed(tag)
		}
		p.book.Add(msg.OrderID, book.Order{
			Price:   msg.Price,
			Qty:     msg.Qty,
			Locator: msg.Locator,
		})

	case itch.TagOrderExecuted:
		msg, ok := itch.DecodeOrderExecuted(record)
		if !ok {
			return malformed(tag)
		}
		if resting, found := p.book.Execute(msg.OrderID, msg.Qty); found {
			p.ledger.Record(msg.Locator, vwap.Trade{
				Price:   resting.Price,
				Qty:     uint64(msg.Qty),
				MatchID: msg.MatchID,
			})
		}

	case itch.TagOrderExecutedPrice:
		msg, ok := itch.DecodeOrderExecutedPrice(record)
		if !ok {
			return malformed(tag)
		}
		if !msg.Printable {
			break
		}
		if _, found := p.book.Execute(msg.OrderID, msg.Qty); found {
			p.ledger.Record(msg.Locator, vwap.Trade{
				Price:   msg.Price,
				Qty:     uint64(msg.Qty),
				MatchID: msg.MatchID,
			})
		}

	case itch.TagOrderCancel:
		msg, ok := itch.DecodeOrderCancel(record)
		if !ok {
			return malformed(tag)
		}
		p.book.Cancel(msg.OrderID, msg.Qty)

	case itch.TagOrderDelete:
		msg, ok := itch.DecodeOrderDelete(record)
		if !ok {
			return malformed(tag)
		}
		p.book.Delete(msg.OrderID)

	case itch.TagOrderReplace:
		msg, ok := itch.DecodeOrderReplace(record)
		if !ok {
			return malformed(tag)
		}
		p.book.Replace(msg.OldOrderID, msg.NewOrderID, msg.Qty, msg.Price, msg.Locator)

	case itch.TagTrade:
		msg, ok := itch.DecodeTrade(record)
		if !ok {
			return malformed(tag)
		}
		p.ledger.Record(msg.Locator, vwap.Trade{
			Price:   msg.Price,
			Qty:     uint64(msg.Qty),
			MatchID: msg.MatchID,
		})

	case itch.TagCrossTrade:
		msg, ok := itch.DecodeCrossTrade(record)
		if !ok {
			return malformed(tag)
		}
		p.ledger.Record(msg.Locator, vwap.Trade{
			Price:   msg.Price,
			Qty:     msg.Qty,
			MatchID: msg.MatchID,
		})

	case itch.TagBrokenTrade:
		msg, ok := itch.DecodeBrokenTrade(record)
		if !ok {
			return malformed(tag)
		}
		p.ledger.Break(msg.Locator, msg.MatchID)

	case itch.TagTradingAction, itch.TagRegSHORestriction,
		itch.TagParticipantPosition, itch.TagMWCBDeclineLevel,
		itch.TagMWCBStatus, itch.TagIPOQuotingUpdate,
		itch.TagAuctionCollar, itch.TagOperationalHalt, itch.TagNOII:
		// Clock already advanced; these carry no VWAP-relevant payload.

	default:
		return errors.Wrapf(exception.ErrUnknownMessageType, "tag %q", tag)
	}
	return nil
}

// flushElapsedHours fires one flush per full hour the clock has crossed
// since the session opened.
func (p *Processor) flushElapsedHours() error {
	if p.start == 0 {
		return nil
	}
	for p.current-p.start > uint64(p.hourIndex+1)*hourNanos {
		if err := p.flush(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) checkMarkers() error {
	if p.start == 0 {
		if ts, ok := p.markers[p.cfg.OpenEventCode]; ok {
			p.start = ts
			logs.Infof("trading session open at %d", ts)
		}
	}
	if !p.closed {
		if _, ok := p.markers[p.cfg.CloseEventCode]; ok {
			p.closed = true
			if err := p.flush(); err != nil {
				return err
			}
			logs.Info("trading session closed, final flush done")
		}
	}
	return nil
}

func (p *Processor) flush() error {
	rows := p.ledger.Flush(p.symbolFor)
	label := strconv.FormatUint(p.current, 10)
	p.hourIndex++
	p.metrics.ObserveFlush(len(rows))
	if p.sink == nil {
		return nil
	}
	if err := p.sink.WriteRows(label, rows); err != nil {
		return errors.Wrapf(err, "write rows for window %s", label)
	}
	return nil
}

func (p *Processor) symbolFor(locator uint16) (string, bool) {
	sym, ok := p.symbols[locator]
	return sym, ok
}

func malformed(tag byte) error {
	return errors.Wrapf(exception.ErrMalformedRecord, "tag %q", tag)
}
