// feedgen writes a synthetic length-prefixed session feed for local runs:
// a stock directory, a session-open event, a few hours of order flow and
// trades, then a session-close event.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"main/internal/itch"
)

const (
	hourNanos   = uint64(3_600_000_000_000)
	secondNanos = uint64(1_000_000_000)
)

func main() {
	out := flag.String("out", "session.itch.gz", "output file (.gz suffix enables compression)")
	symbolsFlag := flag.String("symbols", "AAPL,MSFT,TSLA", "comma-separated symbols")
	hours := flag.Int("hours", 3, "trading hours to generate")
	perHour := flag.Int("per-hour", 200, "order/trade rounds per hour per symbol")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	symbols := strings.Split(*symbolsFlag, ",")
	if err := generate(*out, symbols, *hours, *perHour, *seed); err != nil {
		log.Fatalf("feedgen: %v", err)
	}
	log.Printf("wrote %s (%d symbols, %d hours)", *out, len(symbols), *hours)
}

func generate(path string, symbols []string, hours, perHour int, seed int64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(file)
	var w io.Writer = bw
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(bw)
		w = gz
	}

	g := &generator{
		w:   w,
		rng: rand.New(rand.NewSource(seed)),
		// 09:30 on the feed clock
		ts: 9*hourNanos + 30*60*secondNanos,
	}
	g.session(symbols, hours, perHour)
	if g.err != nil {
		_ = file.Close()
		return g.err
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			_ = file.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

type generator struct {
	w       io.Writer
	rng     *rand.Rand
	ts      uint64
	orderID uint64
	matchID uint64
	buf     []byte
	err     error
}

func (g *generator) session(symbols []string, hours, perHour int) {
	for i, sym := range symbols {
		g.emit(itch.StockDirectory{Timestamp: g.ts, Locator: uint16(i + 1), Symbol: sym}.Encode(g.buf))
	}
	g.emit(itch.SystemEvent{Timestamp: g.ts, EventCode: 'Q'}.Encode(g.buf))

	open := g.ts
	for hour := 0; hour < hours; hour++ {
		for round := 0; round < perHour; round++ {
			for i := range symbols {
				g.round(uint16(i + 1))
			}
			g.ts = open + uint64(hour)*hourNanos + uint64(round+1)*hourNanos/uint64(perHour+1)
		}
	}

	g.ts = open + uint64(hours)*hourNanos + secondNanos
	g.emit(itch.SystemEvent{Timestamp: g.ts, EventCode: 'M'}.Encode(g.buf))
}

// round emits one add/execute pair plus occasionally a non-cross trade.
func (g *generator) round(locator uint16) {
	g.orderID++
	price := uint32(500_000 + g.rng.Intn(1_000_000)) // $50-$150 in fixed-4
	qty := uint32(100 + g.rng.Intn(900))

	g.emit(itch.AddOrder{
		Timestamp: g.ts,
		Locator:   locator,
		OrderID:   g.orderID,
		Qty:       qty,
		Price:     price,
	}.Encode(g.buf))

	g.matchID++
	g.emit(itch.OrderExecuted{
		Timestamp: g.ts,
		Locator:   locator,
		OrderID:   g.orderID,
		Qty:       qty,
		MatchID:   g.matchID,
	}.Encode(g.buf))

	if g.rng.Intn(10) == 0 {
		g.matchID++
		g.emit(itch.Trade{
			Timestamp: g.ts,
			Locator:   locator,
			Qty:       uint32(50 + g.rng.Intn(200)),
			Price:     price,
			MatchID:   g.matchID,
		}.Encode(g.buf))
	}
}

func (g *generator) emit(record []byte) {
	if g.err != nil {
		return
	}
	g.buf = record
	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(record)))
	if _, err := g.w.Write(prefix[:]); err != nil {
		g.err = err
		return
	}
	if _, err := g.w.Write(record); err != nil {
		g.err = err
	}
}
