// Package book tracks resting orders for execution price resolution.
//
// Only price and remaining quantity are kept; buy/sell side is not tracked
// because the feed's own executions are authoritative and the book exists
// solely to resolve execution messages that omit price.
package book

// Order is a resting order keyed by its order id in the book.
type Order struct {
	Price   uint32
	Qty     uint32
	Locator uint16
}

// Book is the mutable set of resting orders for one session.
type Book struct {
	orders map[uint64]Order
}

// New creates an empty book.
func New() *Book {
	return &Book{orders: make(map[uint64]Order)}
}

// Add inserts or overwrites a resting order.
func (b *Book) Add(id uint64, order Order) {
	b.orders[id] = order
}

// Lookup returns the current state of a resting order.
func (b *Book) Lookup(id uint64) (Order, bool) {
	order, ok := b.orders[id]
	return order, ok
}

// Execute resolves a fill against a resting order and returns the order as
// it rested before the fill. The order is removed when the executed quantity
// meets or exceeds what remained. Unknown ids return false with no state
// change; feeds with truncated capture reference orders never observed.
func (b *Book) Execute(id uint64, qty uint32) (Order, bool) {
	order, ok := b.orders[id]
	if !ok {
		return Order{}, false
	}
	if order.Qty > qty {
		remaining := order
		remaining.Qty -= qty
		b.orders[id] = remaining
	} else {
		delete(b.orders, id)
	}
	return order, true
}

// Cancel reduces a resting order's quantity, removing it when nothing
// remains. Unknown ids are a no-op.
func (b *Book) Cancel(id uint64, qty uint32) bool {
	order, ok := b.orders[id]
	if !ok {
		return false
	}
	if order.Qty > qty {
		order.Qty -= qty
		b.orders[id] = order
	} else {
		delete(b.orders, id)
	}
	return true
}

// Delete removes a resting order unconditionally. Unknown ids are a no-op.
func (b *Book) Delete(id uint64) bool {
	if _, ok := b.orders[id]; !ok {
		return false
	}
	delete(b.orders, id)
	return true
}

// Replace removes the old order and inserts the new one. The locator comes
// from the replace message itself; a missing old order does not block the
// insert.
func (b *Book) Replace(oldID, newID uint64, qty, price uint32, locator uint16) {
	delete(b.orders, oldID)
	b.orders[newID] = Order{Price: price, Qty: qty, Locator: locator}
}

// Len reports how many orders are resting.
func (b *Book) Len() int {
	return len(b.orders)
}
