package services

import (
	"fmt"
	"sync/atomic"
	"time"
)

// orderNumberModulus keeps the last 8 decimal digits of the millisecond clock
const orderNumberModulus = 100_000_000

// OrderNumberGenerator derives human-readable order numbers such as
// "SF-84736251" from the wall clock. Numbers handed out by one generator are
// strictly increasing; uniqueness across processes is left to the database.
type OrderNumberGenerator struct {
	prefix string
	now    func() time.Time
	last   atomic.Int64
}

// NewOrderNumberGenerator creates a generator for the given store code
func NewOrderNumberGenerator(storeCode string) *OrderNumberGenerator {
	return &OrderNumberGenerator{prefix: storeCode, now: time.Now}
}

// Next returns the next order number
func (g *OrderNumberGenerator) Next() string {
	for {
		last := g.last.Load()
		ms := g.now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		if g.last.CompareAndSwap(last, ms) {
			return fmt.Sprintf("%s-%08d", g.prefix, ms%orderNumberModulus)
		}
	}
}
