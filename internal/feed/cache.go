package feed

import (
	"sync"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

// Cache holds the most recent trade per symbol. The ingestor is the
// only writer; HTTP handlers read concurrently.
type Cache struct {
	mu     sync.RWMutex
	trades map[string]model.TradeRecord
}

// NewCache creates an empty trade cache.
func NewCache() *Cache {
	return &Cache{
		trades: make(map[string]model.TradeRecord),
	}
}

// Put stores the trade as the latest for its symbol, replacing any
// previous record.
func (c *Cache) Put(rec model.TradeRecord) {
	c.mu.Lock()
	c.trades[rec.Symbol] = rec
	c.mu.Unlock()
}

// Get returns the latest trade for symbol, or false when the symbol
// has not appeared on the feed.
func (c *Cache) Get(symbol string) (model.TradeRecord, bool) {
	c.mu.RLock()
	rec, ok := c.trades[symbol]
	c.mu.RUnlock()
	return rec, ok
}

// Len returns the number of distinct symbols cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.trades)
}
