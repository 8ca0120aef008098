package feed

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/HouseYeung/Stock-Time/internal/model"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("AAPL"); ok {
		t.Error("Get on empty cache returned ok")
	}

	first := model.TradeRecord{
		Symbol:    "AAPL",
		Price:     189.5,
		Volume:    100,
		EventTime: time.UnixMilli(1700000000000),
	}
	c.Put(first)

	got, ok := c.Get("AAPL")
	if !ok {
		t.Fatal("Get returned !ok after Put")
	}
	if got.Price != 189.5 {
		t.Errorf("Price = %v, want 189.5", got.Price)
	}

	// Later trade for the same symbol replaces the earlier one.
	second := first
	second.Price = 190.25
	c.Put(second)

	got, _ = c.Get("AAPL")
	if got.Price != 190.25 {
		t.Errorf("Price = %v after second Put, want 190.25", got.Price)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				c.Put(model.TradeRecord{
					Symbol: fmt.Sprintf("SYM%d", n%10),
					Price:  float64(n + 1),
				})
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				if rec, ok := c.Get(fmt.Sprintf("SYM%d", n%10)); ok && rec.Price <= 0 {
					t.Error("read a record with non-positive price")
					return
				}
				c.Len()
			}
		}()
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}
}
