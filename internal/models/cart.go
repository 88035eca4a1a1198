package models

import (
	"sync"

	"larek/internal/bus"
	"larek/internal/domain"
)

// Cart holds the ordered set of selected product ids. Entries are
// references: products are resolved against the catalog on every query,
// and totals are recomputed from current prices, never cached.
//
// An entry whose product has left the catalog is skipped by every query
// and pruned the next time Remove or Clear mutates the cart, so Items,
// Products, Total and Count always agree with each other.
type Cart struct {
	mu      sync.Mutex
	events  *bus.Bus
	catalog *Catalog
	ids     []string
	index   map[string]struct{}
}

func NewCart(events *bus.Bus, catalog *Catalog) *Cart {
	return &Cart{events: events, catalog: catalog, index: make(map[string]struct{})}
}

// Add appends the product. Duplicates and priceless products are
// ignored without publishing; every effective add publishes exactly one
// cart:changed after the entry is in place.
func (c *Cart) Add(p domain.Product) {
	if !p.Purchasable() {
		return
	}
	c.mu.Lock()
	if _, dup := c.index[p.ID]; dup {
		c.mu.Unlock()
		return
	}
	c.ids = append(c.ids, p.ID)
	c.index[p.ID] = struct{}{}
	c.mu.Unlock()
	c.events.Publish(bus.CartChanged, nil)
}

// Remove drops the entry with the given id, reconciling any dangling
// entries in the same pass. Publishes only if the contents changed.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	kept := c.ids[:0]
	changed := false
	for _, entry := range c.ids {
		if entry == id {
			delete(c.index, entry)
			changed = true
			continue
		}
		if _, ok := c.catalog.ByID(entry); !ok {
			delete(c.index, entry)
			changed = true
			continue
		}
		kept = append(kept, entry)
	}
	c.ids = kept
	c.mu.Unlock()
	if changed {
		c.events.Publish(bus.CartChanged, nil)
	}
}

// Clear empties the cart and always publishes, even when it was already
// empty. Subscribers reset counters off this event deterministically.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.ids = nil
	c.index = make(map[string]struct{})
	c.mu.Unlock()
	c.events.Publish(bus.CartChanged, nil)
}

// Items returns the resolvable ids in insertion order. Dangling entries
// are filtered here too, so a checkout snapshot never lists an item the
// total excludes.
func (c *Cart) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		if _, ok := c.catalog.ByID(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// Products resolves entries against the catalog at call time. Entries
// whose product no longer exists are skipped, never a failure.
func (c *Cart) Products() []domain.Product {
	ids := c.Items()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.catalog.ByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Total sums the current prices of the resolvable entries.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, p := range c.Products() {
		if p.Price != nil {
			total += *p.Price
		}
	}
	return total
}

// Has reports id-set membership, a single map lookup.
func (c *Cart) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[id]
	return ok
}

// Count reports how many entries currently resolve; the header counter
// and the checkout gate both read it.
func (c *Cart) Count() int {
	return len(c.Items())
}
