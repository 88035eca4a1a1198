// Package models holds the storefront state: the fetched catalog, the
// cart, and the in-progress order. Models own their state, publish a
// bus event after every mutation, and never touch the network or the
// rendering surface.
package models

import (
	"sync"

	"larek/internal/bus"
	"larek/internal/domain"
)

type LoadState string

const (
	LoadIdle    LoadState = "IDLE"
	LoadLoading LoadState = "LOADING"
	LoadLoaded  LoadState = "LOADED"
	LoadFailed  LoadState = "FAILED"
)

// Catalog holds the product list and its load state. Products are
// immutable once loaded; SetItems replaces the whole list atomically.
type Catalog struct {
	mu       sync.Mutex
	events   *bus.Bus
	cdnBase  string
	state    LoadState
	products []domain.Product
	errMsg   string
}

func NewCatalog(events *bus.Bus, cdnBase string) *Catalog {
	return &Catalog{events: events, cdnBase: cdnBase, state: LoadIdle}
}

// BeginLoad enters the loading state. Re-entering from LOADED or FAILED
// is allowed; that is how retry works.
func (c *Catalog) BeginLoad() {
	c.mu.Lock()
	c.state = LoadLoading
	c.mu.Unlock()
	c.events.Publish(bus.ProductsLoading, nil)
}

// SetItems replaces the catalog with the fetched products, clears any
// prior error and publishes the loaded event. Image paths are made
// absolute against the CDN base here so every consumer sees final URLs.
func (c *Catalog) SetItems(items []domain.APIProduct) {
	products := make([]domain.Product, 0, len(items))
	for _, it := range items {
		products = append(products, domain.Product{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Price:       it.Price,
			Image:       c.cdnBase + it.Image,
			Category:    it.Category,
		})
	}
	c.mu.Lock()
	c.products = products
	c.errMsg = ""
	c.state = LoadLoaded
	c.mu.Unlock()
	c.events.Publish(bus.ProductsLoaded, nil)
}

// SetError enters the failed state with a catalog-level message.
func (c *Catalog) SetError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.state = LoadFailed
	c.mu.Unlock()
	c.events.Publish(bus.ProductsError, bus.ProductsErrorPayload{Message: msg})
}

// All returns a copy of the current product list.
func (c *Catalog) All() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product and whether it exists in the catalog.
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Catalog) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}
