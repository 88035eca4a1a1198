// Package http is the storefront's rendering surface and interaction
// ingress: it turns view content into pages and form posts into bus
// events. Nothing here reads or mutates model state directly.
package http

import (
	"sync"

	"larek/internal/views"
)

// PageSurface is the display surface the view layer draws on: the
// latest content per page region. Views push here on their events; the
// page handler reads the regions back when composing a response.
type PageSurface struct {
	mu      sync.Mutex
	regions map[string]views.Content
}

func NewPageSurface() *PageSurface {
	return &PageSurface{regions: make(map[string]views.Content)}
}

func (s *PageSurface) Update(region string, c views.Content) {
	s.mu.Lock()
	s.regions[region] = c
	s.mu.Unlock()
}

func (s *PageSurface) Clear(region string) {
	s.mu.Lock()
	delete(s.regions, region)
	s.mu.Unlock()
}

// Region returns the current content for a region and whether any view
// has drawn there.
func (s *PageSurface) Region(region string) (views.Content, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.regions[region]
	return c, ok
}
