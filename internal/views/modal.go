package views

import (
	"sync"

	"larek/internal/bus"
)

// Modal is the single-slot overlay. Opening replaces whatever is on
// display (deliberate simplification: one slot, not a stack); closing
// restores the page underneath. The slot holds a Renderer so the
// overlay re-derives its content from the models on every redraw,
// which is how an open cart stays current while items are removed.
//
// Intent handlers and the order-submission goroutine both reach the
// slot, so it is guarded by a mutex like the models.
type Modal struct {
	events  *bus.Bus
	surface Surface

	mu      sync.Mutex
	current Renderer
}

func NewModal(events *bus.Bus, surface Surface) *Modal {
	m := &Modal{events: events, surface: surface}
	// Whatever the overlay shows is derived from these models; any of
	// their change events means the open content may be stale.
	redraw := func(any) { m.Redraw() }
	events.Subscribe(bus.CartChanged, redraw)
	events.Subscribe(bus.OrderValidation, redraw)
	events.Subscribe(bus.OrderSubmitFailed, redraw)
	// modal:close is the dismiss intent: the close control and the
	// escape key both publish it.
	events.Subscribe(bus.ModalClose, func(any) { m.Close() })
	return m
}

// Open puts r in the slot and publishes modal:open.
func (m *Modal) Open(r Renderer) {
	m.mu.Lock()
	m.current = r
	m.pushLocked()
	m.mu.Unlock()
	m.events.Publish(bus.ModalOpen, nil)
}

// Close empties the slot, restoring the page underneath. Closing an
// already closed modal is a no-op.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.current = nil
	m.surface.Clear(RegionModal)
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Redraw re-renders the open content from fresh model state.
func (m *Modal) Redraw() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.pushLocked()
}

// pushLocked hands the slot's fresh content to the surface; the surface
// owns the overlay chrome around it.
func (m *Modal) pushLocked() {
	m.surface.Update(RegionModal, m.current.Render())
}
