// Package bus is the storefront's publish/subscribe dispatcher. Models
// publish change events after mutating, views and the presenter
// subscribe; nothing else connects the two sides.
package bus

import (
	"reflect"
	"regexp"
	"sync"

	applog "larek/internal/log"
)

// Handler receives the payload published with an event. Payloads are
// one concrete type per event name (see events.go); handlers assert.
type Handler func(payload any)

// Subscription identifies one registration so it can be removed.
type Subscription struct{ id uint64 }

type subscriber struct {
	id      uint64
	name    string         // exact-match key; empty when pattern is set
	pattern *regexp.Regexp // nil for exact keys
	fn      Handler
	fnPtr   uintptr // func identity, used to de-duplicate registrations
}

// Bus dispatches synchronously, in subscription order, on the calling
// goroutine. It holds no business state. Fiber serves requests on real
// goroutines, so registration and dispatch share one mutex.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber
}

func New() *Bus { return &Bus{} }

// Subscribe registers h for events whose name equals key. Registering
// the identical handler for the identical key again is a no-op and
// returns the existing subscription.
func (b *Bus) Subscribe(key string, h Handler) Subscription {
	return b.add(subscriber{name: key, fn: h, fnPtr: reflect.ValueOf(h).Pointer()})
}

// SubscribePattern registers h for every event whose name matches re.
func (b *Bus) SubscribePattern(re *regexp.Regexp, h Handler) Subscription {
	return b.add(subscriber{pattern: re, fn: h, fnPtr: reflect.ValueOf(h).Pointer()})
}

func (b *Bus) add(s subscriber) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, prev := range b.subs {
		if prev.fnPtr == s.fnPtr && prev.name == s.name && samePattern(prev.pattern, s.pattern) {
			return Subscription{id: prev.id}
		}
	}
	b.nextID++
	s.id = b.nextID
	b.subs = append(b.subs, s)
	return Subscription{id: s.id}
}

// Unsubscribe removes a registration. Unknown handles are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish invokes every matching handler in subscription order. An
// event with no subscribers is a no-op. A panicking handler is logged
// and skipped; the remaining handlers still run.
func (b *Bus) Publish(name string, payload any) {
	b.mu.Lock()
	matched := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if s.matches(name) {
			matched = append(matched, s)
		}
	}
	b.mu.Unlock()

	for _, s := range matched {
		dispatch(name, s, payload)
	}
}

func dispatch(name string, s subscriber, payload any) {
	defer func() {
		if r := recover(); r != nil {
			applog.Event("bus.handler.panic", map[string]any{"event": name, "panic": r})
		}
	}()
	s.fn(payload)
}

func (s subscriber) matches(name string) bool {
	if s.pattern != nil {
		return s.pattern.MatchString(name)
	}
	return s.name == name
}

func samePattern(a, b *regexp.Regexp) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
