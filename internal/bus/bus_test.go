package bus_test

import (
	"regexp"
	"testing"

	"larek/internal/bus"
)

func TestPublishInSubscriptionOrder(t *testing.T) {
	b := bus.New()
	var got []int

	b.Subscribe("ping", func(any) { got = append(got, 1) })
	b.Subscribe("ping", func(any) { got = append(got, 2) })
	b.SubscribePattern(regexp.MustCompile(`^pi`), func(any) { got = append(got, 3) })

	b.Publish("ping", nil)

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("want [1 2 3], got %v", got)
	}
}

func TestPublishNoSubscribersIsNoop(t *testing.T) {
	b := bus.New()
	b.Publish("nobody:listens", nil) // must not panic
}

func TestDuplicateSubscribeIsIdempotent(t *testing.T) {
	b := bus.New()
	calls := 0
	h := func(any) { calls++ }

	first := b.Subscribe("tick", h)
	second := b.Subscribe("tick", h)
	if first != second {
		t.Fatalf("duplicate registration should return the existing subscription")
	}

	b.Publish("tick", nil)
	if calls != 1 {
		t.Fatalf("want 1 call, got %d", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := bus.New()
	calls := 0
	sub := b.Subscribe("tick", func(any) { calls++ })

	b.Publish("tick", nil)
	b.Unsubscribe(sub)
	b.Publish("tick", nil)

	if calls != 1 {
		t.Fatalf("want 1 call after unsubscribe, got %d", calls)
	}
}

func TestPatternMatchesManyEvents(t *testing.T) {
	b := bus.New()
	var seen []string
	b.SubscribePattern(regexp.MustCompile(`^cart:`), func(any) { seen = append(seen, "cart") })

	b.Publish("cart:changed", nil)
	b.Publish("cart:opened", nil)
	b.Publish("order:validation", nil)

	if len(seen) != 2 {
		t.Fatalf("want 2 pattern matches, got %d", len(seen))
	}
}

func TestPanickingHandlerDoesNotBreakDispatch(t *testing.T) {
	b := bus.New()
	reached := false

	b.Subscribe("boom", func(any) { panic("handler bug") })
	b.Subscribe("boom", func(any) { reached = true })

	b.Publish("boom", nil)

	if !reached {
		t.Fatal("handler after the panicking one was not invoked")
	}
}

func TestPayloadDelivered(t *testing.T) {
	b := bus.New()
	var got any
	b.Subscribe(bus.ProductsError, func(p any) { got = p })

	b.Publish(bus.ProductsError, bus.ProductsErrorPayload{Message: "down"})

	p, ok := got.(bus.ProductsErrorPayload)
	if !ok || p.Message != "down" {
		t.Fatalf("want ProductsErrorPayload{down}, got %#v", got)
	}
}

func TestSubscribeDuringDispatchDoesNotFireForSameEvent(t *testing.T) {
	b := bus.New()
	inner := 0
	b.Subscribe("once", func(any) {
		b.Subscribe("once", func(any) { inner++ })
	})

	b.Publish("once", nil)
	if inner != 0 {
		t.Fatalf("late subscriber ran during the publish that added it")
	}
	b.Publish("once", nil)
	if inner != 1 {
		t.Fatalf("late subscriber should run on the next publish, got %d", inner)
	}
}
