package models_test

import (
	"testing"

	"larek/internal/bus"
	"larek/internal/domain"
	"larek/internal/models"
)

func price(v float64) *float64 { return &v }

func loadedCatalog(t *testing.T, b *bus.Bus, items ...domain.APIProduct) *models.Catalog {
	t.Helper()
	c := models.NewCatalog(b, "")
	c.SetItems(items)
	return c
}

func testItems() []domain.APIProduct {
	return []domain.APIProduct{
		{ID: "a", Title: "A", Price: price(10)},
		{ID: "b", Title: "B", Price: price(20)},
		{ID: "free", Title: "Priceless", Price: nil},
	}
}

func TestCartAddRemoveTotals(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	a, _ := catalog.ByID("a")
	bb, _ := catalog.ByID("b")
	cart.Add(a)
	cart.Add(bb)

	if got := cart.Total(); got != 30 {
		t.Fatalf("want total 30, got %v", got)
	}
	cart.Remove("a")
	if got := cart.Total(); got != 20 {
		t.Fatalf("want total 20 after remove, got %v", got)
	}
	if got := cart.Count(); got != 1 {
		t.Fatalf("want count 1, got %d", got)
	}
}

func TestCartDuplicateAddIsNoop(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	a, _ := catalog.ByID("a")
	events := 0
	b.Subscribe(bus.CartChanged, func(any) { events++ })

	cart.Add(a)
	cart.Add(a)

	if cart.Count() != 1 {
		t.Fatalf("want 1 entry, got %d", cart.Count())
	}
	if events != 1 {
		t.Fatalf("want 1 cart:changed, got %d", events)
	}
}

func TestCartRejectsPricelessProduct(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	free, _ := catalog.ByID("free")
	events := 0
	b.Subscribe(bus.CartChanged, func(any) { events++ })

	cart.Add(free)

	if cart.Count() != 0 {
		t.Fatalf("priceless product entered the cart")
	}
	if events != 0 {
		t.Fatalf("no cart:changed expected, got %d", events)
	}
}

func TestCartClearAlwaysPublishes(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	events := 0
	b.Subscribe(bus.CartChanged, func(any) { events++ })

	cart.Clear()
	cart.Clear()

	if cart.Count() != 0 {
		t.Fatalf("cart not empty after clear")
	}
	if events != 2 {
		t.Fatalf("clear must publish every time, got %d events", events)
	}
}

func TestCartRemoveAbsentIsSilent(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	events := 0
	b.Subscribe(bus.CartChanged, func(any) { events++ })

	cart.Remove("a")
	if events != 0 {
		t.Fatalf("removing an absent id must not publish")
	}
}

func TestCartPublishesAfterMutation(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	var observed int
	b.Subscribe(bus.CartChanged, func(any) { observed = cart.Count() })

	a, _ := catalog.ByID("a")
	cart.Add(a)

	if observed != 1 {
		t.Fatalf("subscriber saw pre-mutation state: count=%d", observed)
	}
}

func TestCartInsertionOrderPreserved(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	bb, _ := catalog.ByID("b")
	a, _ := catalog.ByID("a")
	cart.Add(bb)
	cart.Add(a)

	items := cart.Items()
	if len(items) != 2 || items[0] != "b" || items[1] != "a" {
		t.Fatalf("want [b a], got %v", items)
	}
}

func TestCartHasMembership(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	a, _ := catalog.ByID("a")
	cart.Add(a)

	if !cart.Has("a") {
		t.Fatal("added id not reported")
	}
	if cart.Has("b") {
		t.Fatal("absent id reported")
	}
	cart.Remove("a")
	if cart.Has("a") {
		t.Fatal("removed id still reported")
	}
}

func TestCartItemsAgreeWithTotalAfterCatalogShrinks(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	a, _ := catalog.ByID("a")
	bb, _ := catalog.ByID("b")
	cart.Add(a)
	cart.Add(bb)

	catalog.SetItems([]domain.APIProduct{{ID: "b", Title: "B", Price: price(20)}})

	// Items must describe the same selection the total prices, or a
	// checkout snapshot would list an item its total excludes.
	items := cart.Items()
	if len(items) != 1 || items[0] != "b" {
		t.Fatalf("dangling id leaked into items: %v", items)
	}
	if got := cart.Total(); got != 20 {
		t.Fatalf("total disagrees with items: %v", got)
	}
	if got := cart.Count(); got != 1 {
		t.Fatalf("count disagrees with items: %d", got)
	}
}

func TestCartDanglingEntrySkippedAndReconciled(t *testing.T) {
	b := bus.New()
	catalog := loadedCatalog(t, b, testItems()...)
	cart := models.NewCart(b, catalog)

	a, _ := catalog.ByID("a")
	bb, _ := catalog.ByID("b")
	cart.Add(a)
	cart.Add(bb)

	// "a" disappears from the catalog behind the cart's back.
	catalog.SetItems([]domain.APIProduct{{ID: "b", Title: "B", Price: price(20)}})

	if got := cart.Total(); got != 20 {
		t.Fatalf("dangling entry leaked into the total: %v", got)
	}
	if got := len(cart.Products()); got != 1 {
		t.Fatalf("dangling entry rendered: %d products", got)
	}

	// The next mutation prunes it.
	cart.Remove("b")
	if got := cart.Count(); got != 0 {
		t.Fatalf("dangling entry survived reconciliation: count=%d", got)
	}
}
