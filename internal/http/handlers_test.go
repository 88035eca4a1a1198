package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"larek/internal/app"
	"larek/internal/bus"
	"larek/internal/domain"
	"larek/internal/gateway"
	webui "larek/internal/http"
	"larek/internal/models"
	"larek/internal/views"
)

func price(v float64) *float64 { return &v }

// newTestApp wires the same stack main does, minus the CSRF and rate
// limiting middleware, against a stub order backend.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/weblarek/order", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "ord-1", "total": 10})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	events := bus.New()
	catalog := models.NewCatalog(events, "")
	cart := models.NewCart(events, catalog)
	wizard := models.NewWizard(events, domain.PaymentOnline)
	gw := gateway.New(srv.URL+"/api/weblarek", 2*time.Second)

	surface := webui.NewPageSurface()
	views.NewHeader(events, cart, surface)
	views.NewGallery(events, catalog, cart, surface)
	cartView := views.NewCartView(cart)
	shipping := views.NewShippingForm(wizard)
	contacts := views.NewContactsForm(wizard)
	modal := views.NewModal(events, surface)
	app.New(events, catalog, cart, wizard, gw, modal, cartView, shipping, contacts)

	catalog.SetItems([]domain.APIProduct{
		{ID: "a1b2", Title: "Framework thing", Category: "soft-skill", Price: price(10)},
		{ID: "c3d4", Title: "Hourglass", Category: "other", Price: nil},
	})

	engine := html.New("../../web/templates", ".html")
	fapp := fiber.New(fiber.Config{Views: engine})

	// Stand-in for the CSRF middleware: requests carry their token in
	// a header so responses can be told apart.
	fapp.Use(func(c *fiber.Ctx) error {
		if tok := c.Get("X-Csrf-Token"); tok != "" {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	pages := &webui.Pages{Events: events, Surface: surface, Engine: engine}
	fapp.Get("/", pages.Index)
	fapp.Get("/product/:id", pages.SelectCard)
	fapp.Post("/cart", pages.AddToCart)
	fapp.Post("/cart/remove", pages.RemoveFromCart)
	fapp.Post("/cart/open", pages.OpenCart)
	fapp.Post("/checkout", pages.Checkout)
	fapp.Post("/order/field", pages.OrderField)
	fapp.Post("/order/next", pages.OrderNext)
	fapp.Post("/order/back", pages.OrderBack)
	fapp.Post("/contacts", pages.SubmitContacts)
	fapp.Post("/modal/close", pages.CloseModal)
	fapp.Post("/success/continue", pages.ContinueShopping)

	return fapp
}

func get(t *testing.T, fapp *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res, err := fapp.Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	return res, string(body)
}

func post(t *testing.T, fapp *fiber.App, path, form string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := fapp.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	res.Body.Close()
	return res
}

func TestIndexRendersCatalog(t *testing.T) {
	fapp := newTestApp(t)

	res, body := get(t, fapp, "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if !strings.Contains(body, "Framework thing") {
		t.Fatal("gallery card missing from the page")
	}
	if !strings.Contains(body, "Priceless") {
		t.Fatal("priceless item should still be listed")
	}
	if strings.Contains(body, "modal_active") {
		t.Fatal("no overlay should be open on a fresh page")
	}
}

func TestAddToCartBumpsHeaderCounter(t *testing.T) {
	fapp := newTestApp(t)

	if res := post(t, fapp, "/cart", "productId=a1b2"); res.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", res.StatusCode)
	}
	_, body := get(t, fapp, "/")
	if !strings.Contains(body, `<span class="header__basket-counter">1</span>`) {
		t.Fatal("basket counter did not reach 1")
	}
}

func TestAddToCartRequiresProductID(t *testing.T) {
	fapp := newTestApp(t)

	if res := post(t, fapp, "/cart", ""); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", res.StatusCode)
	}
}

func TestOrderFieldRejectsUnknownField(t *testing.T) {
	fapp := newTestApp(t)

	if res := post(t, fapp, "/order/field", "field=favourite-colour&value=teal"); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", res.StatusCode)
	}
}

func TestSelectCardOpensPreview(t *testing.T) {
	fapp := newTestApp(t)

	if res, _ := get(t, fapp, "/product/c3d4"); res.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", res.StatusCode)
	}
	_, body := get(t, fapp, "/")
	if !strings.Contains(body, "modal_active") {
		t.Fatal("preview overlay not open")
	}
	if !strings.Contains(body, "Not for sale") {
		t.Fatal("priceless preview should disable purchase")
	}
}

func TestConcurrentPagesKeepTheirOwnToken(t *testing.T) {
	fapp := newTestApp(t)

	// Fiber serves these handlers on parallel goroutines; each page
	// must render with its own request's token, never a neighbour's,
	// and the shared surface content must stay untouched.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tok := fmt.Sprintf("tok-%d", n)
			for j := 0; j < 20; j++ {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("X-Csrf-Token", tok)
				res, err := fapp.Test(req)
				if err != nil {
					t.Error(err)
					return
				}
				body, _ := io.ReadAll(res.Body)
				res.Body.Close()
				if !strings.Contains(string(body), tok) {
					t.Errorf("request %d rendered without its token", n)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	// A request with no token must not see one left behind by others.
	_, body := get(t, fapp, "/")
	if strings.Contains(body, "tok-") {
		t.Fatal("a per-request token leaked into shared content")
	}
}

func TestModalCloseClearsOverlay(t *testing.T) {
	fapp := newTestApp(t)

	post(t, fapp, "/cart/open", "")
	_, body := get(t, fapp, "/")
	if !strings.Contains(body, "modal_active") {
		t.Fatal("cart overlay not open")
	}

	post(t, fapp, "/modal/close", "")
	_, body = get(t, fapp, "/")
	if strings.Contains(body, "modal_active") {
		t.Fatal("overlay still open after close")
	}
}

func TestCheckoutWalkthrough(t *testing.T) {
	fapp := newTestApp(t)

	post(t, fapp, "/cart", "productId=a1b2")
	post(t, fapp, "/checkout", "")
	_, body := get(t, fapp, "/")
	if !strings.Contains(body, `action="/order/next"`) {
		t.Fatal("shipping step not shown")
	}

	// Blank address keeps the wizard on step one with the message shown.
	post(t, fapp, "/order/next", "payment=online&address=")
	_, body = get(t, fapp, "/")
	if !strings.Contains(body, "Enter a delivery address") {
		t.Fatal("address error not rendered")
	}

	post(t, fapp, "/order/next", "payment=online&address=Main+st+1")
	_, body = get(t, fapp, "/")
	if !strings.Contains(body, `action="/contacts"`) {
		t.Fatal("contacts step not shown")
	}

	post(t, fapp, "/contacts", "email=a%40b.com&phone=%2B79991234567")
	waitFor(t, fapp, "Order placed")
	// The confirmation handler also empties the cart.
	waitFor(t, fapp, `<span class="header__basket-counter">0</span>`)
}

// waitFor polls the page until the marker shows up; the order round
// trip finishes on a background goroutine.
func waitFor(t *testing.T, fapp *fiber.App, marker string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		_, body := get(t, fapp, "/")
		if strings.Contains(body, marker) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("page never showed %q", marker)
}
