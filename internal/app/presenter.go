// Package app wires intents to state: it subscribes to the interaction
// events published by the HTTP layer and drives the models, the modal
// and the gateway. No view talks to another view, no model reads
// request state; everything meets here through the bus.
package app

import (
	"context"

	"larek/internal/bus"
	"larek/internal/gateway"
	applog "larek/internal/log"
	"larek/internal/models"
	"larek/internal/validate"
	"larek/internal/views"
)

type Presenter struct {
	events  *bus.Bus
	catalog *models.Catalog
	cart    *models.Cart
	wizard  *models.Wizard
	gw      *gateway.Client

	modal    *views.Modal
	cartView *views.CartView
	shipping *views.ShippingForm
	contacts *views.ContactsForm
}

func New(
	events *bus.Bus,
	catalog *models.Catalog,
	cart *models.Cart,
	wizard *models.Wizard,
	gw *gateway.Client,
	modal *views.Modal,
	cartView *views.CartView,
	shipping *views.ShippingForm,
	contacts *views.ContactsForm,
) *Presenter {
	p := &Presenter{
		events:   events,
		catalog:  catalog,
		cart:     cart,
		wizard:   wizard,
		gw:       gw,
		modal:    modal,
		cartView: cartView,
		shipping: shipping,
		contacts: contacts,
	}

	events.Subscribe(bus.CardSelect, p.onCardSelect)
	events.Subscribe(bus.CartAdd, p.onCartAdd)
	events.Subscribe(bus.CartRemove, p.onCartRemove)
	events.Subscribe(bus.CartOpen, p.onCartOpen)
	events.Subscribe(bus.OrderOpen, p.onCheckout)
	events.Subscribe(bus.OrderField, p.onOrderField)
	events.Subscribe(bus.OrderNext, p.onOrderNext)
	events.Subscribe(bus.OrderBack, p.onOrderBack)
	events.Subscribe(bus.ContactsSubmit, p.onContactsSubmit)
	events.Subscribe(bus.OrderSubmitted, p.onOrderSubmitted)
	events.Subscribe(bus.SuccessContinue, p.onSuccessContinue)

	return p
}

// LoadCatalog fires the catalog fetch. The goroutine resolves back into
// the event world through the catalog model's terminal events; a fetch
// failure becomes products:error, never an escaped panic.
func (p *Presenter) LoadCatalog(ctx context.Context) {
	p.catalog.BeginLoad()
	go func() {
		items, err := p.gw.Products(ctx)
		if err != nil {
			applog.Error(nil, "catalog.load.fail", err, nil)
			p.catalog.SetError("Could not load products. Please try again later.")
			return
		}
		applog.Event("catalog.load", map[string]any{"count": len(items)})
		p.catalog.SetItems(items)
	}()
}

func (p *Presenter) onCardSelect(payload any) {
	sel, ok := payload.(bus.CardSelectPayload)
	if !ok {
		return
	}
	p.modal.Open(views.NewPreview(p.catalog, p.cart, sel.ProductID))
}

func (p *Presenter) onCartAdd(payload any) {
	add, ok := payload.(bus.CartAddPayload)
	if !ok {
		return
	}
	product, ok := p.catalog.ByID(add.ProductID)
	if !ok {
		applog.Warn(nil, "cart.add.unknown", map[string]any{"product_id": add.ProductID})
		return
	}
	p.cart.Add(product)
}

func (p *Presenter) onCartRemove(payload any) {
	rm, ok := payload.(bus.CartRemovePayload)
	if !ok {
		return
	}
	p.cart.Remove(rm.ProductID)
}

func (p *Presenter) onCartOpen(any) {
	p.modal.Open(p.cartView)
}

// onCheckout starts the wizard from the current cart snapshot. An empty
// cart has nothing to check out; the intent is ignored.
func (p *Presenter) onCheckout(any) {
	if p.cart.Count() == 0 {
		return
	}
	p.wizard.Begin(p.cart.Items(), p.cart.Total())
	p.modal.Open(p.shipping)
}

func (p *Presenter) onOrderField(payload any) {
	f, ok := payload.(bus.OrderFieldPayload)
	if !ok {
		return
	}
	p.wizard.Set(f.Field, f.Value)
}

// onOrderNext advances to contacts only when the shipping step is
// clean; otherwise the wizard has published the errors and the open
// shipping form redraws with them.
func (p *Presenter) onOrderNext(any) {
	if p.wizard.Next() {
		p.modal.Open(p.contacts)
	}
}

func (p *Presenter) onOrderBack(any) {
	p.wizard.Back()
	p.modal.Open(p.shipping)
}

// onContactsSubmit gates on step-two validation, then hands the
// assembled order to the gateway off the event loop. Either outcome
// re-enters through a terminal event; a failure leaves cart and draft
// untouched so the user retries without re-entering anything.
func (p *Presenter) onContactsSubmit(any) {
	if !p.wizard.Submit() {
		return
	}
	order := p.wizard.Order()
	go func() {
		res, err := p.gw.SubmitOrder(context.Background(), order)
		if err != nil {
			applog.Error(nil, "order.submit.fail", err, map[string]any{"total": order.Total})
			p.wizard.Fail(validate.MsgOrderFailed)
			p.events.Publish(bus.OrderSubmitFailed, bus.OrderSubmitFailedPayload{
				Message: validate.MsgOrderFailed,
			})
			return
		}
		applog.Event("order.submit", map[string]any{"order_id": res.ID, "total": order.Total})
		p.wizard.Finish()
		p.events.Publish(bus.OrderSubmitted, bus.OrderSubmittedPayload{OrderID: res.ID, Total: order.Total})
	}()
}

// onOrderSubmitted shows the confirmation and releases the session
// state. The cart is cleared only here, strictly after the gateway
// confirmed the order.
func (p *Presenter) onOrderSubmitted(payload any) {
	done, ok := payload.(bus.OrderSubmittedPayload)
	if !ok {
		return
	}
	p.modal.Open(&views.Success{Total: done.Total})
	p.cart.Clear()
	p.wizard.Reset()
}

func (p *Presenter) onSuccessContinue(any) {
	p.modal.Close()
}
