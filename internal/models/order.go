package models

import (
	"sync"

	"larek/internal/bus"
	"larek/internal/domain"
	"larek/internal/validate"
)

type Step string

const (
	StepShipping Step = "SHIPPING" // payment method + address
	StepContacts Step = "CONTACTS" // email + phone
	StepDone     Step = "DONE"     // submission confirmed
)

// Wizard owns the in-progress order draft across the two checkout
// steps. Every field write re-validates that field and publishes the
// full current error map, so all field-bound views stay in sync from
// one source of truth. The wizard never performs network I/O.
type Wizard struct {
	mu             sync.Mutex
	events         *bus.Bus
	defaultPayment domain.Payment

	step      Step
	payment   domain.Payment
	address   string
	email     string
	phone     string
	items     []string
	total     float64
	errs      domain.ValidationErrors
	submitErr string
}

func NewWizard(events *bus.Bus, defaultPayment domain.Payment) *Wizard {
	return &Wizard{
		events:         events,
		defaultPayment: defaultPayment,
		step:           StepShipping,
		payment:        defaultPayment,
		errs:           domain.ValidationErrors{},
	}
}

// Begin starts a fresh draft from the cart snapshot taken the moment
// checkout opens. Field values return to defaults.
func (w *Wizard) Begin(items []string, total float64) {
	w.mu.Lock()
	w.resetLocked()
	w.items = append([]string(nil), items...)
	w.total = total
	w.mu.Unlock()
	w.events.Publish(bus.OrderValidation, bus.OrderValidationPayload{Errors: domain.ValidationErrors{}})
}

// Set updates one draft field, re-validates it and publishes the full
// error map. Unknown payment values clear the selection so the payment
// error reappears instead of silently keeping a stale choice.
func (w *Wizard) Set(field domain.Field, value string) {
	w.mu.Lock()
	switch field {
	case domain.FieldPayment:
		if p, ok := domain.ParsePayment(value); ok {
			w.payment = p
		} else {
			w.payment = domain.PaymentUnset
		}
	case domain.FieldAddress:
		w.address = value
	case domain.FieldEmail:
		w.email = value
	case domain.FieldPhone:
		w.phone = value
	default:
		w.mu.Unlock()
		return
	}
	// Editing anything invalidates a stale submission failure.
	w.submitErr = ""
	w.revalidateLocked(field)
	errs := w.errsCopyLocked()
	w.mu.Unlock()
	w.events.Publish(bus.OrderValidation, bus.OrderValidationPayload{Errors: errs})
}

// ValidateShipping checks step one: a payment method is chosen and the
// trimmed address is non-empty.
func (w *Wizard) ValidateShipping() domain.ValidationErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateShippingLocked()
}

// ValidateContacts checks step two: email and phone formats.
func (w *Wizard) ValidateContacts() domain.ValidationErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateContactsLocked()
}

// Next advances from the shipping step once it validates. On failure
// the error map is published and the step stays put.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	if w.step != StepShipping {
		already := w.step == StepContacts
		w.mu.Unlock()
		return already
	}
	errs := w.validateShippingLocked()
	if errs.Ok() {
		w.step = StepContacts
	}
	w.errs = errs
	out := w.errsCopyLocked()
	w.mu.Unlock()
	w.events.Publish(bus.OrderValidation, bus.OrderValidationPayload{Errors: out})
	return errs.Ok()
}

// Submit gates the final step. It reports whether the contacts step is
// clean and the draft may go to the gateway; on failure the error map
// is published. The step only moves to DONE via Finish, after the
// gateway confirms.
func (w *Wizard) Submit() bool {
	w.mu.Lock()
	if w.step != StepContacts {
		w.mu.Unlock()
		return false
	}
	errs := w.validateContactsLocked()
	w.errs = errs
	out := w.errsCopyLocked()
	w.mu.Unlock()
	w.events.Publish(bus.OrderValidation, bus.OrderValidationPayload{Errors: out})
	return errs.Ok()
}

// Back returns to the shipping step from contacts.
func (w *Wizard) Back() {
	w.mu.Lock()
	if w.step == StepContacts {
		w.step = StepShipping
	}
	w.mu.Unlock()
}

// Finish marks the draft confirmed by the gateway. The caller resets
// the wizard (and clears the cart) afterwards; a failed submission
// never reaches here, leaving the draft intact for retry.
func (w *Wizard) Finish() {
	w.mu.Lock()
	w.step = StepDone
	w.submitErr = ""
	w.mu.Unlock()
}

// Fail records a gateway rejection on the draft. The contacts form
// projects it next to the submit control; any field edit, Finish or
// Reset clears it.
func (w *Wizard) Fail(msg string) {
	w.mu.Lock()
	w.submitErr = msg
	w.mu.Unlock()
}

// SubmitError returns the message from the last failed submission, or
// empty when there is none.
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitErr
}

// Reset restores defaults and publishes an empty error map.
func (w *Wizard) Reset() {
	w.mu.Lock()
	w.resetLocked()
	w.mu.Unlock()
	w.events.Publish(bus.OrderValidation, bus.OrderValidationPayload{Errors: domain.ValidationErrors{}})
}

// Order assembles the submission from the draft.
func (w *Wizard) Order() domain.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.Order{
		Payment: w.payment,
		Address: w.address,
		Email:   w.email,
		Phone:   w.phone,
		Items:   append([]string(nil), w.items...),
		Total:   w.total,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Errors returns the error map as of the last field write or step gate.
func (w *Wizard) Errors() domain.ValidationErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errsCopyLocked()
}

func (w *Wizard) Payment() domain.Payment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

func (w *Wizard) Address() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.address
}

func (w *Wizard) Email() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.email
}

func (w *Wizard) Phone() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phone
}

func (w *Wizard) Total() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

func (w *Wizard) resetLocked() {
	w.step = StepShipping
	w.payment = w.defaultPayment
	w.address = ""
	w.email = ""
	w.phone = ""
	w.items = nil
	w.total = 0
	w.errs = domain.ValidationErrors{}
	w.submitErr = ""
}

func (w *Wizard) revalidateLocked(field domain.Field) {
	var full domain.ValidationErrors
	switch field {
	case domain.FieldPayment, domain.FieldAddress:
		full = w.validateShippingLocked()
	default:
		full = w.validateContactsLocked()
	}
	if msg, bad := full[field]; bad {
		w.errs[field] = msg
	} else {
		delete(w.errs, field)
	}
}

func (w *Wizard) validateShippingLocked() domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if w.payment == domain.PaymentUnset {
		errs[domain.FieldPayment] = validate.MsgSelectPayment
	}
	if _, ok := validate.Address(w.address); !ok {
		errs[domain.FieldAddress] = validate.MsgEnterAddress
	}
	return errs
}

func (w *Wizard) validateContactsLocked() domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if trimmed, ok := validate.Email(w.email); !ok {
		if trimmed == "" {
			errs[domain.FieldEmail] = validate.MsgEnterEmail
		} else {
			errs[domain.FieldEmail] = validate.MsgInvalidEmail
		}
	}
	if trimmed, ok := validate.Phone(w.phone); !ok {
		if trimmed == "" {
			errs[domain.FieldPhone] = validate.MsgEnterPhone
		} else {
			errs[domain.FieldPhone] = validate.MsgInvalidPhone
		}
	}
	return errs
}

func (w *Wizard) errsCopyLocked() domain.ValidationErrors {
	out := domain.ValidationErrors{}
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}
