package domain

// Payment is the order payment method. The empty value means the user
// has not picked one yet.
type Payment string

const (
	PaymentUnset  Payment = ""
	PaymentOnline Payment = "online"
	PaymentCash   Payment = "cash"
)

// ParsePayment maps a form value to a Payment, rejecting unknown values.
func ParsePayment(s string) (Payment, bool) {
	switch Payment(s) {
	case PaymentOnline, PaymentCash:
		return Payment(s), true
	}
	return PaymentUnset, false
}

// Product is a catalog item. Price == nil means "not purchasable";
// such items are displayable but can never enter the cart.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       *float64
	Image       string
	Category    string
}

// Purchasable reports whether the product can be added to a cart.
func (p Product) Purchasable() bool { return p.Price != nil }

// APIProduct is the gateway wire shape. Price decodes tolerantly: the
// contract discourages null, but the reference backend ships priceless
// items, so a null must not fail the whole catalog load.
type APIProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
}

// Order is the fully assembled submission handed to the gateway:
// wizard fields plus the cart snapshot taken when checkout opened.
type Order struct {
	Payment Payment  `json:"payment"`
	Address string   `json:"address"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Items   []string `json:"items"`
	Total   float64  `json:"total"`
}

// Field names one order form field. Form input is dispatched through an
// explicit switch over these instead of string-keyed field access.
type Field string

const (
	FieldPayment Field = "payment"
	FieldAddress Field = "address"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

// ValidationErrors maps a field to a human-readable message. A missing
// key means the field is valid; an empty map means the step passes.
type ValidationErrors map[Field]string

// Ok reports whether no field is in error.
func (v ValidationErrors) Ok() bool { return len(v) == 0 }
