package bus

import "larek/internal/domain"

// Event names. Model events announce completed state changes; intent
// events carry user interactions from the HTTP layer to the presenter.
const (
	ProductsLoading = "products:loading"
	ProductsLoaded  = "products:loaded"
	ProductsError   = "products:error"

	CartChanged = "cart:changed"

	OrderValidation   = "order:validation"
	OrderSubmitted    = "order:submitted"
	OrderSubmitFailed = "order:submit-failed"

	ModalOpen  = "modal:open"
	ModalClose = "modal:close"

	CardSelect      = "card:select"
	CartAdd         = "cart:add"
	CartRemove      = "cart:remove"
	CartOpen        = "cart:open"
	OrderOpen       = "order:open"
	OrderField      = "order:field"
	OrderNext       = "order:next"
	OrderBack       = "order:back"
	ContactsSubmit  = "contacts:submit"
	SuccessContinue = "success:continue"
)

// One payload shape per event. Events without a struct here publish nil.

type ProductsErrorPayload struct {
	Message string
}

type OrderValidationPayload struct {
	Errors domain.ValidationErrors
}

type OrderSubmittedPayload struct {
	OrderID string
	Total   float64
}

type OrderSubmitFailedPayload struct {
	Message string
}

type CardSelectPayload struct {
	ProductID string
}

type CartAddPayload struct {
	ProductID string
}

type CartRemovePayload struct {
	ProductID string
}

type OrderFieldPayload struct {
	Field domain.Field
	Value string
}
