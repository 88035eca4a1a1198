package views

import (
	"github.com/gofiber/fiber/v2"

	"larek/internal/domain"
	"larek/internal/models"
)

// ShippingForm is checkout step one: payment method and address.
type ShippingForm struct {
	wizard *models.Wizard
}

func NewShippingForm(wizard *models.Wizard) *ShippingForm {
	return &ShippingForm{wizard: wizard}
}

func (v *ShippingForm) Render() Content {
	errs := v.wizard.Errors()
	return Content{
		Template: "partials/order_form",
		Data: fiber.Map{
			"Payment":      string(v.wizard.Payment()),
			"Address":      v.wizard.Address(),
			"PaymentError": errorText(errs, domain.FieldPayment),
			"AddressError": errorText(errs, domain.FieldAddress),
			"CanProceed":   v.wizard.ValidateShipping().Ok(),
		},
	}
}

// ContactsForm is checkout step two: email and phone. A failed gateway
// submission lands in the wizard's submit-error slot and surfaces here,
// while the cart and draft stay intact for retry.
type ContactsForm struct {
	wizard *models.Wizard
}

func NewContactsForm(wizard *models.Wizard) *ContactsForm {
	return &ContactsForm{wizard: wizard}
}

func (v *ContactsForm) Render() Content {
	errs := v.wizard.Errors()
	return Content{
		Template: "partials/contacts_form",
		Data: fiber.Map{
			"Email":       v.wizard.Email(),
			"Phone":       v.wizard.Phone(),
			"EmailError":  errorText(errs, domain.FieldEmail),
			"PhoneError":  errorText(errs, domain.FieldPhone),
			"SubmitError": v.wizard.SubmitError(),
			"CanSubmit":   v.wizard.ValidateContacts().Ok(),
		},
	}
}

// Success confirms a submitted order with the amount charged.
type Success struct {
	Total float64
}

func (v *Success) Render() Content {
	return Content{
		Template: "partials/success",
		Data:     fiber.Map{"Total": FormatPrice(ptr(v.Total))},
	}
}
