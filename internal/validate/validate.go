package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Mobile number: optional +, leading 7 or 8, then 3-3-2-2 digit
	// groups with optional dash/paren separators.
	rePhone = regexp.MustCompile(`^\+?[78][-(]?\d{3}\)?-?\d{3}-?\d{2}-?\d{2}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Field error messages shown next to the wizard inputs.
const (
	MsgSelectPayment = "Select a payment method"
	MsgEnterAddress  = "Enter a delivery address"
	MsgEnterEmail    = "Enter an email"
	MsgInvalidEmail  = "Enter a valid email"
	MsgEnterPhone    = "Enter a phone number"
	MsgInvalidPhone  = "Enter a valid phone number"
	MsgOrderFailed   = "Could not place the order. Please try again."
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return s, false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	// Spaces are a common way to group digits; the pattern covers the
	// dashed forms, so normalize spaces away first.
	compact := strings.ReplaceAll(s, " ", "")
	return s, rePhone.MatchString(compact)
}

// Address only requires non-blank content after trimming.
func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ID validates a product identifier coming in from a form or URL.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
