package services

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// simpleEmailRe is the checkout form's own rule. validEmail also applies the
// stricter RFC 5322 check, which rejects addresses such as "ada@example..com".
var (
	simpleEmailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	emailValidator = validator.New()
)

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	return simpleEmailRe.MatchString(s) && emailValidator.Var(s, "email") == nil
}

// DeliveryDetails are the buyer and shipping address fields of a checkout.
type DeliveryDetails struct {
	BuyerName    string
	BuyerEmail   string
	BuyerPhone   string
	AddressLine1 string
	AddressLine2 string
	City         string
	County       string
	Postcode     string
	Country      string
}

// ValidateDelivery applies the checkout form rules. It returns a
// *ValidationError naming every failing field.
func ValidateDelivery(d DeliveryDetails) error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.BuyerName) == "" {
		verr.add("buyerName", "Name is required")
	}
	if !validEmail(d.BuyerEmail) {
		verr.add("buyerEmail", "Valid email is required")
	}
	if strings.TrimSpace(d.AddressLine1) == "" {
		verr.add("addressLine1", "Address is required")
	}
	if strings.TrimSpace(d.City) == "" {
		verr.add("city", "City is required")
	}
	if strings.TrimSpace(d.Postcode) == "" {
		verr.add("postcode", "Postcode is required")
	}
	if strings.TrimSpace(d.Country) == "" {
		verr.add("country", "Country is required")
	}
	return verr.orNil()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
