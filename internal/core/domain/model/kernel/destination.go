package kernel

import (
	"strings"

	"storefront/internal/pkg/errs"
)

// Destination is where an order ships to. The city drives the delivery tier; the
// address is carried for fulfilment and notifications only.
type Destination struct {
	city    string
	address string
}

// NewDestination trims both parts. The address is mandatory; an empty city is
// allowed and simply never matches the home city.
func NewDestination(city, address string) (Destination, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Destination{}, errs.NewValueIsRequiredError("destination address")
	}
	return Destination{
		city:    strings.TrimSpace(city),
		address: address,
	}, nil
}

// City returns the city as entered (trimmed).
func (d Destination) City() string {
	return d.city
}

// Address returns the street address.
func (d Destination) Address() string {
	return d.address
}

// Validate rejects the zero value.
func (d Destination) Validate() error {
	if d.address == "" {
		return errs.NewValueIsRequiredError("destination address")
	}
	return nil
}

// InCity reports whether the destination city equals city after trimming and case folding.
func (d Destination) InCity(city string) bool {
	return NormalizeCity(d.city) == NormalizeCity(city) && NormalizeCity(city) != ""
}

// NormalizeCity trims surrounding whitespace and lower-cases the city name.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
