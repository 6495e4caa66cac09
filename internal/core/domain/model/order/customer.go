package order

import (
	"net/mail"
	"strings"

	"storefront/internal/pkg/errs"
)

// Customer is the buyer contact captured with the order.
type Customer struct {
	name  string
	email string
	phone string
}

// NewCustomer requires a name and a valid email address; the phone number is optional.
func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if email == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Customer{}, errs.NewValueIsInvalidErrorWithCause("customer email", err)
	}

	return Customer{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

// Validate rejects the zero value.
func (c Customer) Validate() error {
	if c.email == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	return nil
}

// PaymentStatusUnpaid is used when the client does not report a payment status.
const PaymentStatusUnpaid = "unpaid"

// Payment records what the client reported about payment. Gateways are not
// integrated; the values are stored as given.
type Payment struct {
	reference string
	method    string
	status    string
}

// NewPayment requires a method ("cod", "bkash", ...). Reference may be empty for
// cash on delivery.
func NewPayment(reference, method, status string) (Payment, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return Payment{}, errs.NewValueIsRequiredError("payment method")
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = PaymentStatusUnpaid
	}

	return Payment{reference: strings.TrimSpace(reference), method: method, status: status}, nil
}

func (p Payment) Reference() string { return p.reference }
func (p Payment) Method() string    { return p.method }
func (p Payment) Status() string    { return p.status }

// Validate rejects the zero value.
func (p Payment) Validate() error {
	if p.method == "" {
		return errs.NewValueIsRequiredError("payment")
	}
	return nil
}
