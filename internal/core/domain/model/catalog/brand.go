package catalog

import (
	"errors"
	"net/mail"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrBrandIsNotConstructed is returned when using an improperly initialized Brand.
var ErrBrandIsNotConstructed = errors.New("Brand must be created via RestoreBrand constructor")

// Brand is a seller on the storefront. Brands are managed elsewhere; the fulfilment
// engine only reads them to authorize brand actors, snapshot brand names on order lines
// and address brand notifications.
type Brand struct {
	id       kernel.UUID
	name     string
	email    string
	approved bool
	guard    guard.ConstructorGuard
}

// RestoreBrand builds a Brand from its stored state.
func RestoreBrand(id kernel.UUID, name, email string, approved bool) (*Brand, error) {
	brand := &Brand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		brand.setID(id),
		brand.setName(name),
		brand.setEmail(email),
	); err != nil {
		return nil, err
	}

	return brand, nil
}

func (b *Brand) ID() kernel.UUID {
	return b.id
}

func (b *Brand) Name() string {
	return b.name
}

// Email is where new-order notifications for the brand are sent. May be empty.
func (b *Brand) Email() string {
	return b.email
}

// IsApproved reports whether the platform has approved the brand to sell.
func (b *Brand) IsApproved() bool {
	return b.approved
}

func (b *Brand) Validate() error {
	if b == nil {
		return ErrBrandIsNotConstructed
	}
	return b.guard.Validate(ErrBrandIsNotConstructed)
}

func (b *Brand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Brand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	b.name = name
	return nil
}

func (b *Brand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		b.email = ""
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email is invalid", err)
	}
	b.email = email
	return nil
}
