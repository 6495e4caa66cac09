package catalog

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product is the inventory aggregate root: one sellable item of a brand together with its
// size buckets and the denormalized totals the storefront lists.
//
// Business rules:
//   - Product must have a valid id, owning brand, non-empty name and a price
//   - Size labels are unique within a product and kept in the order they were given
//   - totalStock equals the sum of bucket stock and is recomputed after every mutation
//   - A product without size variants keeps its stock in totalStock only
//   - lifetimeSold grows with every delivered line and is never decremented
//
// Product mirrors the arithmetic that the persistence adapter performs with single
// conditional SQL statements; see ports.ProductRepository.
//
// Example usage:
//
//	m, _ := catalog.NewSizeBucket("M", 10)
//	product, err := catalog.NewProduct(kernel.NewUUID(), brandID, "Panjabi", price, []*catalog.SizeBucket{m})
//	if err != nil {
//	    return err
//	}
//	_, _ = product.DecrementOnConfirm("M", 3) // M stock 7, totalStock 7
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID
	// brandID is the brand that owns and fulfils the product
	brandID kernel.UUID
	// name is the display name
	name string
	// unitPrice is the current price of one unit
	unitPrice kernel.Money
	// sizes are the per-size inventory buckets, in display order
	sizes []*SizeBucket
	// totalStock is the denormalized remaining quantity across all sizes
	totalStock int
	// lifetimeSold counts every unit ever delivered
	lifetimeSold int
	// guard ensures the product was properly constructed
	guard guard.ConstructorGuard
}

// NewProduct creates a product with the given size buckets. totalStock is derived from
// the buckets.
func NewProduct(
	id kernel.UUID,
	brandID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	sizes []*SizeBucket,
) (*Product, error) {
	return RestoreProduct(id, brandID, name, unitPrice, sizes, 0, 0)
}

// NewUnsizedProduct creates a product without size variants whose stock lives in
// totalStock directly.
func NewUnsizedProduct(
	id kernel.UUID,
	brandID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	stock int,
) (*Product, error) {
	return RestoreProduct(id, brandID, name, unitPrice, nil, stock, 0)
}

// RestoreProduct reconstructs a Product aggregate from persistent storage.
//
// When sizes are present, totalStock is recomputed from them and the stored value is
// ignored; for unsized products the stored totalStock is authoritative.
//
// Parameters:
//   - id: product identifier
//   - brandID: owning brand
//   - name: display name
//   - unitPrice: price of one unit
//   - sizes: size buckets in display order (may be empty)
//   - totalStock: stored denormalized total (must not be negative)
//   - lifetimeSold: cumulative delivered units (must not be negative)
func RestoreProduct(
	id kernel.UUID,
	brandID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	sizes []*SizeBucket,
	totalStock int,
	lifetimeSold int,
) (*Product, error) {
	product := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		product.setID(id),
		product.setBrandID(brandID),
		product.setName(name),
		product.setUnitPrice(unitPrice),
		product.setTotalStock(totalStock),
		product.setLifetimeSold(lifetimeSold),
		product.setSizes(sizes),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// IsEqual compares two products by identity.
func (p *Product) IsEqual(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// Validate checks if the Product was properly constructed.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// BrandID returns the owning brand.
func (p *Product) BrandID() kernel.UUID {
	return p.brandID
}

// Name returns the display name.
func (p *Product) Name() string {
	return p.name
}

// UnitPrice returns the price of one unit.
func (p *Product) UnitPrice() kernel.Money {
	return p.unitPrice
}

// TotalStock returns the denormalized remaining quantity.
func (p *Product) TotalStock() int {
	return p.totalStock
}

// LifetimeSold returns the number of units ever delivered.
func (p *Product) LifetimeSold() int {
	return p.lifetimeSold
}

// HasSizes reports whether the product has size variants.
func (p *Product) HasSizes() bool {
	return len(p.sizes) > 0
}

// Sizes returns the size buckets in display order. The slice is a copy.
func (p *Product) Sizes() []*SizeBucket {
	out := make([]*SizeBucket, len(p.sizes))
	copy(out, p.sizes)
	return out
}

// FindSize returns the bucket for size, if any.
func (p *Product) FindSize(size string) (*SizeBucket, bool) {
	size = strings.TrimSpace(size)
	for _, bucket := range p.sizes {
		if bucket.size == size {
			return bucket, true
		}
	}
	return nil, false
}

// Availability returns the remaining quantity for size. Unsized products answer with
// totalStock whatever size is asked for.
//
// Returns:
//   - int: remaining units
//   - error: ObjectNotFoundError when the product has sizes but none matches
func (p *Product) Availability(size string) (int, error) {
	if !p.HasSizes() {
		return p.totalStock, nil
	}

	bucket, ok := p.FindSize(size)
	if !ok {
		return 0, p.sizeNotFound(size)
	}
	return bucket.stock, nil
}

// DecrementOnConfirm removes min(remaining, quantity) units and recomputes totalStock.
//
// The ledger does not gate repeated calls; the transition engine must call it at most
// once per confirmed line.
//
// Behaviour:
//   - matching bucket: bucket stock decremented (clamped at zero)
//   - product without sizes: totalStock decremented directly (clamped at zero)
//   - sized product, unknown size: ObjectNotFoundError, nothing changes
//
// Returns the number of units actually removed.
func (p *Product) DecrementOnConfirm(size string, quantity int) (int, error) {
	if err := validateQuantity(quantity); err != nil {
		return 0, err
	}

	if !p.HasSizes() {
		removed := min(p.totalStock, quantity)
		p.totalStock -= removed
		return removed, nil
	}

	bucket, ok := p.FindSize(size)
	if !ok {
		return 0, p.sizeNotFound(size)
	}

	removed, err := bucket.Decrement(quantity)
	if err != nil {
		return 0, err
	}

	p.recomputeTotalStock()
	return removed, nil
}

// RecordSaleOnDeliver adds quantity to the bucket's sold counter and to lifetimeSold.
// Remaining stock is never touched.
func (p *Product) RecordSaleOnDeliver(size string, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	if p.HasSizes() {
		bucket, ok := p.FindSize(size)
		if !ok {
			return p.sizeNotFound(size)
		}
		if err := bucket.RecordSale(quantity); err != nil {
			return err
		}
	}

	p.lifetimeSold += quantity
	return nil
}

// ReplaceSizes swaps the whole size array (administrative bulk update) and recomputes
// totalStock. Passing an empty array turns the product into an unsized one with no stock.
func (p *Product) ReplaceSizes(sizes []*SizeBucket) error {
	if err := p.setSizes(sizes); err != nil {
		return err
	}
	if len(sizes) == 0 {
		p.totalStock = 0
	}
	return nil
}

func (p *Product) recomputeTotalStock() {
	if len(p.sizes) == 0 {
		return
	}

	total := 0
	for _, bucket := range p.sizes {
		total += bucket.stock
	}
	p.totalStock = total
}

func (p *Product) sizeNotFound(size string) error {
	return errs.NewObjectNotFoundErrorWithCause(
		"size",
		size,
		fmt.Errorf("product %s has no size %q", p.id.String(), size),
	)
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Product) setBrandID(brandID kernel.UUID) error {
	if err := brandID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("brandID", err)
	}

	p.brandID = brandID
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	p.name = name
	return nil
}

func (p *Product) setUnitPrice(unitPrice kernel.Money) error {
	p.unitPrice = unitPrice
	return nil
}

func (p *Product) setTotalStock(totalStock int) error {
	if totalStock < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalStock is invalid",
			fmt.Errorf("%d is negative", totalStock),
		)
	}

	p.totalStock = totalStock
	return nil
}

func (p *Product) setLifetimeSold(lifetimeSold int) error {
	if lifetimeSold < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"lifetimeSold is invalid",
			fmt.Errorf("%d is negative", lifetimeSold),
		)
	}

	p.lifetimeSold = lifetimeSold
	return nil
}

// setSizes validates every bucket and rejects duplicate size labels.
func (p *Product) setSizes(sizes []*SizeBucket) error {
	seen := make(map[string]struct{}, len(sizes))
	for _, bucket := range sizes {
		if err := bucket.Validate(); err != nil {
			return err
		}
		if _, dup := seen[bucket.size]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"sizes are invalid",
				fmt.Errorf("size %q is listed twice", bucket.size),
			)
		}
		seen[bucket.size] = struct{}{}
	}

	p.sizes = make([]*SizeBucket, len(sizes))
	copy(p.sizes, sizes)
	p.recomputeTotalStock()
	return nil
}
