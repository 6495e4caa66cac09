package catalog

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrSizeBucketIsNotConstructed indicates that the SizeBucket was not
	// properly initialized through the NewSizeBucket constructor function.
	ErrSizeBucketIsNotConstructed = errors.New("SizeBucket must be created via NewSizeBucket constructor")
)

// SizeBucket is the per-size inventory record of a product. It holds the single
// authoritative remaining quantity (stock) and a separate, strictly monotonic
// cumulative-sold counter used for reporting only.
//
// Key business rules:
//   - Stock never drops below zero; decrements clamp at zero
//   - Sold only grows and is never subtracted from stock again
//   - A bucket is available while it has remaining stock
//
// Example usage:
//
//	m, err := catalog.NewSizeBucket("M", 10)
//	if err != nil {
//	    return err
//	}
//	m.Decrement(3) // stock 7
//	m.RecordSale(3) // sold 3, stock still 7
type SizeBucket struct {
	// size is the size label, unique within a product ("S", "M", "42", ...)
	size string

	// stock is the remaining quantity available for sale
	stock int

	// sold is the cumulative quantity delivered to customers
	sold int

	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// NewSizeBucket creates a bucket with the given remaining stock and nothing sold yet.
//
// Parameters:
//   - size: size label (must not be blank)
//   - stock: remaining quantity (must not be negative)
//
// Returns:
//   - *SizeBucket: properly initialized bucket
//   - error: aggregated validation errors, if any
func NewSizeBucket(size string, stock int) (*SizeBucket, error) {
	return RestoreSizeBucket(size, stock, 0)
}

// RestoreSizeBucket reconstructs a bucket from persistent storage, including the
// cumulative-sold counter.
func RestoreSizeBucket(size string, stock, sold int) (*SizeBucket, error) {
	bucket := &SizeBucket{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bucket.setSize(size),
		bucket.setStock(stock),
		bucket.setSold(sold),
	); err != nil {
		return nil, err
	}

	return bucket, nil
}

// Size returns the size label.
func (b *SizeBucket) Size() string {
	return b.size
}

// Stock returns the remaining quantity.
func (b *SizeBucket) Stock() int {
	return b.stock
}

// Sold returns the cumulative delivered quantity.
func (b *SizeBucket) Sold() int {
	return b.sold
}

// Available reports whether at least one unit remains.
func (b *SizeBucket) Available() bool {
	return b.stock > 0
}

// Covers reports whether the remaining stock can satisfy quantity.
// The check is advisory: nothing is held until the order is confirmed.
func (b *SizeBucket) Covers(quantity int) bool {
	return quantity > 0 && b.stock >= quantity
}

// Decrement reduces stock by min(stock, quantity) and returns the amount actually removed.
func (b *SizeBucket) Decrement(quantity int) (int, error) {
	if err := validateQuantity(quantity); err != nil {
		return 0, err
	}

	removed := min(b.stock, quantity)
	b.stock -= removed
	return removed, nil
}

// RecordSale adds quantity to the cumulative-sold counter. Stock is untouched.
func (b *SizeBucket) RecordSale(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	b.sold += quantity
	return nil
}

// IsEqual compares buckets by size label.
func (b *SizeBucket) IsEqual(other *SizeBucket) bool {
	return other != nil && b.size == other.size
}

// Validate checks that the bucket was built by a constructor.
func (b *SizeBucket) Validate() error {
	if b == nil {
		return ErrSizeBucketIsNotConstructed
	}
	return b.guard.Validate(ErrSizeBucketIsNotConstructed)
}

func (b *SizeBucket) setSize(size string) error {
	size = strings.TrimSpace(size)
	if size == "" {
		return errs.NewValueIsRequiredError("size is required")
	}

	b.size = size
	return nil
}

func (b *SizeBucket) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock is invalid",
			fmt.Errorf("%d is negative", stock),
		)
	}

	b.stock = stock
	return nil
}

func (b *SizeBucket) setSold(sold int) error {
	if sold < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sold is invalid",
			fmt.Errorf("%d is negative", sold),
		)
	}

	b.sold = sold
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return nil
}
