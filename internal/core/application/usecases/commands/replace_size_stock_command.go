package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrReplaceSizeStockCommandIsNotConstructed = errors.New(
	"ReplaceSizeStockCommand must be created via NewReplaceSizeStockCommand constructor",
)

// SizeStock is one row of the administrative size table: a size and its remaining stock.
type SizeStock struct {
	Size  string
	Stock int
}

// ReplaceSizeStockCommand replaces the whole size array of a product on behalf of the
// owning brand. An empty array makes the product unsized.
type ReplaceSizeStockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	brandID   kernel.UUID
	sizes     []SizeStock

	guard guard.ConstructorGuard
}

func NewReplaceSizeStockCommand(productID, brandID kernel.UUID, sizes []SizeStock) (ReplaceSizeStockCommand, error) {
	cmd := ReplaceSizeStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setBrandID(brandID),
		cmd.setSizes(sizes),
	); err != nil {
		return ReplaceSizeStockCommand{}, err
	}

	return cmd, nil
}

func (c ReplaceSizeStockCommand) Validate() error {
	return c.guard.Validate(ErrReplaceSizeStockCommandIsNotConstructed)
}

func (c ReplaceSizeStockCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c ReplaceSizeStockCommand) BrandID() kernel.UUID {
	return c.brandID
}

func (c ReplaceSizeStockCommand) Sizes() []SizeStock {
	out := make([]SizeStock, len(c.sizes))
	copy(out, c.sizes)
	return out
}

func (c *ReplaceSizeStockCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *ReplaceSizeStockCommand) setBrandID(brandID kernel.UUID) error {
	if err := brandID.Validate(); err != nil {
		return err
	}

	c.brandID = brandID
	return nil
}

func (c *ReplaceSizeStockCommand) setSizes(sizes []SizeStock) error {
	out := make([]SizeStock, 0, len(sizes))
	for _, s := range sizes {
		size := strings.TrimSpace(s.Size)
		if size == "" {
			return errs.NewValueIsRequiredError("size")
		}
		if s.Stock < 0 {
			return errs.NewValueIsOutOfRangeErrorWithCause("stock", s.Stock, 0, "unbounded",
				fmt.Errorf("size %q", size))
		}
		out = append(out, SizeStock{Size: size, Stock: s.Stock})
	}

	c.sizes = out
	return nil
}
