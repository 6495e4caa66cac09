package productrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	decrementBucketSQL = `UPDATE size_buckets
SET stock = CASE WHEN stock > ? THEN stock - ? ELSE 0 END
WHERE product_id = ? AND size = ?`

	decrementUnsizedSQL = `UPDATE products
SET total_stock = CASE WHEN total_stock > ? THEN total_stock - ? ELSE 0 END
WHERE id = ? AND NOT EXISTS (SELECT 1 FROM size_buckets WHERE product_id = ?)`

	recomputeTotalSQL = `UPDATE products
SET total_stock = (SELECT COALESCE(SUM(stock), 0) FROM size_buckets WHERE product_id = ?)
WHERE id = ?`

	recordBucketSaleSQL = `UPDATE size_buckets
SET sold = sold + ?
WHERE product_id = ? AND size = ?`

	recordProductSaleSQL = `UPDATE products
SET lifetime_sold = lifetime_sold + ?,
    total_stock = (SELECT COALESCE(SUM(stock), 0) FROM size_buckets WHERE product_id = ?)
WHERE id = ?`

	recordUnsizedSaleSQL = `UPDATE products
SET lifetime_sold = lifetime_sold + ?
WHERE id = ? AND NOT EXISTS (SELECT 1 FROM size_buckets WHERE product_id = ?)`
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product together with its size buckets.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *catalog.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID with its sizes in display order.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).
		Preload("Sizes", orderedSizes).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the existing products among ids. Missing ids are skipped.
func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).
		Preload("Sizes", orderedSizes).
		Where("id IN ?", raw).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// ReplaceSizes stores the aggregate's size array and total stock. Buckets missing from
// the aggregate are deleted, existing buckets get their stock and position overwritten
// and new buckets start with nothing sold.
//
// Sold counters and lifetime_sold are never written here: a sale recorded by a
// concurrent delivery lands on the bucket row and survives the replacement. Buckets
// are locked before the product row, in the same order the ledger statements use.
func (r *GormProductRepository) ReplaceSizes(ctx context.Context, aggregate *catalog.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	stale := db.Where("product_id = ?", dto.ID)
	if len(dto.Sizes) > 0 {
		names := make([]string, 0, len(dto.Sizes))
		for _, s := range dto.Sizes {
			names = append(names, s.Size)
		}
		stale = stale.Where("size NOT IN ?", names)
	}
	if err := stale.Delete(&SizeBucketDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Sizes) > 0 {
		for i := range dto.Sizes {
			dto.Sizes[i].Sold = 0
		}

		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "size"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "stock"}),
		}
		if err := db.Clauses(upsert).Create(&dto.Sizes).Error; err != nil {
			return err
		}
	}

	result := db.Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Update("total_stock", dto.TotalStock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// DecrementOnConfirm lowers the bucket's stock by min(stock, quantity) and recomputes
// total_stock. Products without buckets have total_stock lowered directly.
//
// Every statement clamps at zero inside the UPDATE itself, so concurrent decrements of
// the same bucket serialize on the row lock and never drive stock negative.
func (r *GormProductRepository) DecrementOnConfirm(
	ctx context.Context, productID kernel.UUID, size string, quantity int,
) error {
	if err := validateLedgerInput(productID, quantity); err != nil {
		return err
	}

	id := productID.Bytes()
	db := r.db.WithContext(ctx)

	result := db.Exec(decrementBucketSQL, quantity, quantity, id, size)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return db.Exec(recomputeTotalSQL, id, id).Error
	}

	result = db.Exec(decrementUnsizedSQL, quantity, quantity, id, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledgerTargetNotFound(productID, size)
	}

	return nil
}

// RecordSaleOnDeliver adds quantity to the bucket's sold counter and to lifetime_sold.
// Stock stays as it is.
func (r *GormProductRepository) RecordSaleOnDeliver(
	ctx context.Context, productID kernel.UUID, size string, quantity int,
) error {
	if err := validateLedgerInput(productID, quantity); err != nil {
		return err
	}

	id := productID.Bytes()
	db := r.db.WithContext(ctx)

	result := db.Exec(recordBucketSaleSQL, quantity, id, size)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return db.Exec(recordProductSaleSQL, quantity, id, id).Error
	}

	result = db.Exec(recordUnsizedSaleSQL, quantity, id, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledgerTargetNotFound(productID, size)
	}

	return nil
}

func orderedSizes(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func validateLedgerInput(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}

func ledgerTargetNotFound(productID kernel.UUID, size string) error {
	if size == "" {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return errs.NewObjectNotFoundError("size bucket", productID.String()+"/"+size)
}
