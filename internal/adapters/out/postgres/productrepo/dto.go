// Package productrepo persists catalog products and their size buckets and implements
// the inventory ledger as conditional SQL statements.
package productrepo

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product aggregates.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BrandID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalStock   int             `gorm:"type:int;not null;default:0"`
	LifetimeSold int             `gorm:"type:int;not null;default:0"`
	Sizes        []SizeBucketDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "product_dtos".
func (ProductDTO) TableName() string {
	return "products"
}

// SizeBucketDTO is one row of a product's size array. Position keeps display order.
type SizeBucketDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Size      string    `gorm:"type:varchar(32);primaryKey"`
	Position  int       `gorm:"type:int;not null"`
	Stock     int       `gorm:"type:int;not null;default:0"`
	Sold      int       `gorm:"type:int;not null;default:0"`
}

// TableName overrides GORM's default "size_bucket_dtos".
func (SizeBucketDTO) TableName() string {
	return "size_buckets"
}

func fromDomain(product *catalog.Product) ProductDTO {
	productID := product.ID().Bytes()
	return ProductDTO{
		ID:           productID,
		BrandID:      product.BrandID().Bytes(),
		Name:         product.Name(),
		UnitPrice:    product.UnitPrice().Decimal(),
		TotalStock:   product.TotalStock(),
		LifetimeSold: product.LifetimeSold(),
		Sizes:        sizesFromDomain(productID, product.Sizes()),
	}
}

func sizesFromDomain(productID uuid.UUID, buckets []*catalog.SizeBucket) []SizeBucketDTO {
	sizes := make([]SizeBucketDTO, 0, len(buckets))
	for i, bucket := range buckets {
		sizes = append(sizes, SizeBucketDTO{
			ProductID: productID,
			Size:      bucket.Size(),
			Position:  i,
			Stock:     bucket.Stock(),
			Sold:      bucket.Sold(),
		})
	}
	return sizes
}

// toDomain expects Sizes to be loaded in position order.
func toDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	brandID, err := kernel.UUIDFromBytes(dto.BrandID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	buckets := make([]*catalog.SizeBucket, 0, len(dto.Sizes))
	for _, s := range dto.Sizes {
		bucket, bucketErr := catalog.RestoreSizeBucket(s.Size, s.Stock, s.Sold)
		if bucketErr != nil {
			return nil, bucketErr
		}
		buckets = append(buckets, bucket)
	}

	return catalog.RestoreProduct(id, brandID, dto.Name, price, buckets, dto.TotalStock, dto.LifetimeSold)
}
