// Package brandrepo reads the brands that own catalog products.
package brandrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandDTO represents the database structure of a brand.
type BrandDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255)"`
	Approved bool      `gorm:"not null;default:false"`
}

// TableName overrides GORM's default "brand_dtos".
func (BrandDTO) TableName() string {
	return "brands"
}

// FromDomain converts a brand to its row. Exported for seeding and tests; brands are
// otherwise maintained outside this service.
func FromDomain(brand *catalog.Brand) BrandDTO {
	return BrandDTO{
		ID:       brand.ID().Bytes(),
		Name:     brand.Name(),
		Email:    brand.Email(),
		Approved: brand.IsApproved(),
	}
}

func toDomain(dto BrandDTO) (*catalog.Brand, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreBrand(id, dto.Name, dto.Email, dto.Approved)
}

// GormBrandRepository implements BrandRepository using GORM.
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GORM brand repository.
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// Get retrieves a brand by ID.
func (r *GormBrandRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Brand, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BrandDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("brand", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the existing brands among ids.
func (r *GormBrandRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Brand, error) {
	if len(ids) == 0 {
		return []*catalog.Brand{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []BrandDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	brands := make([]*catalog.Brand, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}

	return brands, nil
}
