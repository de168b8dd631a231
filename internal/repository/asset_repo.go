package repository

import (
	"context"

	"github.com/entryx/ticketing/internal/models"
	"gorm.io/gorm"
)

type AssetRepository interface {
	Create(ctx context.Context, tx *gorm.DB, asset *models.Asset) error
	FindByID(ctx context.Context, id uint) (*models.Asset, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Asset, error)
	FindByEvent(ctx context.Context, eventID uint) ([]models.Asset, error)
	MaxSequenceForEvent(ctx context.Context, tx *gorm.DB, eventID uint) (uint32, error)
	UpdateMutable(ctx context.Context, id uint, fields map[string]any) error
	SetAddress(ctx context.Context, id uint, address string) error
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, tx *gorm.DB, asset *models.Asset) error {
	return tx.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).Preload("Event").First(&asset, id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) FindByEvent(ctx context.Context, eventID uint) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// MaxSequenceForEvent returns the highest sequence ever allocated under the
// event, including soft-deleted categories. Callers must hold the event
// row lock so two allocations cannot observe the same maximum.
func (r *assetRepository) MaxSequenceForEvent(ctx context.Context, tx *gorm.DB, eventID uint) (uint32, error) {
	var max uint32
	err := tx.WithContext(ctx).
		Unscoped().
		Model(&models.Asset{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&max).Error
	return max, err
}

// UpdateMutable applies the fields only while the asset is unminted; the
// address guard closes the race with a concurrent tokenization. A miss is
// reported as gorm.ErrRecordNotFound.
func (r *assetRepository) UpdateMutable(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ? AND address IS NULL", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assetRepository) SetAddress(ctx context.Context, id uint, address string) error {
	return r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ?", id).
		Update("address", address).Error
}
