package repository

import (
	"context"
	"time"

	"github.com/entryx/ticketing/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuctionFilter narrows an auction search. Zero values leave the
// corresponding dimension unfiltered; only open auctions are ever returned.
type AuctionFilter struct {
	Search  string
	EventID *uint
	Owner   string
	Bidder  string
}

type AuctionRepository interface {
	Transact(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, auction *models.AssetAuction) error
	FindByID(ctx context.Context, id uint) (*models.AssetAuction, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.AssetAuction, error)
	Search(ctx context.Context, filter AuctionFilter) ([]models.AssetAuction, error)
	UpdateHighestBid(ctx context.Context, tx *gorm.DB, id uint, amount float64, bidder string) error
	CreateBid(ctx context.Context, tx *gorm.DB, bid *models.Bid) error
	Close(ctx context.Context, id uint, closedAt time.Time) error
}

type auctionRepository struct {
	db *gorm.DB
}

func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

func (r *auctionRepository) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *auctionRepository) Create(ctx context.Context, tx *gorm.DB, auction *models.AssetAuction) error {
	return tx.WithContext(ctx).Create(auction).Error
}

func (r *auctionRepository) FindByID(ctx context.Context, id uint) (*models.AssetAuction, error) {
	var auction models.AssetAuction
	if err := r.db.WithContext(ctx).
		Preload("Asset.Event").
		First(&auction, id).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

// FindByIDForUpdate locks the auction row; bid acceptance is serialized on
// this lock so two bids cannot both observe the same highest bid.
func (r *auctionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.AssetAuction, error) {
	var auction models.AssetAuction
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&auction, id).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *auctionRepository) Search(ctx context.Context, filter AuctionFilter) ([]models.AssetAuction, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN assets ON assets.id = asset_auctions.asset_id AND assets.deleted_at IS NULL").
		Joins("JOIN events ON events.id = assets.event_id AND events.deleted_at IS NULL").
		Where("asset_auctions.ends_at > ?", time.Now()).
		Where("asset_auctions.closed_at IS NULL")

	if filter.Search != "" {
		q = q.Where("events.name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.EventID != nil {
		q = q.Where("assets.event_id = ?", *filter.EventID)
	}
	if filter.Owner != "" {
		q = q.Where("asset_auctions.owner = ?", filter.Owner)
	}
	if filter.Bidder != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM bids WHERE bids.auction_id = asset_auctions.id AND bids.bidder = ?)",
			filter.Bidder,
		)
	}

	var auctions []models.AssetAuction
	if err := q.Order("asset_auctions.ends_at ASC").
		Preload("Asset.Event").
		Find(&auctions).Error; err != nil {
		return nil, err
	}
	return auctions, nil
}

func (r *auctionRepository) UpdateHighestBid(ctx context.Context, tx *gorm.DB, id uint, amount float64, bidder string) error {
	return tx.WithContext(ctx).
		Model(&models.AssetAuction{}).
		Where("id = ?", id).
		Updates(map[string]any{"highest_bid": amount, "highest_bidder": bidder}).Error
}

func (r *auctionRepository) CreateBid(ctx context.Context, tx *gorm.DB, bid *models.Bid) error {
	return tx.WithContext(ctx).Create(bid).Error
}

func (r *auctionRepository) Close(ctx context.Context, id uint, closedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AssetAuction{}).
		Where("id = ?", id).
		Update("closed_at", closedAt).Error
}
