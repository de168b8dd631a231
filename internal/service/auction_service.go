package service

import (
	"context"
	"errors"
	"time"

	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/models"
	"github.com/entryx/ticketing/internal/repository"
	"github.com/entryx/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

type StartAuctionInput struct {
	OwnerKey   string
	AssetID    uint
	Quantity   int64
	StartPrice float64
}

type AuctionService interface {
	StartAuction(ctx context.Context, in StartAuctionInput) (*models.AssetAuction, error)
	PlaceBid(ctx context.Context, bidderKey string, auctionID uint, amount float64) (*models.AssetAuction, error)
	CloseAuction(ctx context.Context, ownerKey string, auctionID uint) (*models.AssetAuction, error)
	Search(ctx context.Context, filter repository.AuctionFilter) ([]models.AssetAuction, error)
	GetAuction(ctx context.Context, id uint) (*models.AssetAuction, error)
}

type auctionService struct {
	auctions  repository.AuctionRepository
	assets    repository.AssetRepository
	ledger    ledger.Ledger
	publisher *rabbitmq.Publisher
}

func NewAuctionService(
	auctions repository.AuctionRepository,
	assets repository.AssetRepository,
	ldg ledger.Ledger,
	publisher *rabbitmq.Publisher,
) AuctionService {
	return &auctionService{
		auctions:  auctions,
		assets:    assets,
		ledger:    ldg,
		publisher: publisher,
	}
}

// StartAuction lists resale units for a tokenized category. Resale may not
// undercut the primary market upward: the per-unit ask must stay at or
// below the category's face price, and the seller must actually hold the
// units on the ledger. The auction always ends a day before the event.
func (s *auctionService) StartAuction(ctx context.Context, in StartAuctionInput) (*models.AssetAuction, error) {
	asset, err := s.assets.FindByID(ctx, in.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	// A retired event is filtered out of the preload, leaving Event nil
	// while its tokenized categories survive.
	if asset.Event == nil {
		return nil, ErrCategoryNotFound
	}
	if !asset.Tokenized() {
		return nil, ErrNotTokenized
	}

	unitAsk := in.StartPrice / float64(in.Quantity)
	if unitAsk > asset.PricePerUnit {
		return nil, ErrPriceAboveFace
	}

	account, err := s.ledger.Account(ctx, in.OwnerKey)
	if err != nil {
		return nil, err
	}
	held, ok := ledger.AssetBalance(account, asset.Code, asset.Issuer)
	if !ok || held < float64(in.Quantity) {
		return nil, ErrInsufficientBalance
	}

	auction := &models.AssetAuction{
		AssetID:    in.AssetID,
		AssetUnits: in.Quantity,
		Owner:      in.OwnerKey,
		StartsAt:   time.Now(),
		EndsAt:     asset.Event.Date.AddDate(0, 0, -1),
		HighestBid: in.StartPrice,
	}
	err = s.auctions.Transact(ctx, func(tx *gorm.DB) error {
		return s.auctions.Create(ctx, tx, auction)
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("auction.opened", auction)
	}
	return auction, nil
}

// PlaceBid accepts a bid under a row lock on the auction, so two
// concurrent bids cannot both beat the same highest bid.
func (s *auctionService) PlaceBid(ctx context.Context, bidderKey string, auctionID uint, amount float64) (*models.AssetAuction, error) {
	var result *models.AssetAuction
	err := s.auctions.Transact(ctx, func(tx *gorm.DB) error {
		auction, err := s.auctions.FindByIDForUpdate(ctx, tx, auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuctionNotFound
			}
			return err
		}
		if !auction.Open(time.Now()) {
			return ErrAuctionClosed
		}
		if amount <= auction.HighestBid {
			return ErrBidTooLow
		}

		account, err := s.ledger.Account(ctx, bidderKey)
		if err != nil {
			return err
		}
		if ledger.NativeBalance(account) < amount {
			return ErrInsufficientBalance
		}

		bid := &models.Bid{AuctionID: auctionID, Bidder: bidderKey, Amount: amount}
		if err := s.auctions.CreateBid(ctx, tx, bid); err != nil {
			return err
		}
		if err := s.auctions.UpdateHighestBid(ctx, tx, auctionID, amount, bidderKey); err != nil {
			return err
		}

		auction.HighestBid = amount
		auction.HighestBidder = &bidderKey
		result = auction
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("auction.bid", result)
	}
	return result, nil
}

func (s *auctionService) CloseAuction(ctx context.Context, ownerKey string, auctionID uint) (*models.AssetAuction, error) {
	auction, err := s.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Owner != ownerKey {
		return nil, ErrNotAuctionOwner
	}
	if auction.ClosedAt != nil {
		return nil, ErrAuctionClosed
	}

	now := time.Now()
	if err := s.auctions.Close(ctx, auctionID, now); err != nil {
		return nil, err
	}
	auction.ClosedAt = &now

	if s.publisher != nil {
		_ = s.publisher.Publish("auction.closed", auction)
	}
	return auction, nil
}

func (s *auctionService) Search(ctx context.Context, filter repository.AuctionFilter) ([]models.AssetAuction, error) {
	return s.auctions.Search(ctx, filter)
}

func (s *auctionService) GetAuction(ctx context.Context, id uint) (*models.AssetAuction, error) {
	auction, err := s.auctions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, err
	}
	return auction, nil
}
