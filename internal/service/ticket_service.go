package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/entryx/ticketing/internal/assetcode"
	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/models"
	"github.com/entryx/ticketing/internal/repository"
	"github.com/entryx/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

type CreateCategoryInput struct {
	EventID      uint
	CallerKey    string
	Label        string
	TotalUnits   int64
	PricePerUnit float64
	Size         assetcode.Size
}

// CategoryUpdate carries the mutable category attributes; nil fields are
// left untouched.
type CategoryUpdate struct {
	Label        *string
	TotalUnits   *int64
	PricePerUnit *float64
}

type TicketService interface {
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Asset, error)
	UpdateCategory(ctx context.Context, assetID uint, callerKey string, upd CategoryUpdate) (*models.Asset, error)
	ListCategories(ctx context.Context, eventID uint) ([]models.Asset, error)
	Tokenize(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error)
}

type ticketService struct {
	events    repository.EventRepository
	assets    repository.AssetRepository
	ledger    ledger.Ledger
	issuer    string
	publisher *rabbitmq.Publisher
}

func NewTicketService(
	events repository.EventRepository,
	assets repository.AssetRepository,
	ldg ledger.Ledger,
	issuer string,
	publisher *rabbitmq.Publisher,
) TicketService {
	return &ticketService{
		events:    events,
		assets:    assets,
		ledger:    ldg,
		issuer:    issuer,
		publisher: publisher,
	}
}

// CreateCategory allocates the next per-event sequence, derives the asset
// code and persists the category, all in one transaction. The event row is
// locked for the duration so two concurrent calls cannot observe the same
// maximum sequence; the unique index on (event_id, sequence) is the
// backstop, retried with a fresh allocation when hit.
func (s *ticketService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Asset, error) {
	size := in.Size
	if size == "" {
		size = assetcode.SizeMedium
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%q: %w", size, assetcode.ErrInvalidSize)
	}

	for attempt := 0; attempt < maxAllocationRetries; attempt++ {
		var created *models.Asset
		err := s.events.Transact(ctx, func(tx *gorm.DB) error {
			event, err := s.events.FindByIDForUpdate(ctx, tx, in.EventID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEventNotFound
				}
				return err
			}
			if event.DistributorKey != in.CallerKey {
				return ErrNotEventOwner
			}

			max, err := s.assets.MaxSequenceForEvent(ctx, tx, in.EventID)
			if err != nil {
				return fmt.Errorf("read max ticket sequence: %w", err)
			}
			next := max + 1

			code, err := assetcode.Encode(event.Sequence, next, size)
			if err != nil {
				return err
			}

			asset := &models.Asset{
				EventID:      in.EventID,
				Sequence:     next,
				Code:         code,
				Label:        in.Label,
				Size:         size,
				TotalUnits:   in.TotalUnits,
				PricePerUnit: in.PricePerUnit,
				Issuer:       s.issuer,
			}
			if err := s.assets.Create(ctx, tx, asset); err != nil {
				return err
			}
			created = asset
			return nil
		})
		if err == nil {
			if s.publisher != nil {
				_ = s.publisher.Publish("category.created", created)
			}
			return created, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	return nil, ErrSequenceConflict
}

func (s *ticketService) UpdateCategory(ctx context.Context, assetID uint, callerKey string, upd CategoryUpdate) (*models.Asset, error) {
	asset, err := s.getOwned(ctx, assetID, callerKey)
	if err != nil {
		return nil, err
	}
	if asset.Tokenized() {
		return nil, ErrAssetLocked
	}

	fields := map[string]any{}
	if upd.Label != nil {
		fields["label"] = *upd.Label
	}
	if upd.TotalUnits != nil {
		fields["total_units"] = *upd.TotalUnits
	}
	if upd.PricePerUnit != nil {
		fields["price_per_unit"] = *upd.PricePerUnit
	}
	if len(fields) == 0 {
		return asset, nil
	}

	if err := s.assets.UpdateMutable(ctx, assetID, fields); err != nil {
		// The asset was just fetched, so a miss on the guarded update means
		// it was tokenized between the check and the write.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetLocked
		}
		return nil, err
	}
	return s.assets.FindByID(ctx, assetID)
}

func (s *ticketService) ListCategories(ctx context.Context, eventID uint) ([]models.Asset, error) {
	return s.assets.FindByEvent(ctx, eventID)
}

// Tokenize mints the category's full supply on the ledger and records the
// transaction hash, locking the category. A ledger failure leaves the
// category un-minted and retryable.
func (s *ticketService) Tokenize(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error) {
	asset, err := s.getOwned(ctx, assetID, callerKey)
	if err != nil {
		return nil, err
	}
	if asset.Tokenized() {
		return nil, ErrAssetLocked
	}

	hash, err := s.ledger.Mint(ctx, asset.Code, strconv.FormatInt(asset.TotalUnits, 10))
	if err != nil {
		return nil, fmt.Errorf("mint %s: %w", asset.Code, err)
	}
	if err := s.assets.SetAddress(ctx, assetID, hash); err != nil {
		return nil, err
	}
	asset.Address = &hash

	if s.publisher != nil {
		_ = s.publisher.Publish("category.tokenized", asset)
	}
	return asset, nil
}

func (s *ticketService) getOwned(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error) {
	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if asset.Event == nil || asset.Event.DistributorKey != callerKey {
		return nil, ErrNotEventOwner
	}
	return asset, nil
}
