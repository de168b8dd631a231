package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/repository"
)

// KV is the small cache surface the services need; pkg/cache satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type SalesSummary struct {
	Sales    int64   `json:"sales"`
	Earnings float64 `json:"earnings"`
}

type AnalyticsService interface {
	Sales(ctx context.Context, distributorKey string) (*SalesSummary, error)
}

type analyticsService struct {
	events repository.EventRepository
	assets repository.AssetRepository
	ledger ledger.Ledger
	kv     KV
}

const accountCacheTTL = 30 * time.Second

func NewAnalyticsService(
	events repository.EventRepository,
	assets repository.AssetRepository,
	ldg ledger.Ledger,
	kv KV,
) AnalyticsService {
	return &analyticsService{events: events, assets: assets, ledger: ldg, kv: kv}
}

// Sales reports primary-market sales for an organizer: units sold per
// tokenized category are the minted supply minus what is still sitting in
// the distributor wallet on the ledger.
func (s *analyticsService) Sales(ctx context.Context, distributorKey string) (*SalesSummary, error) {
	account, err := s.account(ctx, distributorKey)
	if err != nil {
		return nil, err
	}

	events, err := s.events.FindByDistributor(ctx, distributorKey)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{}
	for _, event := range events {
		assets, err := s.assets.FindByEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		for _, asset := range assets {
			if !asset.Tokenized() {
				continue
			}
			inWallet, _ := ledger.AssetBalance(account, asset.Code, asset.Issuer)
			sold := float64(asset.TotalUnits) - inWallet
			if sold < 0 {
				sold = 0
			}
			summary.Sales += int64(sold)
			summary.Earnings += sold * asset.PricePerUnit
		}
	}
	return summary, nil
}

// account loads the distributor's ledger account, short-cached so a
// dashboard refresh does not hammer Horizon.
func (s *analyticsService) account(ctx context.Context, accountID string) (*ledger.Account, error) {
	key := "ledger:account:" + accountID

	if s.kv != nil {
		if raw, ok := s.kv.Get(ctx, key); ok {
			var cached ledger.Account
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	account, err := s.ledger.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if s.kv != nil {
		if raw, err := json.Marshal(account); err == nil {
			s.kv.Set(ctx, key, string(raw), accountCacheTTL)
		}
	}
	return account, nil
}
