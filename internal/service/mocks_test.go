package service

import (
	"context"
	"time"

	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/models"
	"github.com/entryx/ticketing/internal/repository"
	"gorm.io/gorm"
)

// Mock repositories: one function field per method; Transact defaults to
// running the callback with a nil tx so the service's transactional flow
// can be exercised without a database.

type mockEventRepo struct {
	transactFn          func(ctx context.Context, fn func(tx *gorm.DB) error) error
	createFn            func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Event, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	findAllFn           func(ctx context.Context) ([]models.Event, error)
	findByDistributorFn func(ctx context.Context, distributorKey string) ([]models.Event, error)
	maxSequenceFn       func(ctx context.Context, tx *gorm.DB) (uint32, error)
	deleteFn            func(ctx context.Context, id uint) error
}

func (m *mockEventRepo) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if m.transactFn != nil {
		return m.transactFn(ctx, fn)
	}
	return fn(nil)
}
func (m *mockEventRepo) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.createFn(ctx, tx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	return m.findAllFn(ctx)
}
func (m *mockEventRepo) FindByDistributor(ctx context.Context, distributorKey string) ([]models.Event, error) {
	return m.findByDistributorFn(ctx, distributorKey)
}
func (m *mockEventRepo) MaxSequence(ctx context.Context, tx *gorm.DB) (uint32, error) {
	return m.maxSequenceFn(ctx, tx)
}
func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

type mockAssetRepo struct {
	createFn              func(ctx context.Context, tx *gorm.DB, asset *models.Asset) error
	findByIDFn            func(ctx context.Context, id uint) (*models.Asset, error)
	findByIDsFn           func(ctx context.Context, ids []uint) ([]models.Asset, error)
	findByEventFn         func(ctx context.Context, eventID uint) ([]models.Asset, error)
	maxSequenceForEventFn func(ctx context.Context, tx *gorm.DB, eventID uint) (uint32, error)
	updateMutableFn       func(ctx context.Context, id uint, fields map[string]any) error
	setAddressFn          func(ctx context.Context, id uint, address string) error
}

func (m *mockAssetRepo) Create(ctx context.Context, tx *gorm.DB, asset *models.Asset) error {
	return m.createFn(ctx, tx, asset)
}
func (m *mockAssetRepo) FindByID(ctx context.Context, id uint) (*models.Asset, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockAssetRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Asset, error) {
	return m.findByIDsFn(ctx, ids)
}
func (m *mockAssetRepo) FindByEvent(ctx context.Context, eventID uint) ([]models.Asset, error) {
	return m.findByEventFn(ctx, eventID)
}
func (m *mockAssetRepo) MaxSequenceForEvent(ctx context.Context, tx *gorm.DB, eventID uint) (uint32, error) {
	return m.maxSequenceForEventFn(ctx, tx, eventID)
}
func (m *mockAssetRepo) UpdateMutable(ctx context.Context, id uint, fields map[string]any) error {
	return m.updateMutableFn(ctx, id, fields)
}
func (m *mockAssetRepo) SetAddress(ctx context.Context, id uint, address string) error {
	return m.setAddressFn(ctx, id, address)
}

type mockAuctionRepo struct {
	transactFn          func(ctx context.Context, fn func(tx *gorm.DB) error) error
	createFn            func(ctx context.Context, tx *gorm.DB, auction *models.AssetAuction) error
	findByIDFn          func(ctx context.Context, id uint) (*models.AssetAuction, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.AssetAuction, error)
	searchFn            func(ctx context.Context, filter repository.AuctionFilter) ([]models.AssetAuction, error)
	updateHighestBidFn  func(ctx context.Context, tx *gorm.DB, id uint, amount float64, bidder string) error
	createBidFn         func(ctx context.Context, tx *gorm.DB, bid *models.Bid) error
	closeFn             func(ctx context.Context, id uint, closedAt time.Time) error
}

func (m *mockAuctionRepo) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if m.transactFn != nil {
		return m.transactFn(ctx, fn)
	}
	return fn(nil)
}
func (m *mockAuctionRepo) Create(ctx context.Context, tx *gorm.DB, auction *models.AssetAuction) error {
	return m.createFn(ctx, tx, auction)
}
func (m *mockAuctionRepo) FindByID(ctx context.Context, id uint) (*models.AssetAuction, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockAuctionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.AssetAuction, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockAuctionRepo) Search(ctx context.Context, filter repository.AuctionFilter) ([]models.AssetAuction, error) {
	return m.searchFn(ctx, filter)
}
func (m *mockAuctionRepo) UpdateHighestBid(ctx context.Context, tx *gorm.DB, id uint, amount float64, bidder string) error {
	return m.updateHighestBidFn(ctx, tx, id, amount, bidder)
}
func (m *mockAuctionRepo) CreateBid(ctx context.Context, tx *gorm.DB, bid *models.Bid) error {
	return m.createBidFn(ctx, tx, bid)
}
func (m *mockAuctionRepo) Close(ctx context.Context, id uint, closedAt time.Time) error {
	return m.closeFn(ctx, id, closedAt)
}

type mockLedger struct {
	mintFn    func(ctx context.Context, code string, amount string) (string, error)
	accountFn func(ctx context.Context, accountID string) (*ledger.Account, error)
}

func (m *mockLedger) Mint(ctx context.Context, code string, amount string) (string, error) {
	return m.mintFn(ctx, code, amount)
}
func (m *mockLedger) Account(ctx context.Context, accountID string) (*ledger.Account, error) {
	return m.accountFn(ctx, accountID)
}

// mapKV is an in-memory stand-in for the redis cache.
type mapKV struct {
	data map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{data: map[string]string{}}
}

func (m *mapKV) Get(ctx context.Context, key string) (string, bool) {
	val, ok := m.data[key]
	return val, ok
}
func (m *mapKV) Set(ctx context.Context, key, value string, ttl time.Duration) {
	m.data[key] = value
}
func (m *mapKV) Delete(ctx context.Context, key string) {
	delete(m.data, key)
}
