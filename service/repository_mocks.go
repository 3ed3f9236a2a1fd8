package service

import (
	"context"
	"time"

	"sidepot/events"
	"sidepot/models"

	"github.com/stretchr/testify/mock"
)

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID int64) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetForUpdate(ctx context.Context, userID int64) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateBalances(ctx context.Context, userID, availableCredits, lockedCredits int64) error {
	args := m.Called(ctx, userID, availableCredits, lockedCredits)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) GetByRef(ctx context.Context, refType models.RefType, refID int64) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumDeltasByUser(ctx context.Context, userID int64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockSidePotRepository is a mock implementation of SidePotRepository
type MockSidePotRepository struct {
	mock.Mock
}

func (m *MockSidePotRepository) Create(ctx context.Context, pot *models.SidePot) error {
	args := m.Called(ctx, pot)
	return args.Error(0)
}

func (m *MockSidePotRepository) GetByID(ctx context.Context, id int64) (*models.SidePot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SidePot), args.Error(1)
}

func (m *MockSidePotRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.SidePot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SidePot), args.Error(1)
}

func (m *MockSidePotRepository) Update(ctx context.Context, pot *models.SidePot) error {
	args := m.Called(ctx, pot)
	return args.Error(0)
}

func (m *MockSidePotRepository) SetSettledFence(ctx context.Context, potID int64, at time.Time) (bool, error) {
	args := m.Called(ctx, potID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockSidePotRepository) ListNeedingFinalization(ctx context.Context, now time.Time) ([]*models.SidePot, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SidePot), args.Error(1)
}

func (m *MockSidePotRepository) ListPastLockCutoff(ctx context.Context, now time.Time) ([]*models.SidePot, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SidePot), args.Error(1)
}

func (m *MockSidePotRepository) ListByStatus(ctx context.Context, status models.PotStatus, limit int) ([]*models.SidePot, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SidePot), args.Error(1)
}

// MockSideBetRepository is a mock implementation of SideBetRepository
type MockSideBetRepository struct {
	mock.Mock
}

func (m *MockSideBetRepository) Create(ctx context.Context, bet *models.SideBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockSideBetRepository) GetByID(ctx context.Context, id int64) (*models.SideBet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SideBet), args.Error(1)
}

func (m *MockSideBetRepository) GetByPot(ctx context.Context, potID int64) ([]*models.SideBet, error) {
	args := m.Called(ctx, potID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SideBet), args.Error(1)
}

func (m *MockSideBetRepository) GetByPotAndUser(ctx context.Context, potID, userID int64) (*models.SideBet, error) {
	args := m.Called(ctx, potID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SideBet), args.Error(1)
}

func (m *MockSideBetRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.SideBet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SideBet), args.Error(1)
}

func (m *MockSideBetRepository) MarkFunded(ctx context.Context, betID int64, fundedAt time.Time) error {
	args := m.Called(ctx, betID, fundedAt)
	return args.Error(0)
}

func (m *MockSideBetRepository) UpdateSettlement(ctx context.Context, betID int64, status models.BetStatus, payoutAmount *int64) error {
	args := m.Called(ctx, betID, status, payoutAmount)
	return args.Error(0)
}

// MockResolutionRepository is a mock implementation of ResolutionRepository
type MockResolutionRepository struct {
	mock.Mock
}

func (m *MockResolutionRepository) Create(ctx context.Context, resolution *models.Resolution) error {
	args := m.Called(ctx, resolution)
	return args.Error(0)
}

func (m *MockResolutionRepository) GetByPotID(ctx context.Context, potID int64) (*models.Resolution, error) {
	args := m.Called(ctx, potID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resolution), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock

	Wallets     *MockWalletRepository
	Ledger      *MockLedgerRepository
	SidePots    *MockSidePotRepository
	SideBets    *MockSideBetRepository
	Resolutions *MockResolutionRepository
	Events      *MockEventPublisher
}

// NewMockUnitOfWork creates a mock unit of work with fresh repository mocks
// and Begin/Commit/Rollback accepted by default
func NewMockUnitOfWork() *MockUnitOfWork {
	uow := &MockUnitOfWork{
		Wallets:     &MockWalletRepository{},
		Ledger:      &MockLedgerRepository{},
		SidePots:    &MockSidePotRepository{},
		SideBets:    &MockSideBetRepository{},
		Resolutions: &MockResolutionRepository{},
		Events:      &MockEventPublisher{},
	}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Events.On("Publish", mock.Anything).Return()
	return uow
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) WalletRepository() WalletRepository {
	return m.Wallets
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository {
	return m.Ledger
}

func (m *MockUnitOfWork) SidePotRepository() SidePotRepository {
	return m.SidePots
}

func (m *MockUnitOfWork) SideBetRepository() SideBetRepository {
	return m.SideBets
}

func (m *MockUnitOfWork) ResolutionRepository() ResolutionRepository {
	return m.Resolutions
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Events
}

// MockUnitOfWorkFactory hands out a fixed unit of work
type MockUnitOfWorkFactory struct {
	UnitOfWork *MockUnitOfWork
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	return f.UnitOfWork
}
