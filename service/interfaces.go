package service

import (
	"context"
	"time"

	"sidepot/events"
	"sidepot/models"
)

// WalletRepository defines the interface for wallet data access
type WalletRepository interface {
	// GetByUserID retrieves a wallet, or nil if the user has none yet
	GetByUserID(ctx context.Context, userID int64) (*models.Wallet, error)

	// GetForUpdate locks the wallet row for the transaction, creating an
	// empty wallet first if none exists
	GetForUpdate(ctx context.Context, userID int64) (*models.Wallet, error)

	// UpdateBalances writes new bucket balances for a locked wallet
	UpdateBalances(ctx context.Context, userID, availableCredits, lockedCredits int64) error
}

// LedgerRepository defines the interface for the append-only audit log
type LedgerRepository interface {
	// Record appends a ledger entry
	Record(ctx context.Context, entry *models.LedgerEntry) error

	// GetByUser returns the most recent ledger entries for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)

	// GetByRef returns all entries written against a pot or bet
	GetByRef(ctx context.Context, refType models.RefType, refID int64) ([]*models.LedgerEntry, error)

	// SumDeltasByUser returns the per-bucket column sums of a user's entries
	SumDeltasByUser(ctx context.Context, userID int64) (availableSum, lockedSum int64, err error)
}

// SidePotRepository defines the interface for side pot data access
type SidePotRepository interface {
	// Create inserts a new pot in the open state
	Create(ctx context.Context, pot *models.SidePot) error

	// GetByID retrieves a pot, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.SidePot, error)

	// GetByIDForUpdate retrieves a pot with its row locked for the transaction
	GetByIDForUpdate(ctx context.Context, id int64) (*models.SidePot, error)

	// Update writes the pot's mutable fields
	Update(ctx context.Context, pot *models.SidePot) error

	// SetSettledFence check-and-sets the settlement fence; false means the
	// pot was already settled
	SetSettledFence(ctx context.Context, potID int64, at time.Time) (bool, error)

	// ListNeedingFinalization returns resolved, undisputed pots past their
	// dispute deadline
	ListNeedingFinalization(ctx context.Context, now time.Time) ([]*models.SidePot, error)

	// ListPastLockCutoff returns open pots whose betting cutoff has passed
	ListPastLockCutoff(ctx context.Context, now time.Time) ([]*models.SidePot, error)

	// ListByStatus returns pots in the given lifecycle state
	ListByStatus(ctx context.Context, status models.PotStatus, limit int) ([]*models.SidePot, error)
}

// SideBetRepository defines the interface for side bet data access
type SideBetRepository interface {
	// Create inserts a new bet
	Create(ctx context.Context, bet *models.SideBet) error

	// GetByID retrieves a bet, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.SideBet, error)

	// GetByPot returns all bets on a pot in placement order
	GetByPot(ctx context.Context, potID int64) ([]*models.SideBet, error)

	// GetByPotAndUser returns the user's bet on a pot, or nil
	GetByPotAndUser(ctx context.Context, potID, userID int64) (*models.SideBet, error)

	// GetByUser returns a user's most recent bets
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.SideBet, error)

	// MarkFunded transitions a pending bet to funded
	MarkFunded(ctx context.Context, betID int64, fundedAt time.Time) error

	// UpdateSettlement applies a bet's terminal transition and payout
	UpdateSettlement(ctx context.Context, betID int64, status models.BetStatus, payoutAmount *int64) error
}

// ResolutionRepository defines the interface for resolution records
type ResolutionRepository interface {
	// Create records an outcome decision; at most one exists per pot
	Create(ctx context.Context, resolution *models.Resolution) error

	// GetByPotID returns the pot's resolution, or nil
	GetByPotID(ctx context.Context, potID int64) (*models.Resolution, error)
}

// EventPublisher collects events during a unit of work for emission after
// commit
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork bundles the repositories over a single transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WalletRepository() WalletRepository
	LedgerRepository() LedgerRepository
	SidePotRepository() SidePotRepository
	SideBetRepository() SideBetRepository
	ResolutionRepository() ResolutionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// WalletService is the funding-gateway surface over wallets
type WalletService interface {
	// Deposit credits a user's available balance, creating the wallet lazily
	Deposit(ctx context.Context, userID, amount int64, reference string) (*models.Wallet, error)

	// Withdraw debits a user's available balance
	Withdraw(ctx context.Context, userID, amount int64, reference string) (*models.Wallet, error)

	// GetWallet returns the user's wallet, or an empty one if none exists
	GetWallet(ctx context.Context, userID int64) (*models.Wallet, error)

	// GetLedger returns the user's most recent ledger entries
	GetLedger(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)
}

// PotService carries the side pot lifecycle: intake, escrow, settlement and
// disputes
type PotService interface {
	// CreateSidePot opens a new pot
	CreateSidePot(ctx context.Context, params CreatePotParams) (*models.SidePot, error)

	// PlaceBet stakes credits on a side of an open pot
	PlaceBet(ctx context.Context, potID, userID int64, side models.PotSide, amount int64) (*models.SideBet, error)

	// LockPot transitions an open pot to locked
	LockPot(ctx context.Context, potID int64) (*models.SidePot, error)

	// HoldPot places a locked pot under evidence review
	HoldPot(ctx context.Context, potID int64, reason string, evidence map[string]any) (*models.SidePot, error)

	// ResolvePot records the winner and runs settlement exactly once
	ResolvePot(ctx context.Context, potID int64, winnerSide models.PotSide, decidedBy int64, notes string) (*SettlementResult, error)

	// VoidPot refunds every staker in full
	VoidPot(ctx context.Context, potID int64, reason string) (*models.SidePot, error)

	// FileDispute opens a dispute against a resolved pot within its window
	FileDispute(ctx context.Context, potID, filer int64, reason string) (*models.SidePot, error)

	// ResolveDispute closes a pending dispute, optionally compensating the
	// overturned side
	ResolveDispute(ctx context.Context, potID, resolverID int64, overturn bool, notes string) (*models.SidePot, error)

	// GetPotDetail returns a pot with its bets
	GetPotDetail(ctx context.Context, potID int64) (*models.PotDetail, error)

	// IsResolver checks whether a user may resolve pots and disputes
	IsResolver(userID int64) bool
}

// SweepService is the periodic scheduler surface
type SweepService interface {
	// SweepExpiredDisputes finalizes resolved pots past their dispute window
	// without touching wallets; returns the finalized pot ids
	SweepExpiredDisputes(ctx context.Context, now time.Time) ([]int64, error)

	// LockExpiredPots transitions open pots past their cutoff to locked;
	// returns the locked pot ids
	LockExpiredPots(ctx context.Context, now time.Time) ([]int64, error)
}
