package repository

import (
	"context"
	"fmt"

	"sidepot/database"
	"sidepot/models"

	"github.com/jackc/pgx/v5"
)

// WalletRepository implements the WalletRepository interface
type WalletRepository struct {
	q queryable
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

// newWalletRepositoryWithTx creates a new wallet repository with a transaction
func newWalletRepositoryWithTx(tx queryable) *WalletRepository {
	return &WalletRepository{q: tx}
}

// GetByUserID retrieves a wallet, or nil if the user has none yet.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*models.Wallet, error) {
	query := `
		SELECT user_id, available_credits, locked_credits, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var wallet models.Wallet
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.AvailableCredits,
		&wallet.LockedCredits,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}

	return &wallet, nil
}

// GetForUpdate returns the user's wallet with its row locked for the duration
// of the transaction, creating an empty wallet first if none exists. All
// balance mutations go through this lock, which serializes concurrent
// operations per wallet.
func (r *WalletRepository) GetForUpdate(ctx context.Context, userID int64) (*models.Wallet, error) {
	upsert := `
		INSERT INTO wallets (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, upsert, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet for user %d: %w", userID, err)
	}

	query := `
		SELECT user_id, available_credits, locked_credits, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		FOR UPDATE
	`

	var wallet models.Wallet
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&wallet.UserID,
		&wallet.AvailableCredits,
		&wallet.LockedCredits,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet for user %d: %w", userID, err)
	}

	return &wallet, nil
}

// UpdateBalances writes new bucket balances for a wallet. Callers must hold
// the row lock from GetForUpdate; the CHECK constraints reject negative
// balances as a last line of defense.
func (r *WalletRepository) UpdateBalances(ctx context.Context, userID, availableCredits, lockedCredits int64) error {
	query := `
		UPDATE wallets
		SET available_credits = $1, locked_credits = $2, updated_at = NOW()
		WHERE user_id = $3
	`

	result, err := r.q.Exec(ctx, query, availableCredits, lockedCredits, userID)
	if err != nil {
		return fmt.Errorf("failed to update balances for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet for user %d: %w", userID, models.ErrNotFound)
	}

	return nil
}
