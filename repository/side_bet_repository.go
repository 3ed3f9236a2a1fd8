package repository

import (
	"context"
	"fmt"
	"time"

	"sidepot/database"
	"sidepot/models"

	"github.com/jackc/pgx/v5"
)

const sideBetColumns = `
	id, side_pot_id, user_id, side, amount, status, payout_amount,
	funded_at, created_at, updated_at`

// SideBetRepository implements the SideBetRepository interface
type SideBetRepository struct {
	q queryable
}

// NewSideBetRepository creates a new side bet repository
func NewSideBetRepository(db *database.DB) *SideBetRepository {
	return &SideBetRepository{q: db.Pool}
}

// newSideBetRepositoryWithTx creates a new side bet repository with a transaction
func newSideBetRepositoryWithTx(tx queryable) *SideBetRepository {
	return &SideBetRepository{q: tx}
}

// Create inserts a new bet.
func (r *SideBetRepository) Create(ctx context.Context, bet *models.SideBet) error {
	query := `
		INSERT INTO side_bets (side_pot_id, user_id, side, amount, status, funded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.SidePotID,
		bet.UserID,
		bet.Side,
		bet.Amount,
		bet.Status,
		bet.FundedAt,
	).Scan(&bet.ID, &bet.CreatedAt, &bet.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create side bet for user %d on pot %d: %w", bet.UserID, bet.SidePotID, err)
	}

	return nil
}

// GetByID retrieves a bet, or nil if it does not exist.
func (r *SideBetRepository) GetByID(ctx context.Context, id int64) (*models.SideBet, error) {
	query := `SELECT ` + sideBetColumns + ` FROM side_bets WHERE id = $1`

	bet, err := scanSideBet(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get side bet %d: %w", id, err)
	}

	return bet, nil
}

// GetByPot returns all bets on a pot in placement order.
func (r *SideBetRepository) GetByPot(ctx context.Context, potID int64) ([]*models.SideBet, error) {
	query := `SELECT ` + sideBetColumns + `
		FROM side_bets
		WHERE side_pot_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.q.Query(ctx, query, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for pot %d: %w", potID, err)
	}
	defer rows.Close()

	return scanSideBets(rows)
}

// GetByPotAndUser returns the user's bet on a pot, or nil.
func (r *SideBetRepository) GetByPotAndUser(ctx context.Context, potID, userID int64) (*models.SideBet, error) {
	query := `SELECT ` + sideBetColumns + `
		FROM side_bets
		WHERE side_pot_id = $1 AND user_id = $2
	`

	bet, err := scanSideBet(r.q.QueryRow(ctx, query, potID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet for user %d on pot %d: %w", userID, potID, err)
	}

	return bet, nil
}

// GetByUser returns a user's most recent bets.
func (r *SideBetRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.SideBet, error) {
	query := `SELECT ` + sideBetColumns + `
		FROM side_bets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanSideBets(rows)
}

// MarkFunded transitions a pending bet to funded.
func (r *SideBetRepository) MarkFunded(ctx context.Context, betID int64, fundedAt time.Time) error {
	query := `
		UPDATE side_bets
		SET status = $1, funded_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := r.q.Exec(ctx, query, models.BetStatusFunded, fundedAt, betID, models.BetStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark bet %d funded: %w", betID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending side bet %d: %w", betID, models.ErrNotFound)
	}

	return nil
}

// UpdateSettlement applies a bet's terminal transition and payout.
func (r *SideBetRepository) UpdateSettlement(ctx context.Context, betID int64, status models.BetStatus, payoutAmount *int64) error {
	query := `
		UPDATE side_bets
		SET status = $1, payout_amount = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, status, payoutAmount, betID)
	if err != nil {
		return fmt.Errorf("failed to update settlement of bet %d: %w", betID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("side bet %d: %w", betID, models.ErrNotFound)
	}

	return nil
}

func scanSideBet(row pgx.Row) (*models.SideBet, error) {
	var bet models.SideBet
	err := row.Scan(
		&bet.ID,
		&bet.SidePotID,
		&bet.UserID,
		&bet.Side,
		&bet.Amount,
		&bet.Status,
		&bet.PayoutAmount,
		&bet.FundedAt,
		&bet.CreatedAt,
		&bet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func scanSideBets(rows pgx.Rows) ([]*models.SideBet, error) {
	var bets []*models.SideBet
	for rows.Next() {
		bet, err := scanSideBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan side bet: %w", err)
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate side bets: %w", err)
	}

	return bets, nil
}
