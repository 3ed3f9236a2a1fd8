package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sidepot/database"
	"sidepot/models"

	"github.com/jackc/pgx/v5"
)

const sidePotColumns = `
	id, match_id, creator_id, side_a_label, side_b_label, stake_per_side,
	fee_bps, status, lock_cutoff_at, winning_side, resolved_at, settled_at,
	fee_amount, dispute_status, dispute_deadline, dispute_filed_by,
	dispute_filed_at, dispute_reason, auto_resolved_at, hold_reason,
	hold_deadline, void_reason, evidence, created_at, updated_at`

// SidePotRepository implements the SidePotRepository interface
type SidePotRepository struct {
	q queryable
}

// NewSidePotRepository creates a new side pot repository
func NewSidePotRepository(db *database.DB) *SidePotRepository {
	return &SidePotRepository{q: db.Pool}
}

// newSidePotRepositoryWithTx creates a new side pot repository with a transaction
func newSidePotRepositoryWithTx(tx queryable) *SidePotRepository {
	return &SidePotRepository{q: tx}
}

// Create inserts a new pot in the open state.
func (r *SidePotRepository) Create(ctx context.Context, pot *models.SidePot) error {
	evidenceJSON, err := marshalEvidence(pot.Evidence)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO side_pots
		(match_id, creator_id, side_a_label, side_b_label, stake_per_side,
		 fee_bps, status, lock_cutoff_at, dispute_status, evidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err = r.q.QueryRow(ctx, query,
		pot.MatchID,
		pot.CreatorID,
		pot.SideALabel,
		pot.SideBLabel,
		pot.StakePerSide,
		pot.FeeBps,
		pot.Status,
		pot.LockCutoffAt,
		pot.DisputeStatus,
		evidenceJSON,
	).Scan(&pot.ID, &pot.CreatedAt, &pot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create side pot: %w", err)
	}

	return nil
}

// GetByID retrieves a pot, or nil if it does not exist.
func (r *SidePotRepository) GetByID(ctx context.Context, id int64) (*models.SidePot, error) {
	query := `SELECT ` + sidePotColumns + ` FROM side_pots WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a pot with its row locked for the transaction.
// Every state transition and every settlement entry point takes this lock
// first, so concurrent resolve/void/sweep calls on one pot serialize here.
func (r *SidePotRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.SidePot, error) {
	query := `SELECT ` + sidePotColumns + ` FROM side_pots WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *SidePotRepository) getOne(ctx context.Context, query string, id int64) (*models.SidePot, error) {
	pot, err := scanSidePot(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot %d: %w", id, err)
	}
	return pot, nil
}

// Update writes the pot's mutable fields.
func (r *SidePotRepository) Update(ctx context.Context, pot *models.SidePot) error {
	evidenceJSON, err := marshalEvidence(pot.Evidence)
	if err != nil {
		return err
	}

	query := `
		UPDATE side_pots
		SET status = $1, lock_cutoff_at = $2, winning_side = $3, resolved_at = $4,
		    fee_amount = $5, dispute_status = $6, dispute_deadline = $7,
		    dispute_filed_by = $8, dispute_filed_at = $9, dispute_reason = $10,
		    auto_resolved_at = $11, hold_reason = $12, hold_deadline = $13,
		    void_reason = $14, evidence = $15, updated_at = NOW()
		WHERE id = $16
	`

	result, err := r.q.Exec(ctx, query,
		pot.Status,
		pot.LockCutoffAt,
		pot.WinningSide,
		pot.ResolvedAt,
		pot.FeeAmount,
		pot.DisputeStatus,
		pot.DisputeDeadline,
		pot.DisputeFiledBy,
		pot.DisputeFiledAt,
		pot.DisputeReason,
		pot.AutoResolvedAt,
		pot.HoldReason,
		pot.HoldDeadlineAt,
		pot.VoidReason,
		evidenceJSON,
		pot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update side pot %d: %w", pot.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("side pot %d: %w", pot.ID, models.ErrNotFound)
	}

	return nil
}

// SetSettledFence check-and-sets the settlement fence. It returns false when
// the fence was already set, in which case the caller must not apply any
// settlement effects. The settled_at column is never written anywhere else.
func (r *SidePotRepository) SetSettledFence(ctx context.Context, potID int64, at time.Time) (bool, error) {
	query := `
		UPDATE side_pots
		SET settled_at = $2, updated_at = NOW()
		WHERE id = $1 AND settled_at IS NULL
	`

	result, err := r.q.Exec(ctx, query, potID, at)
	if err != nil {
		return false, fmt.Errorf("failed to set settlement fence on pot %d: %w", potID, err)
	}

	return result.RowsAffected() == 1, nil
}

// ListNeedingFinalization returns pots the auto-resolve sweep should
// finalize: resolved, undisputed and past their dispute deadline.
func (r *SidePotRepository) ListNeedingFinalization(ctx context.Context, now time.Time) ([]*models.SidePot, error) {
	query := `SELECT ` + sidePotColumns + `
		FROM side_pots
		WHERE status = 'resolved'
		  AND dispute_status = 'none'
		  AND dispute_deadline < $1
		  AND auto_resolved_at IS NULL
		ORDER BY dispute_deadline
	`
	return r.list(ctx, query, now)
}

// ListPastLockCutoff returns open pots whose betting cutoff has passed.
func (r *SidePotRepository) ListPastLockCutoff(ctx context.Context, now time.Time) ([]*models.SidePot, error) {
	query := `SELECT ` + sidePotColumns + `
		FROM side_pots
		WHERE status = 'open'
		  AND lock_cutoff_at IS NOT NULL
		  AND lock_cutoff_at <= $1
		ORDER BY lock_cutoff_at
	`
	return r.list(ctx, query, now)
}

// ListByStatus returns pots in the given lifecycle state, newest first.
func (r *SidePotRepository) ListByStatus(ctx context.Context, status models.PotStatus, limit int) ([]*models.SidePot, error) {
	query := `SELECT ` + sidePotColumns + `
		FROM side_pots
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, status, limit)
}

func (r *SidePotRepository) list(ctx context.Context, query string, args ...any) ([]*models.SidePot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list side pots: %w", err)
	}
	defer rows.Close()

	var pots []*models.SidePot
	for rows.Next() {
		pot, err := scanSidePot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan side pot: %w", err)
		}
		pots = append(pots, pot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate side pots: %w", err)
	}

	return pots, nil
}

func scanSidePot(row pgx.Row) (*models.SidePot, error) {
	var pot models.SidePot
	var evidenceJSON []byte

	err := row.Scan(
		&pot.ID,
		&pot.MatchID,
		&pot.CreatorID,
		&pot.SideALabel,
		&pot.SideBLabel,
		&pot.StakePerSide,
		&pot.FeeBps,
		&pot.Status,
		&pot.LockCutoffAt,
		&pot.WinningSide,
		&pot.ResolvedAt,
		&pot.SettledAt,
		&pot.FeeAmount,
		&pot.DisputeStatus,
		&pot.DisputeDeadline,
		&pot.DisputeFiledBy,
		&pot.DisputeFiledAt,
		&pot.DisputeReason,
		&pot.AutoResolvedAt,
		&pot.HoldReason,
		&pot.HoldDeadlineAt,
		&pot.VoidReason,
		&evidenceJSON,
		&pot.CreatedAt,
		&pot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(evidenceJSON) > 0 {
		if err := json.Unmarshal(evidenceJSON, &pot.Evidence); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pot evidence: %w", err)
		}
	}

	return &pot, nil
}

func marshalEvidence(evidence map[string]any) ([]byte, error) {
	if evidence == nil {
		return nil, nil
	}
	data, err := json.Marshal(evidence)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pot evidence: %w", err)
	}
	return data, nil
}
