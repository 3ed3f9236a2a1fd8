package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"sidepot/database"
	"sidepot/models"

	"github.com/jackc/pgx/v5"
)

// LedgerRepository implements the LedgerRepository interface. The ledger is
// append-only: this type deliberately has no update or delete methods.
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository with a transaction
func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record appends a ledger entry.
func (r *LedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	metadataJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal entry metadata: %w", err)
	}

	query := `
		INSERT INTO ledger_entries
		(user_id, entry_type, amount, available_delta, locked_delta,
		 available_after, locked_after, ref_id, ref_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.Type,
		entry.Amount,
		entry.AvailableDelta,
		entry.LockedDelta,
		entry.AvailableAfter,
		entry.LockedAfter,
		entry.RefID,
		entry.RefType,
		metadataJSON,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record ledger entry for user %d: %w", entry.UserID, err)
	}

	return nil
}

// GetByUser returns the most recent ledger entries for a user.
func (r *LedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, user_id, entry_type, amount, available_delta, locked_delta,
		       available_after, locked_after, ref_id, ref_type, metadata, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByRef returns all ledger entries written against a pot or bet.
func (r *LedgerRepository) GetByRef(ctx context.Context, refType models.RefType, refID int64) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, user_id, entry_type, amount, available_delta, locked_delta,
		       available_after, locked_after, ref_id, ref_type, metadata, created_at
		FROM ledger_entries
		WHERE ref_type = $1 AND ref_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.q.Query(ctx, query, refType, refID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for %s %d: %w", refType, refID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SumDeltasByUser returns the column sums of a user's entries. Reconciliation
// compares these against the wallet's current balances.
func (r *LedgerRepository) SumDeltasByUser(ctx context.Context, userID int64) (availableSum, lockedSum int64, err error) {
	query := `
		SELECT COALESCE(SUM(available_delta), 0), COALESCE(SUM(locked_delta), 0)
		FROM ledger_entries
		WHERE user_id = $1
	`

	err = r.q.QueryRow(ctx, query, userID).Scan(&availableSum, &lockedSum)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum ledger deltas for user %d: %w", userID, err)
	}

	return availableSum, lockedSum, nil
}

func scanEntries(rows pgx.Rows) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var metadataJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Type,
			&entry.Amount,
			&entry.AvailableDelta,
			&entry.LockedDelta,
			&entry.AvailableAfter,
			&entry.LockedAfter,
			&entry.RefID,
			&entry.RefType,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal entry metadata: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}
