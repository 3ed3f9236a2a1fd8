package repository

import (
	"context"
	"fmt"

	"sidepot/database"
	"sidepot/models"

	"github.com/jackc/pgx/v5"
)

// ResolutionRepository implements the ResolutionRepository interface
type ResolutionRepository struct {
	q queryable
}

// NewResolutionRepository creates a new resolution repository
func NewResolutionRepository(db *database.DB) *ResolutionRepository {
	return &ResolutionRepository{q: db.Pool}
}

// newResolutionRepositoryWithTx creates a new resolution repository with a transaction
func newResolutionRepositoryWithTx(tx queryable) *ResolutionRepository {
	return &ResolutionRepository{q: tx}
}

// Create records an outcome decision. The unique constraint on side_pot_id
// enforces at most one resolution per pot.
func (r *ResolutionRepository) Create(ctx context.Context, resolution *models.Resolution) error {
	query := `
		INSERT INTO resolutions (side_pot_id, winner_side, decided_by, decided_at, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		resolution.SidePotID,
		resolution.WinnerSide,
		resolution.DecidedBy,
		resolution.DecidedAt,
		resolution.Notes,
	).Scan(&resolution.ID)

	if err != nil {
		return fmt.Errorf("failed to create resolution for pot %d: %w", resolution.SidePotID, err)
	}

	return nil
}

// GetByPotID returns the pot's resolution, or nil if none was recorded.
func (r *ResolutionRepository) GetByPotID(ctx context.Context, potID int64) (*models.Resolution, error) {
	query := `
		SELECT id, side_pot_id, winner_side, decided_by, decided_at, notes
		FROM resolutions
		WHERE side_pot_id = $1
	`

	var resolution models.Resolution
	err := r.q.QueryRow(ctx, query, potID).Scan(
		&resolution.ID,
		&resolution.SidePotID,
		&resolution.WinnerSide,
		&resolution.DecidedBy,
		&resolution.DecidedAt,
		&resolution.Notes,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resolution for pot %d: %w", potID, err)
	}

	return &resolution, nil
}
