package models

import (
	"time"
)

// Resolution records that an outcome decision was made for a pot. At most one
// exists per pot; recording it is distinct from executing the payout, which is
// guarded separately by the settlement fence on the pot itself.
type Resolution struct {
	ID         int64     `db:"id"`
	SidePotID  int64     `db:"side_pot_id"`
	WinnerSide PotSide   `db:"winner_side"`
	DecidedBy  int64     `db:"decided_by"`
	DecidedAt  time.Time `db:"decided_at"`
	Notes      *string   `db:"notes"`
}
