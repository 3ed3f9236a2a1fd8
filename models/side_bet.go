package models

import (
	"time"
)

// BetStatus represents the state of an individual stake in a pot.
type BetStatus string

const (
	BetStatusPending  BetStatus = "pending"
	BetStatusFunded   BetStatus = "funded"
	BetStatusPaid     BetStatus = "paid"
	BetStatusLost     BetStatus = "lost"
	BetStatusRefunded BetStatus = "refunded"
)

// SideBet is one user's stake on one side of a pot. A bet becomes funded when
// its amount is locked in the staker's wallet, and is immutable afterwards
// except for the single terminal transition (paid, lost or refunded) applied
// by settlement or void.
type SideBet struct {
	ID           int64      `db:"id"`
	SidePotID    int64      `db:"side_pot_id"`
	UserID       int64      `db:"user_id"`
	Side         PotSide    `db:"side"`
	Amount       int64      `db:"amount"`
	Status       BetStatus  `db:"status"`
	PayoutAmount *int64     `db:"payout_amount"`
	FundedAt     *time.Time `db:"funded_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// IsFunded checks whether the bet's stake is held in escrow.
func (b *SideBet) IsFunded() bool {
	return b.Status == BetStatusFunded
}

// IsTerminal checks whether the bet has reached its final state.
func (b *SideBet) IsTerminal() bool {
	return b.Status == BetStatusPaid || b.Status == BetStatusLost || b.Status == BetStatusRefunded
}
