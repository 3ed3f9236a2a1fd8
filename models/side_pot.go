package models

import (
	"time"
)

// PotStatus represents the lifecycle state of a side pot.
type PotStatus string

const (
	PotStatusOpen     PotStatus = "open"
	PotStatusLocked   PotStatus = "locked"
	PotStatusResolved PotStatus = "resolved"
	PotStatusOnHold   PotStatus = "on_hold"
	PotStatusVoided   PotStatus = "voided"
)

// DisputeStatus is the secondary state a resolved pot carries through its
// dispute window.
type DisputeStatus string

const (
	DisputeStatusNone     DisputeStatus = "none"
	DisputeStatusPending  DisputeStatus = "pending"
	DisputeStatusResolved DisputeStatus = "resolved"
)

// PotSide labels the two outcomes of a pot.
type PotSide string

const (
	SideA PotSide = "A"
	SideB PotSide = "B"
)

// Valid reports whether s is one of the two recognized sides.
func (s PotSide) Valid() bool {
	return s == SideA || s == SideB
}

// Opposite returns the other side.
func (s PotSide) Opposite() PotSide {
	if s == SideA {
		return SideB
	}
	return SideA
}

const (
	// DisputeWindow is how long after resolution a dispute may be filed.
	DisputeWindow = 12 * time.Hour
	// HoldDeadline is the advisory review period after a pot enters on_hold.
	// Holds are lifted by an explicit resolve or void, never automatically.
	HoldDeadline = 24 * time.Hour
)

// SidePot is the escrow container for a binary-outcome challenge. Until
// settlement, the funds held for a pot equal the sum of its funded bets'
// locked amounts. SettledAt is the settlement fence: it is check-and-set in
// the same transaction as the first settlement ledger write, and every
// settlement entry point refuses to run once it is set.
type SidePot struct {
	ID             int64          `db:"id"`
	MatchID        *int64         `db:"match_id"`
	CreatorID      int64          `db:"creator_id"`
	SideALabel     string         `db:"side_a_label"`
	SideBLabel     string         `db:"side_b_label"`
	StakePerSide   int64          `db:"stake_per_side"`
	FeeBps         int32          `db:"fee_bps"`
	Status         PotStatus      `db:"status"`
	LockCutoffAt   *time.Time     `db:"lock_cutoff_at"`
	WinningSide    *PotSide       `db:"winning_side"`
	ResolvedAt     *time.Time     `db:"resolved_at"`
	SettledAt      *time.Time     `db:"settled_at"`
	FeeAmount      *int64         `db:"fee_amount"`
	DisputeStatus  DisputeStatus  `db:"dispute_status"`
	DisputeDeadline *time.Time    `db:"dispute_deadline"`
	DisputeFiledBy *int64         `db:"dispute_filed_by"`
	DisputeFiledAt *time.Time     `db:"dispute_filed_at"`
	DisputeReason  *string        `db:"dispute_reason"`
	AutoResolvedAt *time.Time     `db:"auto_resolved_at"`
	HoldReason     *string        `db:"hold_reason"`
	HoldDeadlineAt *time.Time     `db:"hold_deadline"`
	VoidReason     *string        `db:"void_reason"`
	Evidence       map[string]any `db:"evidence"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// IsOpen checks if the pot is accepting bets by status alone.
func (p *SidePot) IsOpen() bool {
	return p.Status == PotStatusOpen
}

// CanAcceptBets checks status and the lock cutoff.
func (p *SidePot) CanAcceptBets(now time.Time) bool {
	if p.Status != PotStatusOpen {
		return false
	}
	if p.LockCutoffAt != nil && !now.Before(*p.LockCutoffAt) {
		return false
	}
	return true
}

// CanLock checks if the pot may transition open -> locked.
func (p *SidePot) CanLock() bool {
	return p.Status == PotStatusOpen
}

// CanResolve checks if a winner may be recorded and settlement run.
func (p *SidePot) CanResolve() bool {
	return p.Status == PotStatusLocked || p.Status == PotStatusOnHold
}

// CanHold checks if the pot may be placed under evidence review.
func (p *SidePot) CanHold() bool {
	return p.Status == PotStatusLocked
}

// CanVoid checks if the pot may be voided with full refunds.
func (p *SidePot) CanVoid() bool {
	return p.Status == PotStatusLocked || p.Status == PotStatusOnHold
}

// IsSettled reports whether the settlement fence has been set.
func (p *SidePot) IsSettled() bool {
	return p.SettledAt != nil
}

// InDisputeWindow checks if a dispute may still be filed at now.
func (p *SidePot) InDisputeWindow(now time.Time) bool {
	return p.Status == PotStatusResolved &&
		p.DisputeDeadline != nil &&
		now.Before(*p.DisputeDeadline)
}

// NeedsFinalization reports whether the auto-resolve sweep should finalize
// this pot at now: resolved, undisputed, past the dispute deadline, and not
// yet finalized.
func (p *SidePot) NeedsFinalization(now time.Time) bool {
	return p.Status == PotStatusResolved &&
		p.DisputeStatus == DisputeStatusNone &&
		p.DisputeDeadline != nil &&
		now.After(*p.DisputeDeadline) &&
		p.AutoResolvedAt == nil
}

// SideLabel returns the display label for a side.
func (p *SidePot) SideLabel(side PotSide) string {
	if side == SideA {
		return p.SideALabel
	}
	return p.SideBLabel
}

// PotDetail combines a pot with its bets.
type PotDetail struct {
	Pot  *SidePot
	Bets []*SideBet
}

// BetsBySide groups the funded bets by their side.
func (d *PotDetail) BetsBySide() map[PotSide][]*SideBet {
	result := make(map[PotSide][]*SideBet)
	for _, bet := range d.Bets {
		result[bet.Side] = append(result[bet.Side], bet)
	}
	return result
}

// TotalStaked sums the amounts of all bets on the pot.
func (d *PotDetail) TotalStaked() int64 {
	var total int64
	for _, bet := range d.Bets {
		total += bet.Amount
	}
	return total
}
