package models

import (
	"fmt"
	"time"
)

// EntryType identifies what kind of balance movement a ledger entry records.
type EntryType string

const (
	EntryTypeDeposit       EntryType = "deposit"
	EntryTypeWithdrawal    EntryType = "withdrawal"
	EntryTypePotLock       EntryType = "pot_lock"
	EntryTypePotUnlock     EntryType = "pot_unlock"
	EntryTypePotWin        EntryType = "pot_win"
	EntryTypePotLoss       EntryType = "pot_loss"
	EntryTypePotVoidRefund EntryType = "pot_void_refund"
	EntryTypePotReleaseWin EntryType = "pot_release_win"
)

// RefType tells what entity a ledger entry's RefID points at.
type RefType string

const (
	RefTypeSidePot RefType = "side_pot"
	RefTypeSideBet RefType = "side_bet"
)

// LedgerEntry is one immutable record in the append-only audit log. Amount is
// the operation's principal (always positive); AvailableDelta and LockedDelta
// carry the signed effect on each wallet bucket, and the *After columns
// snapshot the balances the entry left behind. For every user the column sums
// of their entries equal the wallet's current balances; that equality is the
// reconciliation invariant the tests assert.
type LedgerEntry struct {
	ID             int64          `db:"id"`
	UserID         int64          `db:"user_id"`
	Type           EntryType      `db:"entry_type"`
	Amount         int64          `db:"amount"`
	AvailableDelta int64          `db:"available_delta"`
	LockedDelta    int64          `db:"locked_delta"`
	AvailableAfter int64          `db:"available_after"`
	LockedAfter    int64          `db:"locked_after"`
	RefID          *int64         `db:"ref_id"`
	RefType        *RefType       `db:"ref_type"`
	Metadata       map[string]any `db:"metadata"`
	CreatedAt      time.Time      `db:"created_at"`
}

// Deltas returns the signed per-bucket effect of an entry type applied with
// the given principal amount. pot_loss is a zero-delta audit record: the
// loser's stake already left the wallet through the paired pot_unlock.
func (t EntryType) Deltas(amount int64) (availableDelta, lockedDelta int64, err error) {
	switch t {
	case EntryTypeDeposit:
		return amount, 0, nil
	case EntryTypeWithdrawal:
		return -amount, 0, nil
	case EntryTypePotLock:
		return -amount, amount, nil
	case EntryTypePotUnlock:
		return 0, -amount, nil
	case EntryTypePotWin, EntryTypePotReleaseWin:
		return amount, 0, nil
	case EntryTypePotLoss:
		return 0, 0, nil
	case EntryTypePotVoidRefund:
		return amount, -amount, nil
	default:
		return 0, 0, fmt.Errorf("unknown ledger entry type %q", t)
	}
}
