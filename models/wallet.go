package models

import (
	"time"
)

// Wallet holds a user's credit balances in integer minor units. Credits are
// either spendable (available) or reserved against open side pots (locked);
// both buckets must stay non-negative. Wallets are created lazily on the
// first ledger event for a user and are never deleted.
type Wallet struct {
	UserID           int64     `db:"user_id"`
	AvailableCredits int64     `db:"available_credits"`
	LockedCredits    int64     `db:"locked_credits"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// TotalCredits returns the wallet's total holdings across both buckets.
func (w *Wallet) TotalCredits() int64 {
	return w.AvailableCredits + w.LockedCredits
}

// CanLock checks whether amount can be moved from available to locked.
func (w *Wallet) CanLock(amount int64) bool {
	return w.AvailableCredits >= amount
}

// CanRelease checks whether amount can be taken out of the locked bucket.
func (w *Wallet) CanRelease(amount int64) bool {
	return w.LockedCredits >= amount
}
