package service

import (
	"context"
	"fmt"

	"sidepot/events"
	"sidepot/models"
)

// applyLedgerEvent is the single entry point for every wallet mutation in the
// system. It locks the wallet row, derives the per-bucket deltas from the
// entry type, rejects anything that would drive a bucket negative, writes the
// new balances and appends the ledger entry, all inside the caller's unit of
// work, so a wallet change without its ledger record cannot happen.
func applyLedgerEvent(ctx context.Context, uow UnitOfWork, entry *models.LedgerEntry) (*models.Wallet, error) {
	if entry.Amount < 0 {
		return nil, fmt.Errorf("ledger entry amount must be non-negative, got %d", entry.Amount)
	}

	availableDelta, lockedDelta, err := entry.Type.Deltas(entry.Amount)
	if err != nil {
		return nil, err
	}

	wallet, err := uow.WalletRepository().GetForUpdate(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	newAvailable := wallet.AvailableCredits + availableDelta
	newLocked := wallet.LockedCredits + lockedDelta

	if newAvailable < 0 {
		return nil, fmt.Errorf("%s of %d for user %d (available %d): %w",
			entry.Type, entry.Amount, entry.UserID, wallet.AvailableCredits, models.ErrInsufficientFunds)
	}
	if newLocked < 0 {
		return nil, fmt.Errorf("%s of %d for user %d (locked %d): %w",
			entry.Type, entry.Amount, entry.UserID, wallet.LockedCredits, models.ErrInsufficientLockedFunds)
	}

	if availableDelta != 0 || lockedDelta != 0 {
		if err := uow.WalletRepository().UpdateBalances(ctx, entry.UserID, newAvailable, newLocked); err != nil {
			return nil, fmt.Errorf("failed to update wallet balances: %w", err)
		}
	}

	entry.AvailableDelta = availableDelta
	entry.LockedDelta = lockedDelta
	entry.AvailableAfter = newAvailable
	entry.LockedAfter = newLocked

	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:         entry.UserID,
		EntryType:      entry.Type,
		Amount:         entry.Amount,
		AvailableAfter: newAvailable,
		LockedAfter:    newLocked,
	})

	wallet.AvailableCredits = newAvailable
	wallet.LockedCredits = newLocked
	return wallet, nil
}

func refTypePtr(t models.RefType) *models.RefType {
	return &t
}
