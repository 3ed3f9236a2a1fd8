package service

import (
	"context"
	"fmt"

	"sidepot/models"
)

type walletService struct {
	uowFactory UnitOfWorkFactory
}

// NewWalletService creates a new wallet service
func NewWalletService(uowFactory UnitOfWorkFactory) WalletService {
	return &walletService{
		uowFactory: uowFactory,
	}
}

// Deposit credits a user's available balance. The payment gateway is trusted
// to have moved real money before calling this; the reference ties the entry
// back to the gateway transaction.
func (s *walletService) Deposit(ctx context.Context, userID, amount int64, reference string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive, got %d", amount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID: userID,
		Type:   models.EntryTypeDeposit,
		Amount: amount,
		Metadata: map[string]any{
			"reference": reference,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// Withdraw debits a user's available balance for a gateway payout.
func (s *walletService) Withdraw(ctx context.Context, userID, amount int64, reference string) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive, got %d", amount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID: userID,
		Type:   models.EntryTypeWithdrawal,
		Amount: amount,
		Metadata: map[string]any{
			"reference": reference,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// GetWallet returns the user's wallet. Users who never held credits get an
// empty wallet rather than an error.
func (s *walletService) GetWallet(ctx context.Context, userID int64) (*models.Wallet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return &models.Wallet{UserID: userID}, nil
	}

	return wallet, nil
}

// GetLedger returns the user's most recent ledger entries.
func (s *walletService) GetLedger(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LedgerRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	return entries, nil
}
