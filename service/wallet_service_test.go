package service

import (
	"context"
	"testing"

	"sidepot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWalletService() (WalletService, *MockUnitOfWork) {
	uow := NewMockUnitOfWork()
	factory := &MockUnitOfWorkFactory{UnitOfWork: uow}
	return NewWalletService(factory), uow
}

func TestWalletService_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits available balance and records the entry", func(t *testing.T) {
		service, uow := newTestWalletService()

		wallet := &models.Wallet{UserID: 1, AvailableCredits: 500, LockedCredits: 0}
		uow.Wallets.On("GetForUpdate", mock.Anything, int64(1)).Return(wallet, nil)
		uow.Wallets.On("UpdateBalances", mock.Anything, int64(1), int64(1500), int64(0)).Return(nil)

		var recorded *models.LedgerEntry
		uow.Ledger.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.LedgerEntry)
		}).Return(nil)

		result, err := service.Deposit(ctx, 1, 1000, "gw-tx-42")
		require.NoError(t, err)

		assert.Equal(t, int64(1500), result.AvailableCredits)
		assert.Equal(t, int64(0), result.LockedCredits)

		require.NotNil(t, recorded)
		assert.Equal(t, models.EntryTypeDeposit, recorded.Type)
		assert.Equal(t, int64(1000), recorded.Amount)
		assert.Equal(t, int64(1000), recorded.AvailableDelta)
		assert.Equal(t, int64(0), recorded.LockedDelta)
		assert.Equal(t, int64(1500), recorded.AvailableAfter)
		assert.Equal(t, "gw-tx-42", recorded.Metadata["reference"])

		uow.Wallets.AssertExpectations(t)
		uow.Ledger.AssertExpectations(t)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		service, _ := newTestWalletService()

		_, err := service.Deposit(ctx, 1, 0, "gw-tx-43")
		assert.Error(t, err)

		_, err = service.Deposit(ctx, 1, -50, "gw-tx-44")
		assert.Error(t, err)
	})
}

func TestWalletService_Withdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("debits available balance", func(t *testing.T) {
		service, uow := newTestWalletService()

		wallet := &models.Wallet{UserID: 2, AvailableCredits: 1000, LockedCredits: 200}
		uow.Wallets.On("GetForUpdate", mock.Anything, int64(2)).Return(wallet, nil)
		uow.Wallets.On("UpdateBalances", mock.Anything, int64(2), int64(400), int64(200)).Return(nil)
		uow.Ledger.On("Record", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Withdraw(ctx, 2, 600, "payout-7")
		require.NoError(t, err)

		assert.Equal(t, int64(400), result.AvailableCredits)
		assert.Equal(t, int64(200), result.LockedCredits)

		uow.Wallets.AssertExpectations(t)
	})

	t.Run("insufficient available funds", func(t *testing.T) {
		service, uow := newTestWalletService()

		wallet := &models.Wallet{UserID: 2, AvailableCredits: 100, LockedCredits: 500}
		uow.Wallets.On("GetForUpdate", mock.Anything, int64(2)).Return(wallet, nil)

		_, err := service.Withdraw(ctx, 2, 200, "payout-8")
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)

		// Locked credits never cover a withdrawal
		uow.Wallets.AssertNotCalled(t, "UpdateBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		uow.Ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})
}

func TestWalletService_GetWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns existing wallet", func(t *testing.T) {
		service, uow := newTestWalletService()

		wallet := &models.Wallet{UserID: 3, AvailableCredits: 750}
		uow.Wallets.On("GetByUserID", mock.Anything, int64(3)).Return(wallet, nil)

		result, err := service.GetWallet(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(750), result.AvailableCredits)
	})

	t.Run("returns empty wallet for unknown user", func(t *testing.T) {
		service, uow := newTestWalletService()

		uow.Wallets.On("GetByUserID", mock.Anything, int64(4)).Return(nil, nil)

		result, err := service.GetWallet(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.UserID)
		assert.Equal(t, int64(0), result.AvailableCredits)
		assert.Equal(t, int64(0), result.LockedCredits)
	})
}
