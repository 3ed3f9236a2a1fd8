package repository

import (
	"context"
	"testing"

	"sidepot/models"
	"sidepot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLedgerRepository(testDB.DB)
	wallets := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("record and read back", func(t *testing.T) {
		entry := testutil.CreateTestLedgerEntry(1, 1000)
		err := repo.Record(ctx, entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())

		entries, err := repo.GetByUser(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.EntryTypeDeposit, entries[0].Type)
		assert.Equal(t, int64(1000), entries[0].Amount)
		assert.Equal(t, true, entries[0].Metadata["test"])
	})

	t.Run("entries ordered newest first", func(t *testing.T) {
		first := testutil.CreateTestLedgerEntry(2, 100)
		require.NoError(t, repo.Record(ctx, first))

		second := &models.LedgerEntry{
			UserID:         2,
			Type:           models.EntryTypeWithdrawal,
			Amount:         40,
			AvailableDelta: -40,
			AvailableAfter: 60,
		}
		require.NoError(t, repo.Record(ctx, second))

		entries, err := repo.GetByUser(ctx, 2, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, models.EntryTypeWithdrawal, entries[0].Type)
		assert.Equal(t, models.EntryTypeDeposit, entries[1].Type)
	})

	t.Run("column sums reconcile against the wallet", func(t *testing.T) {
		userID := int64(3)

		// deposit 1000, lock 400 for a bet, win 300 back
		history := []*models.LedgerEntry{
			{UserID: userID, Type: models.EntryTypeDeposit, Amount: 1000, AvailableDelta: 1000, AvailableAfter: 1000},
			{UserID: userID, Type: models.EntryTypePotLock, Amount: 400, AvailableDelta: -400, LockedDelta: 400, AvailableAfter: 600, LockedAfter: 400},
			{UserID: userID, Type: models.EntryTypePotUnlock, Amount: 400, LockedDelta: -400, AvailableAfter: 600, LockedAfter: 0},
			{UserID: userID, Type: models.EntryTypePotWin, Amount: 300, AvailableDelta: 300, AvailableAfter: 900, LockedAfter: 0},
		}
		for _, entry := range history {
			require.NoError(t, repo.Record(ctx, entry))
		}

		_, err := wallets.GetForUpdate(ctx, userID)
		require.NoError(t, err)
		require.NoError(t, wallets.UpdateBalances(ctx, userID, 900, 0))

		availableSum, lockedSum, err := repo.SumDeltasByUser(ctx, userID)
		require.NoError(t, err)

		wallet, err := wallets.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, wallet.AvailableCredits, availableSum)
		assert.Equal(t, wallet.LockedCredits, lockedSum)
	})

	t.Run("GetByRef filters on reference", func(t *testing.T) {
		refID := int64(77)
		refType := models.RefTypeSideBet
		entry := &models.LedgerEntry{
			UserID:         4,
			Type:           models.EntryTypeDeposit,
			Amount:         50,
			AvailableDelta: 50,
			AvailableAfter: 50,
			RefID:          &refID,
			RefType:        &refType,
		}
		require.NoError(t, repo.Record(ctx, entry))

		entries, err := repo.GetByRef(ctx, models.RefTypeSideBet, 77)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(4), entries[0].UserID)

		none, err := repo.GetByRef(ctx, models.RefTypeSidePot, 77)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
