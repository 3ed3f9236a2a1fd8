package repository

import (
	"context"
	"sync"
	"testing"

	"sidepot/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWalletRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown user has no wallet", func(t *testing.T) {
		wallet, err := repo.GetByUserID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("GetForUpdate creates an empty wallet lazily", func(t *testing.T) {
		wallet, err := repo.GetForUpdate(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.Equal(t, int64(1), wallet.UserID)
		assert.Equal(t, int64(0), wallet.AvailableCredits)
		assert.Equal(t, int64(0), wallet.LockedCredits)

		// The lazily created row is now visible to plain reads
		again, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, again)
	})

	t.Run("UpdateBalances round trip", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, 2)
		require.NoError(t, err)

		err = repo.UpdateBalances(ctx, 2, 1500, 500)
		require.NoError(t, err)

		wallet, err := repo.GetByUserID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), wallet.AvailableCredits)
		assert.Equal(t, int64(500), wallet.LockedCredits)
		assert.Equal(t, int64(2000), wallet.TotalCredits())
	})

	t.Run("negative balances rejected by the schema", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, 3)
		require.NoError(t, err)

		err = repo.UpdateBalances(ctx, 3, -1, 0)
		assert.Error(t, err)
	})

	t.Run("row lock serializes concurrent credits", func(t *testing.T) {
		const workers = 8

		_, err := repo.GetForUpdate(ctx, 10)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
					txRepo := newWalletRepositoryWithTx(tx)
					wallet, err := txRepo.GetForUpdate(ctx, 10)
					if err != nil {
						return err
					}
					return txRepo.UpdateBalances(ctx, 10, wallet.AvailableCredits+100, 0)
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		wallet, err := repo.GetByUserID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(workers*100), wallet.AvailableCredits)
	})
}
