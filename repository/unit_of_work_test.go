package repository

import (
	"context"
	"testing"
	"time"

	"sidepot/config"
	"sidepot/events"
	"sidepot/models"
	"sidepot/repository/testutil"
	"sidepot/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationResolverID int64 = 999

func setupServices(t *testing.T) (service.WalletService, service.PotService, service.SweepService, *testutil.TestDatabase) {
	testDB := testutil.SetupTestDatabase(t)

	eventBus := events.NewBus()
	factory := NewUnitOfWorkFactory(testDB.DB, eventBus)
	cfg := &config.Config{
		Environment:   "test",
		DefaultFeeBps: 500,
		ResolverIDs:   []int64{integrationResolverID},
	}

	return service.NewWalletService(factory),
		service.NewPotService(factory, cfg),
		service.NewSweepService(factory),
		testDB
}

// reconcile asserts the ledger column sums match the wallet balances.
func reconcile(t *testing.T, testDB *testutil.TestDatabase, userID int64) {
	t.Helper()
	ctx := context.Background()

	wallets := NewWalletRepository(testDB.DB)
	ledger := NewLedgerRepository(testDB.DB)

	wallet, err := wallets.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, wallet)

	availableSum, lockedSum, err := ledger.SumDeltasByUser(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, wallet.AvailableCredits, availableSum, "available credits out of step with ledger")
	assert.Equal(t, wallet.LockedCredits, lockedSum, "locked credits out of step with ledger")
}

func TestFullPotLifecycle(t *testing.T) {
	walletSvc, potSvc, _, testDB := setupServices(t)
	ctx := context.Background()

	// Fund two players through the gateway surface
	_, err := walletSvc.Deposit(ctx, 100, 5000, "gw-1")
	require.NoError(t, err)
	_, err = walletSvc.Deposit(ctx, 200, 5000, "gw-2")
	require.NoError(t, err)

	pot, err := potSvc.CreateSidePot(ctx, service.CreatePotParams{
		CreatorID:    100,
		SideALabel:   "Radiant",
		SideBLabel:   "Dire",
		StakePerSide: 1000,
		FeeBps:       850,
	})
	require.NoError(t, err)

	// Both players stake the default
	betA, err := potSvc.PlaceBet(ctx, pot.ID, 100, models.SideA, 0)
	require.NoError(t, err)
	assert.Equal(t, models.BetStatusFunded, betA.Status)
	assert.Equal(t, int64(1000), betA.Amount)

	_, err = potSvc.PlaceBet(ctx, pot.ID, 200, models.SideB, 0)
	require.NoError(t, err)

	// Stakes moved to escrow
	wallet, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), wallet.AvailableCredits)
	assert.Equal(t, int64(1000), wallet.LockedCredits)

	// A second stake by the same user is refused
	_, err = potSvc.PlaceBet(ctx, pot.ID, 100, models.SideB, 500)
	assert.ErrorIs(t, err, models.ErrAlreadyStaked)

	_, err = potSvc.LockPot(ctx, pot.ID)
	require.NoError(t, err)

	// No bets after lock
	_, err = potSvc.PlaceBet(ctx, pot.ID, 300, models.SideA, 500)
	assert.ErrorIs(t, err, models.ErrPotNotOpen)

	result, err := potSvc.ResolvePot(ctx, pot.ID, models.SideA, integrationResolverID, "gg")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.TotalPot)
	assert.Equal(t, int64(170), result.ServiceFee)
	assert.Equal(t, int64(1830), result.Payouts[100])

	// Winner: 4000 remaining + 1830 payout; loser: stake gone for good
	winnerWallet, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5830), winnerWallet.AvailableCredits)
	assert.Equal(t, int64(0), winnerWallet.LockedCredits)

	loserWallet, err := walletSvc.GetWallet(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), loserWallet.AvailableCredits)
	assert.Equal(t, int64(0), loserWallet.LockedCredits)

	// Resolving again never pays twice
	_, err = potSvc.ResolvePot(ctx, pot.ID, models.SideB, integrationResolverID, "")
	assert.ErrorIs(t, err, models.ErrAlreadyResolved)

	stillWinner, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5830), stillWinner.AvailableCredits)

	reconcile(t, testDB, 100)
	reconcile(t, testDB, 200)
}

func TestVoidRefundsEveryStaker(t *testing.T) {
	walletSvc, potSvc, _, testDB := setupServices(t)
	ctx := context.Background()

	_, err := walletSvc.Deposit(ctx, 100, 2000, "gw-1")
	require.NoError(t, err)
	_, err = walletSvc.Deposit(ctx, 200, 2000, "gw-2")
	require.NoError(t, err)

	pot, err := potSvc.CreateSidePot(ctx, service.CreatePotParams{
		CreatorID:    100,
		SideALabel:   "Radiant",
		SideBLabel:   "Dire",
		StakePerSide: 1500,
		FeeBps:       850,
	})
	require.NoError(t, err)

	_, err = potSvc.PlaceBet(ctx, pot.ID, 100, models.SideA, 0)
	require.NoError(t, err)
	_, err = potSvc.PlaceBet(ctx, pot.ID, 200, models.SideB, 0)
	require.NoError(t, err)

	_, err = potSvc.LockPot(ctx, pot.ID)
	require.NoError(t, err)

	voided, err := potSvc.VoidPot(ctx, pot.ID, "match abandoned")
	require.NoError(t, err)
	assert.Equal(t, models.PotStatusVoided, voided.Status)

	// Full refunds, no fee
	for _, userID := range []int64{100, 200} {
		wallet, err := walletSvc.GetWallet(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), wallet.AvailableCredits)
		assert.Equal(t, int64(0), wallet.LockedCredits)
		reconcile(t, testDB, userID)
	}

	// A voided pot cannot be resolved afterward
	_, err = potSvc.ResolvePot(ctx, pot.ID, models.SideA, integrationResolverID, "")
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestInsufficientFundsLeavesNoTrace(t *testing.T) {
	walletSvc, potSvc, _, testDB := setupServices(t)
	ctx := context.Background()

	_, err := walletSvc.Deposit(ctx, 100, 300, "gw-1")
	require.NoError(t, err)

	pot, err := potSvc.CreateSidePot(ctx, service.CreatePotParams{
		CreatorID:    100,
		SideALabel:   "Radiant",
		SideBLabel:   "Dire",
		StakePerSide: 1000,
		FeeBps:       500,
	})
	require.NoError(t, err)

	_, err = potSvc.PlaceBet(ctx, pot.ID, 100, models.SideA, 0)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	// The rolled back transaction left neither a bet nor a wallet change
	bets := NewSideBetRepository(testDB.DB)
	none, err := bets.GetByPotAndUser(ctx, pot.ID, 100)
	require.NoError(t, err)
	assert.Nil(t, none)

	wallet, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(300), wallet.AvailableCredits)
	assert.Equal(t, int64(0), wallet.LockedCredits)
	reconcile(t, testDB, 100)
}

func TestDisputeFlow(t *testing.T) {
	walletSvc, potSvc, sweepSvc, testDB := setupServices(t)
	ctx := context.Background()

	_, err := walletSvc.Deposit(ctx, 100, 2000, "gw-1")
	require.NoError(t, err)
	_, err = walletSvc.Deposit(ctx, 200, 2000, "gw-2")
	require.NoError(t, err)

	pot, err := potSvc.CreateSidePot(ctx, service.CreatePotParams{
		CreatorID:    100,
		SideALabel:   "Radiant",
		SideBLabel:   "Dire",
		StakePerSide: 1000,
		FeeBps:       0,
	})
	require.NoError(t, err)

	_, err = potSvc.PlaceBet(ctx, pot.ID, 100, models.SideA, 0)
	require.NoError(t, err)
	_, err = potSvc.PlaceBet(ctx, pot.ID, 200, models.SideB, 0)
	require.NoError(t, err)
	_, err = potSvc.LockPot(ctx, pot.ID)
	require.NoError(t, err)

	_, err = potSvc.ResolvePot(ctx, pot.ID, models.SideA, integrationResolverID, "")
	require.NoError(t, err)

	// The sweep leaves the pot alone while the window is open
	finalized, err := sweepSvc.SweepExpiredDisputes(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, finalized)

	disputed, err := potSvc.FileDispute(ctx, pot.ID, 200, "wrong call")
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusPending, disputed.DisputeStatus)

	// One dispute per pot
	_, err = potSvc.FileDispute(ctx, pot.ID, 200, "again")
	assert.ErrorIs(t, err, models.ErrAlreadyDisputed)

	// Overturn compensates the side that lost; the paid winner keeps 2000
	_, err = potSvc.ResolveDispute(ctx, pot.ID, integrationResolverID, true, "evidence favored the filer")
	require.NoError(t, err)

	winnerWallet, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), winnerWallet.AvailableCredits)

	filerWallet, err := walletSvc.GetWallet(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), filerWallet.AvailableCredits)

	reconcile(t, testDB, 100)
	reconcile(t, testDB, 200)

	// The manual dispute resolution closed the dispute on the pot record
	pots := NewSidePotRepository(testDB.DB)
	got, err := pots.GetByID(ctx, pot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeStatusResolved, got.DisputeStatus)
}

func TestSweepFinalizesPastDeadline(t *testing.T) {
	walletSvc, potSvc, sweepSvc, testDB := setupServices(t)
	ctx := context.Background()

	_, err := walletSvc.Deposit(ctx, 100, 2000, "gw-1")
	require.NoError(t, err)
	_, err = walletSvc.Deposit(ctx, 200, 2000, "gw-2")
	require.NoError(t, err)

	pot, err := potSvc.CreateSidePot(ctx, service.CreatePotParams{
		CreatorID:    100,
		SideALabel:   "Radiant",
		SideBLabel:   "Dire",
		StakePerSide: 1000,
		FeeBps:       500,
	})
	require.NoError(t, err)

	_, err = potSvc.PlaceBet(ctx, pot.ID, 100, models.SideA, 0)
	require.NoError(t, err)
	_, err = potSvc.PlaceBet(ctx, pot.ID, 200, models.SideB, 0)
	require.NoError(t, err)
	_, err = potSvc.LockPot(ctx, pot.ID)
	require.NoError(t, err)
	_, err = potSvc.ResolvePot(ctx, pot.ID, models.SideA, integrationResolverID, "")
	require.NoError(t, err)

	winnerBefore, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)

	// Pretend the window elapsed
	sweepTime := time.Now().Add(models.DisputeWindow + time.Minute)
	finalized, err := sweepSvc.SweepExpiredDisputes(ctx, sweepTime)
	require.NoError(t, err)
	assert.Equal(t, []int64{pot.ID}, finalized)

	pots := NewSidePotRepository(testDB.DB)
	got, err := pots.GetByID(ctx, pot.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.AutoResolvedAt)
	assert.Equal(t, models.DisputeStatusResolved, got.DisputeStatus)

	// Finalization moved no money
	winnerAfter, err := walletSvc.GetWallet(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, winnerBefore.AvailableCredits, winnerAfter.AvailableCredits)

	// Filing now is too late
	_, err = potSvc.FileDispute(ctx, pot.ID, 200, "past the window")
	assert.ErrorIs(t, err, models.ErrDisputeWindowExpired)

	// Idempotent: a second sweep finds nothing
	finalized, err = sweepSvc.SweepExpiredDisputes(ctx, sweepTime)
	require.NoError(t, err)
	assert.Empty(t, finalized)
}

func TestLockExpiredPotsSweep(t *testing.T) {
	walletSvc, potSvc, sweepSvc, _ := setupServices(t)
	ctx := context.Background()

	_, err := walletSvc.Deposit(ctx, 100, 2000, "gw-1")
	require.NoError(t, err)

	cutoff := time.Now().Add(50 * time.Millisecond)
	pot, err := potSvc.CreateSidePot(ctx, service.CreatePotParams{
		CreatorID:    100,
		SideALabel:   "Radiant",
		SideBLabel:   "Dire",
		StakePerSide: 1000,
		FeeBps:       500,
		LockCutoffAt: &cutoff,
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	locked, err := sweepSvc.LockExpiredPots(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []int64{pot.ID}, locked)

	_, err = potSvc.PlaceBet(ctx, pot.ID, 100, models.SideA, 0)
	assert.ErrorIs(t, err, models.ErrPotNotOpen)
}
