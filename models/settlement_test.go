package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fundedBet(id, userID int64, side PotSide, amount int64) *SideBet {
	return &SideBet{
		ID:        id,
		SidePotID: 1,
		UserID:    userID,
		Side:      side,
		Amount:    amount,
		Status:    BetStatusFunded,
	}
}

func TestComputeSettlement(t *testing.T) {
	t.Run("even two-sided pot with fee", func(t *testing.T) {
		// 1000 per side, 850 bps fee: fee 170, single winner takes 1830
		bets := []*SideBet{
			fundedBet(1, 100, SideA, 1000),
			fundedBet(2, 200, SideB, 1000),
		}

		plan, err := ComputeSettlement(bets, SideA, 850)
		require.NoError(t, err)

		assert.Equal(t, int64(2000), plan.TotalPot)
		assert.Equal(t, int64(170), plan.ServiceFee)
		assert.Equal(t, int64(1830), plan.NetPool)
		require.Len(t, plan.Winners, 1)
		assert.Equal(t, int64(1830), plan.Winners[0].Payout)
		require.Len(t, plan.Losers, 1)
		assert.Equal(t, int64(200), plan.Losers[0].UserID)
	})

	t.Run("pro rata split among winners", func(t *testing.T) {
		// Winners staked 300/300/400 against 1000, 500 bps fee.
		// Total 2000, fee 100, net 1900: payouts 570/570/760.
		bets := []*SideBet{
			fundedBet(1, 100, SideA, 300),
			fundedBet(2, 200, SideA, 300),
			fundedBet(3, 300, SideA, 400),
			fundedBet(4, 400, SideB, 1000),
		}

		plan, err := ComputeSettlement(bets, SideA, 500)
		require.NoError(t, err)

		assert.Equal(t, int64(2000), plan.TotalPot)
		assert.Equal(t, int64(100), plan.ServiceFee)
		assert.Equal(t, int64(1000), plan.TotalWinnerStake)
		require.Len(t, plan.Winners, 3)
		assert.Equal(t, int64(570), plan.Winners[0].Payout)
		assert.Equal(t, int64(570), plan.Winners[1].Payout)
		assert.Equal(t, int64(760), plan.Winners[2].Payout)
	})

	t.Run("floor remainder stays with the fee", func(t *testing.T) {
		// Net 997 split across three equal winners floors to 332 each;
		// the 1-credit remainder lands in the fee, never minted or lost.
		bets := []*SideBet{
			fundedBet(1, 100, SideA, 100),
			fundedBet(2, 200, SideA, 100),
			fundedBet(3, 300, SideA, 100),
			fundedBet(4, 400, SideB, 700),
		}

		plan, err := ComputeSettlement(bets, SideA, 30)
		require.NoError(t, err)

		assert.Equal(t, int64(1000), plan.TotalPot)
		for _, w := range plan.Winners {
			assert.Equal(t, int64(332), w.Payout)
		}
		assert.Equal(t, plan.TotalPot, plan.TotalPaidOut()+plan.ServiceFee)
	})

	t.Run("zero fee pays out the whole pot", func(t *testing.T) {
		bets := []*SideBet{
			fundedBet(1, 100, SideA, 500),
			fundedBet(2, 200, SideB, 500),
		}

		plan, err := ComputeSettlement(bets, SideB, 0)
		require.NoError(t, err)

		assert.Equal(t, int64(0), plan.ServiceFee)
		require.Len(t, plan.Winners, 1)
		assert.Equal(t, int64(1000), plan.Winners[0].Payout)
	})

	t.Run("no winning bets", func(t *testing.T) {
		bets := []*SideBet{
			fundedBet(1, 100, SideB, 500),
		}

		_, err := ComputeSettlement(bets, SideA, 500)
		assert.ErrorIs(t, err, ErrNoWinningBets)
	})

	t.Run("unfunded bet rejected", func(t *testing.T) {
		pending := fundedBet(1, 100, SideA, 500)
		pending.Status = BetStatusPending

		_, err := ComputeSettlement([]*SideBet{pending}, SideA, 0)
		assert.Error(t, err)
	})

	t.Run("invalid winner side", func(t *testing.T) {
		_, err := ComputeSettlement(nil, PotSide("C"), 0)
		assert.Error(t, err)
	})

	t.Run("fee out of range", func(t *testing.T) {
		_, err := ComputeSettlement(nil, SideA, 10001)
		assert.Error(t, err)
	})

	t.Run("conservation holds across uneven stakes", func(t *testing.T) {
		bets := []*SideBet{
			fundedBet(1, 100, SideA, 137),
			fundedBet(2, 200, SideA, 6211),
			fundedBet(3, 300, SideA, 49),
			fundedBet(4, 400, SideB, 3001),
			fundedBet(5, 500, SideB, 17),
		}

		plan, err := ComputeSettlement(bets, SideA, 777)
		require.NoError(t, err)
		assert.Equal(t, plan.TotalPot, plan.TotalPaidOut()+plan.ServiceFee)
	})
}

func TestEntryTypeDeltas(t *testing.T) {
	tests := []struct {
		entryType     EntryType
		amount        int64
		wantAvailable int64
		wantLocked    int64
	}{
		{EntryTypeDeposit, 100, 100, 0},
		{EntryTypeWithdrawal, 100, -100, 0},
		{EntryTypePotLock, 100, -100, 100},
		{EntryTypePotUnlock, 100, 0, -100},
		{EntryTypePotWin, 100, 100, 0},
		{EntryTypePotLoss, 100, 0, 0},
		{EntryTypePotVoidRefund, 100, 100, -100},
		{EntryTypePotReleaseWin, 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.entryType), func(t *testing.T) {
			availableDelta, lockedDelta, err := tt.entryType.Deltas(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, availableDelta)
			assert.Equal(t, tt.wantLocked, lockedDelta)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := EntryType("mystery").Deltas(100)
		assert.Error(t, err)
	})
}
