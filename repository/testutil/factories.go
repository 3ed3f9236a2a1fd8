package testutil

import (
	"time"

	"sidepot/models"
)

// CreateTestPot returns an open pot with sensible defaults
func CreateTestPot(creatorID int64) *models.SidePot {
	return &models.SidePot{
		CreatorID:     creatorID,
		SideALabel:    "Radiant",
		SideBLabel:    "Dire",
		StakePerSide:  1000,
		FeeBps:        500,
		Status:        models.PotStatusOpen,
		DisputeStatus: models.DisputeStatusNone,
	}
}

// CreateTestPotWithCutoff returns an open pot with a betting cutoff
func CreateTestPotWithCutoff(creatorID int64, cutoff time.Time) *models.SidePot {
	pot := CreateTestPot(creatorID)
	pot.LockCutoffAt = &cutoff
	return pot
}

// CreateTestBet returns a pending bet on a pot
func CreateTestBet(potID, userID int64, side models.PotSide, amount int64) *models.SideBet {
	return &models.SideBet{
		SidePotID: potID,
		UserID:    userID,
		Side:      side,
		Amount:    amount,
		Status:    models.BetStatusPending,
	}
}

// CreateTestLedgerEntry returns a deposit entry leaving the given balance
func CreateTestLedgerEntry(userID, amount int64) *models.LedgerEntry {
	return &models.LedgerEntry{
		UserID:         userID,
		Type:           models.EntryTypeDeposit,
		Amount:         amount,
		AvailableDelta: amount,
		LockedDelta:    0,
		AvailableAfter: amount,
		LockedAfter:    0,
		Metadata: map[string]any{
			"test": true,
		},
	}
}
