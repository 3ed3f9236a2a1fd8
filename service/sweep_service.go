package service

import (
	"context"
	"fmt"
	"time"

	"sidepot/events"
	"sidepot/models"

	log "github.com/sirupsen/logrus"
)

type sweepService struct {
	uowFactory UnitOfWorkFactory
}

// NewSweepService creates a new sweep service
func NewSweepService(uowFactory UnitOfWorkFactory) SweepService {
	return &sweepService{
		uowFactory: uowFactory,
	}
}

// SweepExpiredDisputes finalizes resolved pots whose dispute window elapsed
// without a filed dispute. Finalization is a record-only operation: it takes
// the same pot row lock as manual resolution, re-checks eligibility and the
// settlement fence, and never applies wallet effects. Those happened exactly
// once at resolution time.
func (s *sweepService) SweepExpiredDisputes(ctx context.Context, now time.Time) ([]int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	candidates, err := uow.SidePotRepository().ListNeedingFinalization(ctx, now)
	uow.Rollback()
	if err != nil {
		return nil, fmt.Errorf("failed to list pots needing finalization: %w", err)
	}

	var finalized []int64
	for _, candidate := range candidates {
		ok, err := s.finalizePot(ctx, candidate.ID, now)
		if err != nil {
			log.WithFields(log.Fields{
				"sidePotID": candidate.ID,
				"error":     err,
			}).Error("Failed to finalize pot")
			continue
		}
		if ok {
			finalized = append(finalized, candidate.ID)
		}
	}

	if len(finalized) > 0 {
		log.WithField("count", len(finalized)).Info("Finalized pots past dispute window")
	}

	return finalized, nil
}

// finalizePot finalizes one pot in its own transaction. Returns false when
// the pot no longer qualifies, e.g. a dispute was filed between the listing
// and the row lock.
func (s *sweepService) finalizePot(ctx context.Context, potID int64, now time.Time) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return false, fmt.Errorf("failed to lock pot: %w", err)
	}
	if pot == nil || !pot.NeedsFinalization(now) {
		return false, nil
	}

	if !pot.IsSettled() {
		// A resolved pot always settles in the same transaction as its
		// resolution; a missing fence means the stored state is corrupt.
		// Surfaced to operators, never "fixed" by paying here.
		log.WithField("sidePotID", potID).Error("Resolved pot has no settlement fence, skipping finalization")
		return false, nil
	}

	pot.AutoResolvedAt = &now
	pot.DisputeStatus = models.DisputeStatusResolved

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return false, fmt.Errorf("failed to finalize pot: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// LockExpiredPots transitions open pots past their betting cutoff to locked.
func (s *sweepService) LockExpiredPots(ctx context.Context, now time.Time) ([]int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	candidates, err := uow.SidePotRepository().ListPastLockCutoff(ctx, now)
	uow.Rollback()
	if err != nil {
		return nil, fmt.Errorf("failed to list pots past lock cutoff: %w", err)
	}

	var locked []int64
	for _, candidate := range candidates {
		ok, err := s.lockPot(ctx, candidate.ID, now)
		if err != nil {
			log.WithFields(log.Fields{
				"sidePotID": candidate.ID,
				"error":     err,
			}).Error("Failed to lock expired pot")
			continue
		}
		if ok {
			locked = append(locked, candidate.ID)
		}
	}

	return locked, nil
}

func (s *sweepService) lockPot(ctx context.Context, potID int64, now time.Time) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return false, fmt.Errorf("failed to lock pot: %w", err)
	}
	if pot == nil || !pot.CanLock() {
		return false, nil
	}
	if pot.LockCutoffAt == nil || pot.LockCutoffAt.After(now) {
		return false, nil
	}

	oldStatus := pot.Status
	pot.Status = models.PotStatusLocked

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return false, fmt.Errorf("failed to update pot: %w", err)
	}

	uow.EventBus().Publish(events.PotStateChangeEvent{
		SidePotID: pot.ID,
		OldStatus: oldStatus,
		NewStatus: pot.Status,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}
