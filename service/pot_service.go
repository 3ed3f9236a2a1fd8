package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sidepot/config"
	"sidepot/events"
	"sidepot/models"

	log "github.com/sirupsen/logrus"
)

// CreatePotParams carries the inputs for opening a new side pot.
type CreatePotParams struct {
	CreatorID    int64
	MatchID      *int64
	SideALabel   string
	SideBLabel   string
	StakePerSide int64
	FeeBps       int32 // negative means use the configured default
	LockCutoffAt *time.Time
}

// SettlementResult is the outcome of a resolved pot: the recorded decision
// and the executed payout breakdown.
type SettlementResult struct {
	Pot        *models.SidePot
	Resolution *models.Resolution
	WinnerSide models.PotSide
	TotalPot   int64
	ServiceFee int64
	NetPool    int64
	Winners    []*models.SideBet
	Losers     []*models.SideBet
	Payouts    map[int64]int64 // user id -> gross payout
}

type potService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewPotService creates a new pot service
func NewPotService(uowFactory UnitOfWorkFactory, cfg *config.Config) PotService {
	return &potService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

// CreateSidePot opens a new pot in the open state.
func (s *potService) CreateSidePot(ctx context.Context, params CreatePotParams) (*models.SidePot, error) {
	sideA := strings.TrimSpace(params.SideALabel)
	sideB := strings.TrimSpace(params.SideBLabel)
	if sideA == "" || sideB == "" {
		return nil, fmt.Errorf("both side labels are required")
	}
	if strings.EqualFold(sideA, sideB) {
		return nil, fmt.Errorf("side labels must be distinct")
	}
	if params.StakePerSide <= 0 {
		return nil, fmt.Errorf("stake per side must be positive, got %d", params.StakePerSide)
	}

	feeBps := params.FeeBps
	if feeBps < 0 {
		feeBps = s.config.DefaultFeeBps
	}
	if feeBps < 0 || feeBps > models.MaxFeeBps {
		return nil, fmt.Errorf("fee %d bps outside 0..%d", feeBps, models.MaxFeeBps)
	}

	if params.LockCutoffAt != nil && !params.LockCutoffAt.After(time.Now()) {
		return nil, fmt.Errorf("lock cutoff must be in the future")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot := &models.SidePot{
		MatchID:       params.MatchID,
		CreatorID:     params.CreatorID,
		SideALabel:    sideA,
		SideBLabel:    sideB,
		StakePerSide:  params.StakePerSide,
		FeeBps:        feeBps,
		Status:        models.PotStatusOpen,
		LockCutoffAt:  params.LockCutoffAt,
		DisputeStatus: models.DisputeStatusNone,
	}

	if err := uow.SidePotRepository().Create(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to create side pot: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pot, nil
}

// PlaceBet stakes credits on a side of an open pot, locking the amount in the
// staker's wallet. Amount 0 stakes the pot's default stake per side.
func (s *potService) PlaceBet(ctx context.Context, potID, userID int64, side models.PotSide, amount int64) (*models.SideBet, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("invalid side %q", side)
	}
	if amount < 0 {
		return nil, fmt.Errorf("bet amount must not be negative, got %d", amount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	now := time.Now()
	if !pot.CanAcceptBets(now) {
		return nil, fmt.Errorf("pot %d is %s: %w", potID, pot.Status, models.ErrPotNotOpen)
	}

	if amount == 0 {
		amount = pot.StakePerSide
	}

	existing, err := uow.SideBetRepository().GetByPotAndUser(ctx, potID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bet: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user %d on pot %d: %w", userID, potID, models.ErrAlreadyStaked)
	}

	bet := &models.SideBet{
		SidePotID: potID,
		UserID:    userID,
		Side:      side,
		Amount:    amount,
		Status:    models.BetStatusPending,
	}
	if err := uow.SideBetRepository().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID:  userID,
		Type:    models.EntryTypePotLock,
		Amount:  amount,
		RefID:   &bet.ID,
		RefType: refTypePtr(models.RefTypeSideBet),
		Metadata: map[string]any{
			"side_pot_id": potID,
			"side":        side,
		},
	}); err != nil {
		return nil, err
	}

	if err := uow.SideBetRepository().MarkFunded(ctx, bet.ID, now); err != nil {
		return nil, fmt.Errorf("failed to mark bet funded: %w", err)
	}
	bet.Status = models.BetStatusFunded
	bet.FundedAt = &now

	uow.EventBus().Publish(events.BetPlacedEvent{
		SidePotID: potID,
		BetID:     bet.ID,
		UserID:    userID,
		Side:      side,
		Amount:    amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

// LockPot transitions an open pot to locked; no bets are accepted afterward.
func (s *potService) LockPot(ctx context.Context, potID int64) (*models.SidePot, error) {
	return s.transition(ctx, potID, func(pot *models.SidePot) error {
		if !pot.CanLock() {
			return fmt.Errorf("cannot lock pot in state %s: %w", pot.Status, models.ErrInvalidState)
		}
		pot.Status = models.PotStatusLocked
		return nil
	})
}

// HoldPot places a locked pot under evidence review. The hold deadline is
// advisory: holds are lifted only by an explicit resolve or void.
func (s *potService) HoldPot(ctx context.Context, potID int64, reason string, evidence map[string]any) (*models.SidePot, error) {
	return s.transition(ctx, potID, func(pot *models.SidePot) error {
		if !pot.CanHold() {
			return fmt.Errorf("cannot hold pot in state %s: %w", pot.Status, models.ErrInvalidState)
		}
		deadline := time.Now().Add(models.HoldDeadline)
		pot.Status = models.PotStatusOnHold
		pot.HoldReason = &reason
		pot.HoldDeadlineAt = &deadline
		if len(evidence) > 0 {
			if pot.Evidence == nil {
				pot.Evidence = make(map[string]any, len(evidence))
			}
			for k, v := range evidence {
				pot.Evidence[k] = v
			}
		}
		return nil
	})
}

// transition applies a status mutation under the pot's row lock and emits the
// state change event.
func (s *potService) transition(ctx context.Context, potID int64, mutate func(*models.SidePot) error) (*models.SidePot, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	oldStatus := pot.Status
	if err := mutate(pot); err != nil {
		return nil, err
	}

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update side pot: %w", err)
	}

	if pot.Status != oldStatus {
		uow.EventBus().Publish(events.PotStateChangeEvent{
			SidePotID: pot.ID,
			OldStatus: oldStatus,
			NewStatus: pot.Status,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pot, nil
}

// ResolvePot records the winning side and executes settlement exactly once.
// The settlement fence is check-and-set under the pot's row lock before any
// wallet is touched, so neither a second resolve nor the sweep can ever pay
// again.
func (s *potService) ResolvePot(ctx context.Context, potID int64, winnerSide models.PotSide, decidedBy int64, notes string) (*SettlementResult, error) {
	if !winnerSide.Valid() {
		return nil, fmt.Errorf("invalid winner side %q", winnerSide)
	}
	if !s.IsResolver(decidedBy) {
		return nil, fmt.Errorf("user %d is not authorized to resolve pots", decidedBy)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	if pot.Status == models.PotStatusResolved {
		return nil, fmt.Errorf("pot %d: %w", potID, models.ErrAlreadyResolved)
	}
	if !pot.CanResolve() {
		return nil, fmt.Errorf("cannot resolve pot in state %s: %w", pot.Status, models.ErrInvalidState)
	}

	existing, err := uow.ResolutionRepository().GetByPotID(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing resolution: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("pot %d: %w", potID, models.ErrAlreadyResolved)
	}

	bets, err := uow.SideBetRepository().GetByPot(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}
	funded := fundedBets(bets)

	plan, err := models.ComputeSettlement(funded, winnerSide, pot.FeeBps)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fenced, err := uow.SidePotRepository().SetSettledFence(ctx, potID, now)
	if err != nil {
		return nil, err
	}
	if !fenced {
		log.WithField("sidePotID", potID).Warn("Settlement fence already set, refusing to pay again")
		return nil, fmt.Errorf("pot %d: %w", potID, models.ErrAlreadySettled)
	}

	result := &SettlementResult{
		WinnerSide: winnerSide,
		TotalPot:   plan.TotalPot,
		ServiceFee: plan.ServiceFee,
		NetPool:    plan.NetPool,
		Payouts:    make(map[int64]int64),
	}

	for _, w := range plan.Winners {
		if err := s.settleWinner(ctx, uow, w.Bet, w.Payout); err != nil {
			return nil, err
		}
		result.Winners = append(result.Winners, w.Bet)
		result.Payouts[w.Bet.UserID] = w.Payout
	}
	for _, loser := range plan.Losers {
		if err := s.settleLoser(ctx, uow, loser); err != nil {
			return nil, err
		}
		result.Losers = append(result.Losers, loser)
	}

	resolution := &models.Resolution{
		SidePotID:  potID,
		WinnerSide: winnerSide,
		DecidedBy:  decidedBy,
		DecidedAt:  now,
	}
	if notes != "" {
		resolution.Notes = &notes
	}
	if err := uow.ResolutionRepository().Create(ctx, resolution); err != nil {
		return nil, fmt.Errorf("failed to record resolution: %w", err)
	}

	deadline := now.Add(models.DisputeWindow)
	oldStatus := pot.Status
	pot.Status = models.PotStatusResolved
	pot.WinningSide = &winnerSide
	pot.ResolvedAt = &now
	pot.SettledAt = &now
	pot.FeeAmount = &plan.ServiceFee
	pot.DisputeDeadline = &deadline

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update resolved pot: %w", err)
	}

	uow.EventBus().Publish(events.PotStateChangeEvent{
		SidePotID: pot.ID,
		OldStatus: oldStatus,
		NewStatus: pot.Status,
	})
	uow.EventBus().Publish(events.PotResolvedEvent{
		SidePotID:  pot.ID,
		WinnerSide: winnerSide,
		DecidedBy:  decidedBy,
		TotalPot:   plan.TotalPot,
		ServiceFee: plan.ServiceFee,
		Payouts:    result.Payouts,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"sidePotID":  pot.ID,
		"winnerSide": winnerSide,
		"totalPot":   plan.TotalPot,
		"serviceFee": plan.ServiceFee,
		"winners":    len(result.Winners),
		"losers":     len(result.Losers),
	}).Info("Side pot resolved and settled")

	result.Pot = pot
	result.Resolution = resolution
	return result, nil
}

// settleWinner consumes the winner's escrowed stake and credits the gross
// payout.
func (s *potService) settleWinner(ctx context.Context, uow UnitOfWork, bet *models.SideBet, payout int64) error {
	if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID:  bet.UserID,
		Type:    models.EntryTypePotUnlock,
		Amount:  bet.Amount,
		RefID:   &bet.ID,
		RefType: refTypePtr(models.RefTypeSideBet),
		Metadata: map[string]any{
			"side_pot_id": bet.SidePotID,
		},
	}); err != nil {
		return err
	}

	if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID:  bet.UserID,
		Type:    models.EntryTypePotWin,
		Amount:  payout,
		RefID:   &bet.ID,
		RefType: refTypePtr(models.RefTypeSideBet),
		Metadata: map[string]any{
			"side_pot_id": bet.SidePotID,
			"stake":       bet.Amount,
		},
	}); err != nil {
		return err
	}

	if err := uow.SideBetRepository().UpdateSettlement(ctx, bet.ID, models.BetStatusPaid, &payout); err != nil {
		return err
	}
	bet.Status = models.BetStatusPaid
	bet.PayoutAmount = &payout
	return nil
}

// settleLoser consumes the loser's escrowed stake and records the forfeiture.
func (s *potService) settleLoser(ctx context.Context, uow UnitOfWork, bet *models.SideBet) error {
	if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID:  bet.UserID,
		Type:    models.EntryTypePotUnlock,
		Amount:  bet.Amount,
		RefID:   &bet.ID,
		RefType: refTypePtr(models.RefTypeSideBet),
		Metadata: map[string]any{
			"side_pot_id": bet.SidePotID,
		},
	}); err != nil {
		return err
	}

	if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
		UserID:  bet.UserID,
		Type:    models.EntryTypePotLoss,
		Amount:  bet.Amount,
		RefID:   &bet.ID,
		RefType: refTypePtr(models.RefTypeSideBet),
		Metadata: map[string]any{
			"side_pot_id": bet.SidePotID,
		},
	}); err != nil {
		return err
	}

	zero := int64(0)
	if err := uow.SideBetRepository().UpdateSettlement(ctx, bet.ID, models.BetStatusLost, &zero); err != nil {
		return err
	}
	bet.Status = models.BetStatusLost
	bet.PayoutAmount = &zero
	return nil
}

// VoidPot refunds every staker in full. No fee is charged; the same
// settlement fence that guards resolution guards the refund run.
func (s *potService) VoidPot(ctx context.Context, potID int64, reason string) (*models.SidePot, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	if !pot.CanVoid() {
		return nil, fmt.Errorf("cannot void pot in state %s: %w", pot.Status, models.ErrInvalidState)
	}

	now := time.Now()
	fenced, err := uow.SidePotRepository().SetSettledFence(ctx, potID, now)
	if err != nil {
		return nil, err
	}
	if !fenced {
		return nil, fmt.Errorf("pot %d: %w", potID, models.ErrAlreadySettled)
	}

	bets, err := uow.SideBetRepository().GetByPot(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	for _, bet := range fundedBets(bets) {
		if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
			UserID:  bet.UserID,
			Type:    models.EntryTypePotVoidRefund,
			Amount:  bet.Amount,
			RefID:   &bet.ID,
			RefType: refTypePtr(models.RefTypeSideBet),
			Metadata: map[string]any{
				"side_pot_id": potID,
				"reason":      reason,
			},
		}); err != nil {
			return nil, err
		}

		if err := uow.SideBetRepository().UpdateSettlement(ctx, bet.ID, models.BetStatusRefunded, nil); err != nil {
			return nil, err
		}
		bet.Status = models.BetStatusRefunded
	}

	oldStatus := pot.Status
	pot.Status = models.PotStatusVoided
	pot.VoidReason = &reason
	pot.SettledAt = &now

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update voided pot: %w", err)
	}

	uow.EventBus().Publish(events.PotStateChangeEvent{
		SidePotID: pot.ID,
		OldStatus: oldStatus,
		NewStatus: pot.Status,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"sidePotID": pot.ID,
		"reason":    reason,
	}).Info("Side pot voided with full refunds")

	return pot, nil
}

// FileDispute opens a dispute against a resolved pot. Filing never reverses
// payouts already made; it only blocks the auto-resolve sweep from
// finalizing the pot.
func (s *potService) FileDispute(ctx context.Context, potID, filer int64, reason string) (*models.SidePot, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	if pot.Status != models.PotStatusResolved {
		return nil, fmt.Errorf("cannot dispute pot in state %s: %w", pot.Status, models.ErrInvalidState)
	}
	now := time.Now()
	if !pot.InDisputeWindow(now) {
		return nil, fmt.Errorf("pot %d deadline %s: %w", potID, pot.DisputeDeadline, models.ErrDisputeWindowExpired)
	}
	if pot.DisputeStatus != models.DisputeStatusNone {
		return nil, fmt.Errorf("pot %d: %w", potID, models.ErrAlreadyDisputed)
	}

	pot.DisputeStatus = models.DisputeStatusPending
	pot.DisputeFiledBy = &filer
	pot.DisputeFiledAt = &now
	pot.DisputeReason = &reason

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update disputed pot: %w", err)
	}

	uow.EventBus().Publish(events.DisputeFiledEvent{
		SidePotID: pot.ID,
		FiledBy:   filer,
		Reason:    reason,
		Deadline:  *pot.DisputeDeadline,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pot, nil
}

// ResolveDispute closes a pending dispute. Overturning never claws back the
// payouts made at resolution; instead the side that originally lost is made
// whole with a compensating credit of each forfeited stake.
func (s *potService) ResolveDispute(ctx context.Context, potID, resolverID int64, overturn bool, notes string) (*models.SidePot, error) {
	if !s.IsResolver(resolverID) {
		return nil, fmt.Errorf("user %d is not authorized to resolve disputes", resolverID)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByIDForUpdate(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	if pot.DisputeStatus != models.DisputeStatusPending {
		return nil, fmt.Errorf("pot %d: %w", potID, models.ErrNoDispute)
	}

	if overturn && pot.WinningSide != nil {
		bets, err := uow.SideBetRepository().GetByPot(ctx, potID)
		if err != nil {
			return nil, fmt.Errorf("failed to get bets: %w", err)
		}
		overturnedSide := pot.WinningSide.Opposite()
		for _, bet := range bets {
			if bet.Status != models.BetStatusLost || bet.Side != overturnedSide {
				continue
			}
			if _, err := applyLedgerEvent(ctx, uow, &models.LedgerEntry{
				UserID:  bet.UserID,
				Type:    models.EntryTypePotReleaseWin,
				Amount:  bet.Amount,
				RefID:   &bet.ID,
				RefType: refTypePtr(models.RefTypeSideBet),
				Metadata: map[string]any{
					"side_pot_id": potID,
					"resolver_id": resolverID,
					"notes":       notes,
				},
			}); err != nil {
				return nil, err
			}
		}
	}

	pot.DisputeStatus = models.DisputeStatusResolved
	if pot.Evidence == nil {
		pot.Evidence = make(map[string]any)
	}
	pot.Evidence["dispute_overturned"] = overturn
	if notes != "" {
		pot.Evidence["dispute_notes"] = notes
	}

	if err := uow.SidePotRepository().Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update disputed pot: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"sidePotID": pot.ID,
		"overturn":  overturn,
		"resolver":  resolverID,
	}).Info("Dispute resolved")

	return pot, nil
}

// GetPotDetail returns a pot with its bets.
func (s *potService) GetPotDetail(ctx context.Context, potID int64) (*models.PotDetail, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pot, err := uow.SidePotRepository().GetByID(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get side pot: %w", err)
	}
	if pot == nil {
		return nil, fmt.Errorf("side pot %d: %w", potID, models.ErrNotFound)
	}

	bets, err := uow.SideBetRepository().GetByPot(ctx, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	return &models.PotDetail{Pot: pot, Bets: bets}, nil
}

// IsResolver checks whether a user may resolve pots and disputes.
func (s *potService) IsResolver(userID int64) bool {
	for _, resolverID := range s.config.ResolverIDs {
		if userID == resolverID {
			return true
		}
	}
	return false
}

func fundedBets(bets []*models.SideBet) []*models.SideBet {
	var funded []*models.SideBet
	for _, bet := range bets {
		if bet.IsFunded() {
			funded = append(funded, bet)
		}
	}
	return funded
}
