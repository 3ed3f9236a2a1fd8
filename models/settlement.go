package models

import (
	"fmt"
)

// MaxFeeBps is the upper bound of the basis-point fee range.
const MaxFeeBps = 10000

// BetPayout pairs a bet with its computed gross payout.
type BetPayout struct {
	Bet    *SideBet
	Payout int64
}

// SettlementPlan is the full, side-effect-free result of settling a pot:
// which bets win or lose, what each winner is paid, and where every credit of
// the pot goes. ServiceFee includes any floor-division remainder, so
// ServiceFee + sum of payouts always equals TotalPot exactly.
type SettlementPlan struct {
	WinnerSide       PotSide
	TotalPot         int64
	ServiceFee       int64
	NetPool          int64
	TotalWinnerStake int64
	Winners          []BetPayout
	Losers           []*SideBet
}

// TotalPaidOut sums the winner payouts in the plan.
func (p *SettlementPlan) TotalPaidOut() int64 {
	var total int64
	for _, w := range p.Winners {
		total += w.Payout
	}
	return total
}

// ComputeSettlement calculates the fee and pro-rata payouts for a resolved
// pot. All arithmetic is integer with explicit floor semantics; amounts are
// minor units and never touch floating point. A winning side with no funded
// bets is rejected with ErrNoWinningBets: such a pot must be voided, not
// resolved.
func ComputeSettlement(bets []*SideBet, winnerSide PotSide, feeBps int32) (*SettlementPlan, error) {
	if !winnerSide.Valid() {
		return nil, fmt.Errorf("invalid winner side %q", winnerSide)
	}
	if feeBps < 0 || feeBps > MaxFeeBps {
		return nil, fmt.Errorf("fee %d bps outside 0..%d", feeBps, MaxFeeBps)
	}

	plan := &SettlementPlan{WinnerSide: winnerSide}
	for _, bet := range bets {
		if !bet.IsFunded() {
			return nil, fmt.Errorf("bet %d is %s, expected funded", bet.ID, bet.Status)
		}
		if bet.Amount <= 0 {
			return nil, fmt.Errorf("bet %d has non-positive amount %d", bet.ID, bet.Amount)
		}
		plan.TotalPot += bet.Amount
		if bet.Side == winnerSide {
			plan.TotalWinnerStake += bet.Amount
		}
	}

	if plan.TotalWinnerStake == 0 {
		return nil, ErrNoWinningBets
	}

	plan.ServiceFee = plan.TotalPot * int64(feeBps) / MaxFeeBps
	plan.NetPool = plan.TotalPot - plan.ServiceFee

	for _, bet := range bets {
		if bet.Side != winnerSide {
			plan.Losers = append(plan.Losers, bet)
			continue
		}
		payout := plan.NetPool * bet.Amount / plan.TotalWinnerStake
		plan.Winners = append(plan.Winners, BetPayout{Bet: bet, Payout: payout})
	}

	// Integer division never pays out the remainder; it stays with the fee so
	// every credit of the pot is accounted for.
	plan.ServiceFee = plan.TotalPot - plan.TotalPaidOut()

	return plan, nil
}
