package models

import "errors"

// Sentinel errors returned by the ledger and settlement operations. Services
// wrap these with context; callers branch with errors.Is.
var (
	ErrInsufficientFunds       = errors.New("insufficient available credits")
	ErrInsufficientLockedFunds = errors.New("insufficient locked credits")
	ErrPotNotOpen              = errors.New("side pot is not open for bets")
	ErrInvalidState            = errors.New("invalid side pot state for operation")
	ErrAlreadyResolved         = errors.New("side pot already has a resolution")
	ErrAlreadySettled          = errors.New("side pot settlement already executed")
	ErrNoWinningBets           = errors.New("no funded bets on the winning side")
	ErrDisputeWindowExpired    = errors.New("dispute window has expired")
	ErrAlreadyDisputed         = errors.New("side pot already has a dispute")
	ErrNoDispute               = errors.New("side pot has no pending dispute")
	ErrAlreadyStaked           = errors.New("user already has a bet on this pot")
	ErrNotFound                = errors.New("not found")
)
