package events

import (
	"context"
	"sync"
	"time"

	"sidepot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypePotStateChange EventType = "pot_state_change"
	EventTypePotResolved    EventType = "pot_resolved"
	EventTypeDisputeFiled   EventType = "dispute_filed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a wallet balance change that occurred
type BalanceChangeEvent struct {
	UserID         int64
	EntryType      models.EntryType
	Amount         int64
	AvailableAfter int64
	LockedAfter    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// BetPlacedEvent represents a stake funded into a side pot
type BetPlacedEvent struct {
	SidePotID int64
	BetID     int64
	UserID    int64
	Side      models.PotSide
	Amount    int64
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// PotStateChangeEvent represents a side pot lifecycle transition
type PotStateChangeEvent struct {
	SidePotID int64
	OldStatus models.PotStatus
	NewStatus models.PotStatus
}

func (e PotStateChangeEvent) Type() EventType {
	return EventTypePotStateChange
}

// PotResolvedEvent represents a settled pot with its payout summary
type PotResolvedEvent struct {
	SidePotID  int64
	WinnerSide models.PotSide
	DecidedBy  int64
	TotalPot   int64
	ServiceFee int64
	Payouts    map[int64]int64 // user id -> gross payout
}

func (e PotResolvedEvent) Type() EventType {
	return EventTypePotResolved
}

// DisputeFiledEvent represents a dispute opened against a resolved pot
type DisputeFiledEvent struct {
	SidePotID int64
	FiledBy   int64
	Reason    string
	Deadline  time.Time
}

func (e DisputeFiledEvent) Type() EventType {
	return EventTypeDisputeFiled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Handlers run asynchronously so emitters never block on them.
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and only
// hands them to the real bus once the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits the stashed events; called after a successful commit. Emission
// uses a background context because the transaction context may already be
// done.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	for _, ev := range b.pending {
		b.real.Emit(context.Background(), ev)
	}
	b.pending = nil
	return nil
}

// Discard drops the stashed events; called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
