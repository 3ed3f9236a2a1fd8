package repository

import (
	"context"
	"fmt"

	"sidepot/database"
	"sidepot/events"
	"sidepot/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	walletRepo       service.WalletRepository
	ledgerRepo       service.LedgerRepository
	sidePotRepo      service.SidePotRepository
	sideBetRepo      service.SideBetRepository
	resolutionRepo   service.ResolutionRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.walletRepo = newWalletRepositoryWithTx(tx)
	u.ledgerRepo = newLedgerRepositoryWithTx(tx)
	u.sidePotRepo = newSidePotRepositoryWithTx(tx)
	u.sideBetRepo = newSideBetRepositoryWithTx(tx)
	u.resolutionRepo = newResolutionRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// WalletRepository returns the wallet repository for this unit of work
func (u *unitOfWork) WalletRepository() service.WalletRepository {
	if u.walletRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.walletRepo
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// SidePotRepository returns the side pot repository for this unit of work
func (u *unitOfWork) SidePotRepository() service.SidePotRepository {
	if u.sidePotRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sidePotRepo
}

// SideBetRepository returns the side bet repository for this unit of work
func (u *unitOfWork) SideBetRepository() service.SideBetRepository {
	if u.sideBetRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sideBetRepo
}

// ResolutionRepository returns the resolution repository for this unit of work
func (u *unitOfWork) ResolutionRepository() service.ResolutionRepository {
	if u.resolutionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.resolutionRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
