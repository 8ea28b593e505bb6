package repository

import (
	"context"
	"fmt"

	"travel-crm/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Customer    CustomerRepository
	Package     PackageRepository
	Booking     BookingRepository
	Payment     PaymentRepository
	Interaction InteractionRepository

	db  database.PgxIface
	log *zap.Logger
}

// Transactor runs a unit of work against a transaction-bound Repository.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newWithQuerier(db, log)
	r.db = db
	return r
}

func newWithQuerier(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(q, log),
		Session:     NewSessionRepository(q, log),
		Customer:    NewCustomerRepository(q, log),
		Package:     NewPackageRepository(q, log),
		Booking:     NewBookingRepository(q, log),
		Payment:     NewPaymentRepository(q, log),
		Interaction: NewInteractionRepository(q, log),
		log:         log,
	}
}

// WithinTx executes fn with a Repository bound to a single transaction.
// Commit happens iff fn returns nil; any error rolls everything back.
// Row locks taken inside fn (FindByIDForUpdate and friends) hold until
// commit, which is what serializes capacity reservations and webhook
// status writes.
func (r *Repository) WithinTx(ctx context.Context, fn func(r *Repository) error) error {
	if r.db == nil {
		return fmt.Errorf("repository is already transaction-bound")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newWithQuerier(tx, r.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
