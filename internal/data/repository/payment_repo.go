package repository

import (
	"context"
	"fmt"

	"travel-crm/internal/data/entity"
	"travel-crm/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindPendingByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	// FindByOrderIDForUpdate locks the payment row for the rest of the
	// transaction so concurrent webhook deliveries for the same order
	// serialize. Only meaningful on a transaction-bound repository.
	FindByOrderIDForUpdate(ctx context.Context, orderID string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, order_id, token, redirect_url, amount, status, payment_type, paid_at, expired_at, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.OrderID,
		&payment.Token,
		&payment.RedirectURL,
		&payment.Amount,
		&payment.Status,
		&payment.PaymentType,
		&payment.PaidAt,
		&payment.ExpiredAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, order_id, token, redirect_url, amount, status, payment_type, paid_at, expired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.OrderID,
		payment.Token,
		payment.RedirectURL,
		payment.Amount,
		payment.Status,
		payment.PaymentType,
		payment.PaidAt,
		payment.ExpiredAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("order_id", payment.OrderID),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindPendingByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find pending payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, orderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by order ID",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find payment by order ID %s: %w", orderID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByOrderIDForUpdate(ctx context.Context, orderID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1 FOR UPDATE`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, orderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock payment row",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("lock payment %s: %w", orderID, err)
	}

	return payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET token = $2, redirect_url = $3, amount = $4, status = $5,
		    payment_type = $6, paid_at = $7, expired_at = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.Token,
		payment.RedirectURL,
		payment.Amount,
		payment.Status,
		payment.PaymentType,
		payment.PaidAt,
		payment.ExpiredAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", payment.ID.String())
	}

	return nil
}
