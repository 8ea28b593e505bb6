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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByBookingCode(ctx context.Context, code string) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// SumActiveParticipants totals participants across the package's
	// slot-holding bookings (pending, paid, confirmed). Pass a booking
	// ID in exclude to leave that booking out of the sum; uuid.Nil
	// excludes nothing.
	SumActiveParticipants(ctx context.Context, packageID, exclude uuid.UUID) (int, error)

	// CountPaidByCustomer counts the customer's bookings in a paid
	// state (paid, confirmed, completed) for tier derivation.
	CountPaidByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_code, customer_id, package_id, participants, total_amount, departure_date, status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.CustomerID,
		&booking.PackageID,
		&booking.Participants,
		&booking.TotalAmount,
		&booking.DepartureDate,
		&booking.Status,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_code, customer_id, package_id, participants, total_amount, departure_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingCode,
		booking.CustomerID,
		booking.PackageID,
		booking.Participants,
		booking.TotalAmount,
		booking.DepartureDate,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByBookingCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count bookings by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET participants = $2, total_amount = $3, departure_date = $4,
		    status = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Participants,
		booking.TotalAmount,
		booking.DepartureDate,
		booking.Status,
		booking.Notes,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) SumActiveParticipants(ctx context.Context, packageID, exclude uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(participants), 0)
		FROM bookings
		WHERE package_id = $1
		  AND id <> $2
		  AND status = ANY($3)
	`

	statuses := make([]string, len(entity.SlotHoldingStatuses))
	for i, s := range entity.SlotHoldingStatuses {
		statuses[i] = string(s)
	}

	var total int
	if err := r.db.QueryRow(ctx, query, packageID, exclude, statuses).Scan(&total); err != nil {
		r.log.Error("Failed to sum active participants",
			zap.Error(err),
			zap.String("package_id", packageID.String()),
		)
		return 0, fmt.Errorf("sum active participants for package %s: %w", packageID.String(), err)
	}

	return total, nil
}

func (r *bookingRepository) CountPaidByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE customer_id = $1
		  AND status IN ('paid', 'confirmed', 'completed')
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count paid bookings",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count paid bookings for customer %s: %w", customerID.String(), err)
	}

	return count, nil
}
