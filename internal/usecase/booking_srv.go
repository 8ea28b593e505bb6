package usecase

import (
	"context"
	"time"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/dto/request"
	"travel-crm/internal/dto/response"
	"travel-crm/pkg/apperrors"
	"travel-crm/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) error

	// UpdateBookingStatus is the internal transition used by the
	// webhook processor and administrative confirm/complete actions.
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingService struct {
	repo   *repository.Repository
	tx     repository.Transactor
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, tx repository.Transactor, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		tx:     tx,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", req.CustomerID)
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid package ID format %s", req.PackageID)
	}

	departureDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid departure date %s", req.DepartureDate)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		s.log.Error("Failed to resolve customer", zap.Error(err), zap.String("customer_id", req.CustomerID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create booking", err)
	}
	if customer == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "customer %s not found", req.CustomerID)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:   utils.GenerateBookingCode(s.config.Booking.CodePrefix),
		CustomerID:    customerID,
		PackageID:     packageID,
		Participants:  req.Participants,
		DepartureDate: departureDate,
		Status:        entity.BookingStatusPending,
		Notes:         req.Notes,
	}

	var pkg *entity.TravelPackage

	// The availability check and the insert share one transaction with
	// the package row locked, so two requests for the last slot
	// serialize and the loser fails instead of overselling.
	err = s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		pkg, err = r.Package.FindByIDForUpdate(ctx, packageID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create booking", err)
		}
		if pkg == nil {
			return apperrors.Newf(apperrors.KindNotFound, "travel package %s not found", req.PackageID)
		}
		if !pkg.IsActive {
			return apperrors.New(apperrors.KindInvalidState, "travel package is not active")
		}

		booked, err := r.Booking.SumActiveParticipants(ctx, packageID, uuid.Nil)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create booking", err)
		}

		if pkg.Quota-booked < req.Participants {
			return apperrors.Newf(apperrors.KindInvalidState,
				"not enough slots: %d requested, %d available", req.Participants, pkg.Quota-booked)
		}

		booking.TotalAmount = pkg.Price * float64(req.Participants)

		return r.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("customer_id", req.CustomerID),
		zap.String("package_id", req.PackageID),
		zap.Int("participants", req.Participants),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	return response.BookingToResponse(booking, pkg, nil), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get booking", err)
	}
	if booking == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "booking %s not found", bookingID)
	}

	return s.buildBookingResponse(ctx, booking), nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	custID, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", customerID)
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, custID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customer bookings",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get bookings", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, custID)
	if err != nil {
		s.log.Error("Failed to count customer bookings", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get bookings", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = *s.buildBookingResponse(ctx, booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid booking ID format %s", bookingID)
	}

	var booking *entity.Booking

	err = s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		booking, err = r.Booking.FindByID(ctx, id)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to update booking", err)
		}
		if booking == nil {
			return apperrors.Newf(apperrors.KindNotFound, "booking %s not found", bookingID)
		}
		if !booking.Status.IsMutable() {
			return apperrors.Newf(apperrors.KindInvalidState,
				"cannot modify a %s booking", booking.Status)
		}

		if req.DepartureDate != nil {
			departureDate, err := time.Parse("2006-01-02", *req.DepartureDate)
			if err != nil {
				return apperrors.Newf(apperrors.KindInvalidState, "invalid departure date %s", *req.DepartureDate)
			}
			booking.DepartureDate = departureDate
		}
		if req.Notes != nil {
			booking.Notes = req.Notes
		}

		if req.Participants != nil && *req.Participants != booking.Participants {
			// Lock the package row before re-checking capacity; the
			// sum excludes this booking's own current reservation.
			pkg, err := r.Package.FindByIDForUpdate(ctx, booking.PackageID)
			if err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to update booking", err)
			}
			if pkg == nil {
				return apperrors.Newf(apperrors.KindNotFound, "travel package %s not found", booking.PackageID.String())
			}

			booked, err := r.Booking.SumActiveParticipants(ctx, booking.PackageID, booking.ID)
			if err != nil {
				return apperrors.Wrap(apperrors.KindInternal, "failed to update booking", err)
			}

			if pkg.Quota-booked < *req.Participants {
				return apperrors.Newf(apperrors.KindInvalidState,
					"not enough slots: %d requested, %d available", *req.Participants, pkg.Quota-booked)
			}

			booking.Participants = *req.Participants
			booking.TotalAmount = pkg.Price * float64(*req.Participants)
		}

		booking.UpdatedAt = time.Now()
		return r.Booking.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("booking_code", booking.BookingCode),
		zap.Int("participants", booking.Participants),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	return s.buildBookingResponse(ctx, booking), nil
}

// CancelBooking closes a booking and releases its slots. Paid and
// completed bookings are blocked: refunds stay a manual provider-side
// action and land through the refund notification instead.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperrors.Newf(apperrors.KindInvalidState, "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to resolve booking", zap.Error(err), zap.String("booking_id", bookingID))
		return apperrors.Wrap(apperrors.KindInternal, "failed to cancel booking", err)
	}
	if booking == nil {
		return apperrors.Newf(apperrors.KindNotFound, "booking %s not found", bookingID)
	}

	switch booking.Status {
	case entity.BookingStatusCancelled:
		// Cancelling twice is a no-op.
		return nil
	case entity.BookingStatusPending:
	default:
		return apperrors.Newf(apperrors.KindInvalidState, "cannot cancel a %s booking", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return apperrors.Wrap(apperrors.KindInternal, "failed to cancel booking", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("booking_code", booking.BookingCode),
	)

	return nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update booking status", err)
	}
	if booking == nil {
		return apperrors.Newf(apperrors.KindNotFound, "booking %s not found", bookingID.String())
	}

	if booking.Status == status {
		return nil
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, status); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update booking status", err)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(status)),
	)

	if status.IsPaid() {
		recalcCustomerStatus(ctx, s.repo, s.log, booking.CustomerID)
	}

	return nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) *response.BookingResponse {
	pkg, _ := s.repo.Package.FindByID(ctx, booking.PackageID)

	var paymentResp *response.PaymentResponse
	payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if payment != nil {
		paymentResp = response.PaymentToResponse(payment)
	}

	return response.BookingToResponse(booking, pkg, paymentResp)
}
