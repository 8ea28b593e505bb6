package usecase

import (
	"context"
	"time"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/dto/request"
	"travel-crm/internal/dto/response"
	"travel-crm/internal/gateway"
	"travel-crm/pkg/apperrors"
	"travel-crm/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	// InitiatePayment creates a hosted-checkout transaction for a
	// pending booking. Re-invoking while a pending payment exists
	// returns the existing token instead of creating a duplicate.
	InitiatePayment(ctx context.Context, bookingID string) (*response.PaymentResponse, error)

	// ProcessNotification applies a provider webhook: verify the
	// signature, map provider states to payment/booking statuses,
	// persist the transition exactly once.
	ProcessNotification(ctx context.Context, req *request.PaymentNotificationRequest) (*response.PaymentNotificationResponse, error)

	// GetTransactionStatus polls the provider and applies the same
	// transition the webhook would, as a fallback for missed
	// notifications.
	GetTransactionStatus(ctx context.Context, orderID string) (*response.TransactionStatusResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	tx     repository.Transactor
	gw     gateway.PaymentGateway
	config *utils.Config
	log    *zap.Logger
}

func NewPaymentService(repo *repository.Repository, tx repository.Transactor, gw gateway.PaymentGateway, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:   repo,
		tx:     tx,
		gw:     gw,
		config: config,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, bookingID string) (*response.PaymentResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to resolve booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to initiate payment", err)
	}
	if booking == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "booking %s not found", bookingID)
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, apperrors.New(apperrors.KindInvalidState, "payment can only be initiated for pending bookings")
	}

	// Idempotent re-initiation: hand back the open checkout session.
	existing, err := s.repo.Payment.FindPendingByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Error("Failed to check existing payment", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to initiate payment", err)
	}
	if existing != nil {
		s.log.Info("Returning existing pending payment",
			zap.String("booking_id", bookingID),
			zap.String("order_id", existing.OrderID),
		)
		return response.PaymentToResponse(existing), nil
	}

	customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err != nil || customer == nil {
		s.log.Error("Failed to resolve booking customer", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperrors.New(apperrors.KindInternal, "failed to initiate payment")
	}

	pkg, err := s.repo.Package.FindByID(ctx, booking.PackageID)
	if err != nil || pkg == nil {
		s.log.Error("Failed to resolve booking package", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, apperrors.New(apperrors.KindInternal, "failed to initiate payment")
	}

	orderID := utils.GenerateOrderID(booking.BookingCode)

	phone := ""
	if customer.Phone != nil {
		phone = *customer.Phone
	}

	txReq := &gateway.TransactionRequest{
		TransactionDetails: gateway.TransactionDetails{
			OrderID:     orderID,
			GrossAmount: booking.TotalAmount,
		},
		CustomerDetails: gateway.CustomerDetails{
			FirstName: customer.FullName,
			Email:     customer.Email,
			Phone:     phone,
		},
		ItemDetails: []gateway.ItemDetails{
			{
				ID:       pkg.ID.String(),
				Name:     pkg.Name,
				Price:    pkg.Price,
				Quantity: booking.Participants,
				Category: "travel-package",
			},
		},
		Expiry: gateway.Expiry{
			Unit:     "hours",
			Duration: s.config.Gateway.ExpiryHours,
		},
		Callbacks: gateway.Callbacks{
			Finish:  s.config.Gateway.FinishURL,
			Error:   s.config.Gateway.ErrorURL,
			Pending: s.config.Gateway.PendingURL,
		},
	}

	txResp, err := s.gw.CreateTransaction(ctx, txReq)
	if err != nil {
		s.log.Error("Provider transaction create failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("order_id", orderID),
		)
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create payment transaction", err)
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:   booking.ID,
		OrderID:     orderID,
		Token:       txResp.Token,
		RedirectURL: txResp.RedirectURL,
		Amount:      booking.TotalAmount,
		Status:      entity.PaymentStatusPending,
		ExpiredAt:   now.Add(time.Duration(s.config.Gateway.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to persist payment",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("order_id", orderID),
		)
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to initiate payment", err)
	}

	s.log.Info("Payment initiated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", bookingID),
		zap.String("order_id", orderID),
		zap.Float64("amount", payment.Amount),
		zap.Time("expired_at", payment.ExpiredAt),
	)

	return response.PaymentToResponse(payment), nil
}

func (s *paymentService) ProcessNotification(ctx context.Context, req *request.PaymentNotificationRequest) (*response.PaymentNotificationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Notification validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !gateway.VerifySignature(req.OrderID, req.StatusCode, req.GrossAmount, s.config.Gateway.ServerKey, req.SignatureKey) {
		s.log.Warn("Notification signature mismatch", zap.String("order_id", req.OrderID))
		return nil, apperrors.New(apperrors.KindForbidden, "invalid signature")
	}

	paymentStatus, bookingStatus, err := mapProviderStatus(req.TransactionStatus, req.FraudStatus)
	if err != nil {
		return nil, err
	}

	var result *response.PaymentNotificationResponse

	err = s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		// The row lock serializes concurrent deliveries for this order.
		payment, err := r.Payment.FindByOrderIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to process notification", err)
		}
		if payment == nil {
			return apperrors.Newf(apperrors.KindNotFound, "payment not found for order %s", req.OrderID)
		}

		applied, err := s.applyTransition(ctx, r, payment, paymentStatus, bookingStatus, req.PaymentType)
		if err != nil {
			return err
		}

		if applied {
			s.log.Info("Notification applied",
				zap.String("order_id", req.OrderID),
				zap.String("transaction_status", req.TransactionStatus),
				zap.String("payment_status", string(payment.Status)),
			)
		} else {
			s.log.Info("Notification redelivery ignored",
				zap.String("order_id", req.OrderID),
				zap.String("transaction_status", req.TransactionStatus),
			)
		}

		result = &response.PaymentNotificationResponse{
			PaymentID: payment.ID.String(),
			Status:    payment.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *paymentService) GetTransactionStatus(ctx context.Context, orderID string) (*response.TransactionStatusResponse, error) {
	payment, err := s.repo.Payment.FindByOrderID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to resolve payment", zap.Error(err), zap.String("order_id", orderID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get transaction status", err)
	}
	if payment == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "payment not found for order %s", orderID)
	}

	statusResp, err := s.gw.TransactionStatus(ctx, orderID)
	if err != nil {
		s.log.Error("Provider status call failed", zap.Error(err), zap.String("order_id", orderID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get transaction status", err)
	}

	paymentStatus, bookingStatus, err := mapProviderStatus(statusResp.TransactionStatus, statusResp.FraudStatus)
	if err != nil {
		return nil, err
	}

	var result *response.TransactionStatusResponse

	err = s.tx.WithinTx(ctx, func(r *repository.Repository) error {
		payment, err := r.Payment.FindByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to get transaction status", err)
		}
		if payment == nil {
			return apperrors.Newf(apperrors.KindNotFound, "payment not found for order %s", orderID)
		}

		if _, err := s.applyTransition(ctx, r, payment, paymentStatus, bookingStatus, statusResp.PaymentType); err != nil {
			return err
		}

		booking, err := r.Booking.FindByID(ctx, payment.BookingID)
		if err != nil || booking == nil {
			return apperrors.New(apperrors.KindInternal, "failed to get transaction status")
		}

		result = &response.TransactionStatusResponse{
			OrderID:           orderID,
			TransactionStatus: statusResp.TransactionStatus,
			PaymentStatus:     payment.Status,
			BookingStatus:     booking.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// applyTransition moves payment (and, when mapped, its booking) to the
// given statuses. Reapplying an already-stored state is a no-op, and a
// terminal payment status never regresses to pending. Returns whether
// anything changed. Must run on a transaction-bound repository.
func (s *paymentService) applyTransition(ctx context.Context, r *repository.Repository, payment *entity.Payment, paymentStatus entity.PaymentStatus, bookingStatus entity.BookingStatus, paymentType string) (bool, error) {
	if payment.Status.IsTerminal() && paymentStatus == entity.PaymentStatusPending {
		return false, nil
	}

	changed := false

	if payment.Status != paymentStatus {
		payment.Status = paymentStatus
		if paymentType != "" {
			payment.PaymentType = &paymentType
		}
		if paymentStatus == entity.PaymentStatusSuccess {
			now := time.Now()
			payment.PaidAt = &now
		} else {
			payment.PaidAt = nil
		}
		payment.UpdatedAt = time.Now()

		if err := r.Payment.Update(ctx, payment); err != nil {
			return false, apperrors.Wrap(apperrors.KindInternal, "failed to update payment", err)
		}
		changed = true
	}

	if bookingStatus == "" {
		return changed, nil
	}

	booking, err := r.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return changed, apperrors.Wrap(apperrors.KindInternal, "failed to update booking status", err)
	}
	if booking == nil {
		return changed, apperrors.Newf(apperrors.KindNotFound, "booking %s not found", payment.BookingID.String())
	}

	if booking.Status == bookingStatus {
		return changed, nil
	}

	if err := r.Booking.UpdateStatus(ctx, booking.ID, bookingStatus); err != nil {
		return changed, apperrors.Wrap(apperrors.KindInternal, "failed to update booking status", err)
	}
	changed = true

	if bookingStatus.IsPaid() {
		recalcCustomerStatus(ctx, r, s.log, booking.CustomerID)
	}

	return changed, nil
}

// mapProviderStatus translates provider transaction_status (plus
// fraud_status for card captures) to internal statuses. An empty
// booking status means the booking stays as-is.
func mapProviderStatus(transactionStatus, fraudStatus string) (entity.PaymentStatus, entity.BookingStatus, error) {
	switch transactionStatus {
	case "capture":
		switch fraudStatus {
		case "accept", "":
			return entity.PaymentStatusSuccess, entity.BookingStatusPaid, nil
		case "challenge":
			return entity.PaymentStatusPending, "", nil
		default:
			return "", "", apperrors.Newf(apperrors.KindInvalidState, "unrecognized fraud status %s", fraudStatus)
		}
	case "settlement":
		return entity.PaymentStatusSuccess, entity.BookingStatusPaid, nil
	case "pending":
		return entity.PaymentStatusPending, "", nil
	case "deny", "cancel":
		return entity.PaymentStatusFailed, entity.BookingStatusCancelled, nil
	case "expire":
		return entity.PaymentStatusExpired, entity.BookingStatusCancelled, nil
	case "refund":
		return entity.PaymentStatusRefund, "", nil
	default:
		return "", "", apperrors.Newf(apperrors.KindInvalidState, "unrecognized transaction status %s", transactionStatus)
	}
}
