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

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *request.CreateCustomerRequest) (*response.CustomerResponse, error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	GetAllCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)

	// RecalculateStatus re-derives the tier from the paid-booking
	// count, for backfills after manual data fixes.
	RecalculateStatus(ctx context.Context, customerID string) (*response.CustomerResponse, error)
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CreateCustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Customer validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check customer email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create customer", err)
	}
	if existing != nil {
		return nil, apperrors.Newf(apperrors.KindConflict, "customer with email %s already exists", req.Email)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create customer", err)
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Address:      req.Address,
		Status:       entity.CustomerStatusProspect,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create customer", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email),
	)

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", customerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get customer", err)
	}
	if customer == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "customer %s not found", customerID)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) GetAllCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	customers, err := s.repo.Customer.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list customers", err)
	}

	total, err := s.repo.Customer.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list customers", err)
	}

	items := make([]response.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		items = append(items, response.CustomerToResponse(customer))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Customer validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", customerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update customer", err)
	}
	if customer == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "customer %s not found", customerID)
	}

	if req.Email != nil && *req.Email != customer.Email {
		existing, err := s.repo.Customer.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update customer", err)
		}
		if existing != nil {
			return nil, apperrors.Newf(apperrors.KindConflict, "customer with email %s already exists", *req.Email)
		}
		customer.Email = *req.Email
	}
	if req.FullName != nil {
		customer.FullName = *req.FullName
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update customer", err)
	}

	s.log.Info("Customer updated", zap.String("customer_id", customerID))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) RecalculateStatus(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", customerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to recalculate customer status", err)
	}
	if customer == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "customer %s not found", customerID)
	}

	paid, err := s.repo.Booking.CountPaidByCustomer(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to recalculate customer status", err)
	}

	status := entity.DeriveCustomerStatus(paid)
	if status != customer.Status {
		if err := s.repo.Customer.UpdateStatus(ctx, id, status); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to recalculate customer status", err)
		}
		s.log.Info("Customer status recalculated",
			zap.String("customer_id", customerID),
			zap.String("from", string(customer.Status)),
			zap.String("to", string(status)),
			zap.Int64("paid_bookings", paid),
		)
		customer.Status = status
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

// recalcCustomerStatus re-derives the customer tier after a booking
// reaches (or loses) a paid state. Failures are logged, not returned:
// the payment or booking transition that triggered the recalc must not
// roll back over a tier update.
func recalcCustomerStatus(ctx context.Context, r *repository.Repository, log *zap.Logger, customerID uuid.UUID) {
	paid, err := r.Booking.CountPaidByCustomer(ctx, customerID)
	if err != nil {
		log.Error("Failed to count paid bookings",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return
	}

	customer, err := r.Customer.FindByID(ctx, customerID)
	if err != nil || customer == nil {
		log.Error("Failed to resolve customer for tier recalc",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return
	}

	status := entity.DeriveCustomerStatus(paid)
	if status == customer.Status {
		return
	}

	if err := r.Customer.UpdateStatus(ctx, customerID, status); err != nil {
		log.Error("Failed to update customer tier",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("status", string(status)),
		)
		return
	}

	log.Info("Customer tier updated",
		zap.String("customer_id", customerID.String()),
		zap.String("from", string(customer.Status)),
		zap.String("to", string(status)),
		zap.Int64("paid_bookings", paid),
	)
}
