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

type InteractionService interface {
	CreateInteraction(ctx context.Context, userID string, req *request.CreateInteractionRequest) (*response.InteractionResponse, error)
	GetCustomerInteractions(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.InteractionResponse], error)
}

type interactionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewInteractionService(repo *repository.Repository, log *zap.Logger) InteractionService {
	return &interactionService{
		repo: repo,
		log:  log.With(zap.String("service", "interaction")),
	}
}

func (s *interactionService) CreateInteraction(ctx context.Context, userID string, req *request.CreateInteractionRequest) (*response.InteractionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Interaction validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	staffID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid user ID format %s", userID)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", req.CustomerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create interaction", err)
	}
	if customer == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "customer %s not found", req.CustomerID)
	}

	occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidState, "invalid occurred_at format, expected RFC 3339")
	}

	interaction := &entity.Interaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customerID,
		UserID:     staffID,
		Type:       entity.InteractionType(req.Type),
		Notes:      req.Notes,
		OccurredAt: occurredAt,
	}

	if err := s.repo.Interaction.Create(ctx, interaction); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create interaction", err)
	}

	s.log.Info("Interaction recorded",
		zap.String("interaction_id", interaction.ID.String()),
		zap.String("customer_id", req.CustomerID),
		zap.String("type", req.Type),
	)

	resp := response.InteractionToResponse(interaction)
	return &resp, nil
}

func (s *interactionService) GetCustomerInteractions(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.InteractionResponse], error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid customer ID format %s", customerID)
	}

	interactions, err := s.repo.Interaction.FindByCustomerID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list interactions", err)
	}

	total, err := s.repo.Interaction.CountByCustomerID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list interactions", err)
	}

	items := make([]response.InteractionResponse, 0, len(interactions))
	for _, interaction := range interactions {
		items = append(items, response.InteractionToResponse(interaction))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
