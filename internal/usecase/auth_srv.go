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

type AuthService interface {
	StaffLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	CustomerLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) StaffLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to login", err)
	}
	if user == nil || !user.IsActive || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
	}

	session, err := s.createSession(ctx, user.ID, utils.ActorTypeStaff)
	if err != nil {
		return nil, err
	}

	s.log.Info("Staff logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &response.AuthResponse{
		Token:     session.Token.String(),
		ActorID:   user.ID.String(),
		ActorType: utils.ActorTypeStaff,
		Role:      string(user.Role),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) CustomerLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customer, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find customer", zap.Error(err), zap.String("email", req.Email))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to login", err)
	}
	if customer == nil || !utils.CheckPassword(customer.PasswordHash, req.Password) {
		return nil, apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
	}

	session, err := s.createSession(ctx, customer.ID, utils.ActorTypeCustomer)
	if err != nil {
		return nil, err
	}

	s.log.Info("Customer logged in", zap.String("customer_id", customer.ID.String()))

	return &response.AuthResponse{
		Token:     session.Token.String(),
		ActorID:   customer.ID.String(),
		ActorType: utils.ActorTypeCustomer,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return apperrors.Wrap(apperrors.KindInternal, "failed to logout", err)
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, actorID uuid.UUID, actorType string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		ActorID:   actorID,
		ActorType: actorType,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("actor_id", actorID.String()),
			zap.String("actor_type", actorType),
		)
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to login", err)
	}

	return session, nil
}
