package usecase

import (
	"context"

	"travel-crm/internal/data/repository"
	"travel-crm/internal/dto/response"
	"travel-crm/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// CheckAvailability computes free slots on a package from its
	// slot-holding bookings. Read-only; booking creation re-checks
	// under a row lock.
	CheckAvailability(ctx context.Context, packageID string, participants int) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, packageID string, participants int) (*response.AvailabilityResponse, error) {
	if participants < 1 {
		return nil, apperrors.New(apperrors.KindInvalidState, "participants must be at least 1")
	}

	pkgID, err := uuid.Parse(packageID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid package ID format %s", packageID)
	}

	pkg, err := s.repo.Package.FindByID(ctx, pkgID)
	if err != nil {
		s.log.Error("Failed to resolve package", zap.Error(err), zap.String("package_id", packageID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check availability", err)
	}
	if pkg == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "travel package %s not found", packageID)
	}
	if !pkg.IsActive {
		return nil, apperrors.New(apperrors.KindInvalidState, "travel package is not active")
	}

	booked, err := s.repo.Booking.SumActiveParticipants(ctx, pkgID, uuid.Nil)
	if err != nil {
		s.log.Error("Failed to sum booked participants", zap.Error(err), zap.String("package_id", packageID))
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check availability", err)
	}

	availableSlots := pkg.Quota - booked

	s.log.Info("Availability checked",
		zap.String("package_id", packageID),
		zap.Int("quota", pkg.Quota),
		zap.Int("booked", booked),
		zap.Int("available", availableSlots),
		zap.Int("requested", participants),
	)

	return &response.AvailabilityResponse{
		PackageID:      packageID,
		IsAvailable:    availableSlots >= participants,
		AvailableSlots: availableSlots,
	}, nil
}
