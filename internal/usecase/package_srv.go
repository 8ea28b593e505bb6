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

type PackageService interface {
	CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error)
	GetPackageByID(ctx context.Context, packageID string) (*response.PackageResponse, error)
	GetAllPackages(ctx context.Context, activeOnly bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error)
	UpdatePackage(ctx context.Context, packageID string, req *request.UpdatePackageRequest) (*response.PackageResponse, error)
	SetPackageActive(ctx context.Context, packageID string, active bool) error
}

type packageService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPackageService(repo *repository.Repository, log *zap.Logger) PackageService {
	return &packageService{
		repo: repo,
		log:  log.With(zap.String("service", "package")),
	}
}

func (s *packageService) CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Package validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidState, "invalid start date format, expected YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInvalidState, "invalid end date format, expected YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.New(apperrors.KindInvalidState, "end date must not be before start date")
	}

	now := time.Now()
	pkg := &entity.TravelPackage{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		Price:       req.Price,
		Quota:       req.Quota,
		StartDate:   startDate,
		EndDate:     endDate,
		IsActive:    true,
	}

	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create package", err)
	}

	s.log.Info("Package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("name", pkg.Name),
		zap.Int("quota", pkg.Quota),
	)

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) GetPackageByID(ctx context.Context, packageID string) (*response.PackageResponse, error) {
	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid package ID format %s", packageID)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get package", err)
	}
	if pkg == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "travel package %s not found", packageID)
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) GetAllPackages(ctx context.Context, activeOnly bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	packages, err := s.repo.Package.FindAll(ctx, activeOnly, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list packages", err)
	}

	total, err := s.repo.Package.CountAll(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list packages", err)
	}

	items := make([]response.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, response.PackageToResponse(pkg))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *packageService) UpdatePackage(ctx context.Context, packageID string, req *request.UpdatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Package validation failed", zap.Any("errors", errs))
		return nil, apperrors.Newf(apperrors.KindInvalidState, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, apperrors.Newf(apperrors.KindInvalidState, "invalid package ID format %s", packageID)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update package", err)
	}
	if pkg == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "travel package %s not found", packageID)
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Destination != nil {
		pkg.Destination = *req.Destination
	}
	if req.Description != nil {
		pkg.Description = req.Description
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, apperrors.New(apperrors.KindInvalidState, "invalid start date format, expected YYYY-MM-DD")
		}
		pkg.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, apperrors.New(apperrors.KindInvalidState, "invalid end date format, expected YYYY-MM-DD")
		}
		pkg.EndDate = endDate
	}
	if pkg.EndDate.Before(pkg.StartDate) {
		return nil, apperrors.New(apperrors.KindInvalidState, "end date must not be before start date")
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	// Shrinking quota below already-booked seats would strand bookings.
	if req.Quota != nil && *req.Quota != pkg.Quota {
		booked, err := s.repo.Booking.SumActiveParticipants(ctx, pkg.ID, uuid.Nil)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update package", err)
		}
		if *req.Quota < booked {
			return nil, apperrors.Newf(apperrors.KindInvalidState, "quota %d is below %d already-booked participants", *req.Quota, booked)
		}
		pkg.Quota = *req.Quota
	}

	pkg.UpdatedAt = time.Now()

	if err := s.repo.Package.Update(ctx, pkg); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update package", err)
	}

	s.log.Info("Package updated", zap.String("package_id", packageID))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) SetPackageActive(ctx context.Context, packageID string, active bool) error {
	id, err := uuid.Parse(packageID)
	if err != nil {
		return apperrors.Newf(apperrors.KindInvalidState, "invalid package ID format %s", packageID)
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update package", err)
	}
	if pkg == nil {
		return apperrors.Newf(apperrors.KindNotFound, "travel package %s not found", packageID)
	}

	if err := s.repo.Package.SetActive(ctx, id, active); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to update package", err)
	}

	s.log.Info("Package active flag set",
		zap.String("package_id", packageID),
		zap.Bool("active", active),
	)

	return nil
}
