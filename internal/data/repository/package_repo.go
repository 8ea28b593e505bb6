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

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.TravelPackage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error)
	// FindByIDForUpdate locks the package row for the rest of the
	// transaction. Only meaningful on a transaction-bound repository.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error)
	FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.TravelPackage, error)
	CountAll(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, pkg *entity.TravelPackage) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type packageRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPackageRepository(db database.Querier, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, name, destination, description, price, quota, start_date, end_date, is_active, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.TravelPackage, error) {
	var pkg entity.TravelPackage
	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Destination,
		&pkg.Description,
		&pkg.Price,
		&pkg.Quota,
		&pkg.StartDate,
		&pkg.EndDate,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	query := `
		INSERT INTO travel_packages (id, name, destination, description, price, quota, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Destination,
		pkg.Description,
		pkg.Price,
		pkg.Quota,
		pkg.StartDate,
		pkg.EndDate,
		pkg.IsActive,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create travel package",
			zap.Error(err),
			zap.String("name", pkg.Name),
			zap.String("destination", pkg.Destination),
		)
		return fmt.Errorf("create travel package %s: %w", pkg.Name, err)
	}

	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages WHERE id = $1 FOR UPDATE`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock package row",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("lock package %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM travel_packages`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY start_date LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list packages",
			zap.Error(err),
			zap.Bool("active_only", activeOnly),
		)
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.TravelPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

func (r *packageRepository) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM travel_packages`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}

	return count, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	query := `
		UPDATE travel_packages
		SET name = $2, destination = $3, description = $4, price = $5,
		    quota = $6, start_date = $7, end_date = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Destination,
		pkg.Description,
		pkg.Price,
		pkg.Quota,
		pkg.StartDate,
		pkg.EndDate,
		pkg.IsActive,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s not found", pkg.ID.String())
	}

	return nil
}

func (r *packageRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE travel_packages SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set package active flag",
			zap.Error(err),
			zap.String("package_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set package %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("package %s not found", id.String())
	}

	return nil
}
