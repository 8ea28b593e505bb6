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

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	UpdateStatus(ctx context.Context, customerID uuid.UUID, status entity.CustomerStatus) error
}

type customerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomerRepository(db database.Querier, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, full_name, email, password, phone, address, status, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.Email,
		&customer.PasswordHash,
		&customer.Phone,
		&customer.Address,
		&customer.Status,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, full_name, email, password, phone, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.PasswordHash,
		customer.Phone,
		customer.Address,
		customer.Status,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

func (r *customerRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $2, email = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FullName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", customer.ID.String())
	}

	return nil
}

func (r *customerRepository) UpdateStatus(ctx context.Context, customerID uuid.UUID, status entity.CustomerStatus) error {
	query := `UPDATE customers SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, customerID, status)
	if err != nil {
		r.log.Error("Failed to update customer status",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update customer %s status to %s: %w", customerID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", customerID.String())
	}

	return nil
}
