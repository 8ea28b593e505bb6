package repository

import (
	"context"
	"fmt"

	"travel-crm/internal/data/entity"
	"travel-crm/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Interaction, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
}

type interactionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewInteractionRepository(db database.Querier, log *zap.Logger) InteractionRepository {
	return &interactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "interaction")),
	}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, customer_id, user_id, type, notes, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		interaction.ID,
		interaction.CustomerID,
		interaction.UserID,
		interaction.Type,
		interaction.Notes,
		interaction.OccurredAt,
		interaction.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create interaction",
			zap.Error(err),
			zap.String("customer_id", interaction.CustomerID.String()),
			zap.String("user_id", interaction.UserID.String()),
		)
		return fmt.Errorf("create interaction for customer %s: %w", interaction.CustomerID.String(), err)
	}

	return nil
}

func (r *interactionRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Interaction, error) {
	query := `
		SELECT id, customer_id, user_id, type, notes, occurred_at, created_at
		FROM interactions
		WHERE customer_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find interactions by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find interactions by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var interactions []*entity.Interaction
	for rows.Next() {
		var interaction entity.Interaction
		err := rows.Scan(
			&interaction.ID,
			&interaction.CustomerID,
			&interaction.UserID,
			&interaction.Type,
			&interaction.Notes,
			&interaction.OccurredAt,
			&interaction.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan interaction row", zap.Error(err))
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}
		interactions = append(interactions, &interaction)
	}

	return interactions, nil
}

func (r *interactionRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM interactions WHERE customer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count interactions",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count interactions for customer %s: %w", customerID.String(), err)
	}

	return count, nil
}
