package response

import (
	"time"

	"travel-crm/internal/data/entity"
)

type PackageResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quota       int       `json:"quota"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func PackageToResponse(pkg *entity.TravelPackage) PackageResponse {
	return PackageResponse{
		ID:          pkg.ID.String(),
		Name:        pkg.Name,
		Destination: pkg.Destination,
		Description: pkg.Description,
		Price:       pkg.Price,
		Quota:       pkg.Quota,
		StartDate:   pkg.StartDate.Format("2006-01-02"),
		EndDate:     pkg.EndDate.Format("2006-01-02"),
		IsActive:    pkg.IsActive,
		CreatedAt:   pkg.CreatedAt,
	}
}
