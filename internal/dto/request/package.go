package request

type CreatePackageRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=150"`
	Destination string  `json:"destination" validate:"required,min=2,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quota       int     `json:"quota" validate:"required,min=1"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdatePackageRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3,max=150"`
	Destination *string  `json:"destination,omitempty" validate:"omitempty,min=2,max=150"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Quota       *int     `json:"quota,omitempty" validate:"omitempty,min=1"`
	StartDate   *string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
