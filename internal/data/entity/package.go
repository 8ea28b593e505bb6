package entity

import (
	"time"
)

type TravelPackage struct {
	Base
	Name        string    `db:"name"`
	Destination string    `db:"destination"`
	Description *string   `db:"description"`
	Price       float64   `db:"price"`
	Quota       int       `db:"quota"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	IsActive    bool      `db:"is_active"`
}
