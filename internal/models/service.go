package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable barbershop service. Immutable once created.
type Service struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	BarbershopID string      `gorm:"type:uuid;index;not null" json:"barbershop_id"`
	Barbershop   *Barbershop `json:"barbershop,omitempty"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"size:255" json:"image_url"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
