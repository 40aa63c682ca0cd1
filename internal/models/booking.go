package models

import "time"

// Booking occupies one (service, date) slot. Date carries minute precision and
// the pair is unique at the database level.
type Booking struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"user_id"`

	ServiceID string   `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_service_date,priority:1" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	Date time.Time `gorm:"not null;uniqueIndex:idx_bookings_service_date,priority:2" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
