package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ServiceRepository interface {
	// GetService returns ErrServiceNotFound when id is unknown.
	GetService(ctx context.Context, id string) (*models.Service, error)
}

type Store interface {
	// BookedTimes returns the times of day already booked for serviceID on
	// day's calendar date, expressed in day's location.
	BookedTimes(ctx context.Context, serviceID string, day time.Time) ([]TimeOfDay, error)

	// InsertIfAbsent persists b unless a booking already holds
	// (b.ServiceID, b.Date), in which case it returns ErrTimeConflict.
	// The check and the insert are one atomic unit.
	InsertIfAbsent(ctx context.Context, b *models.Booking) error

	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// NormalizeDate truncates t to minute precision, the granularity at which two
// bookings are considered to share a slot.
func NormalizeDate(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
