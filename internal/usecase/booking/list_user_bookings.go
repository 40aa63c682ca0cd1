package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Classified struct {
	Confirmed []models.Booking `json:"confirmed"`
	Concluded []models.Booking `json:"concluded"`
}

type ListUserBookings struct {
	store   domain.Store
	clock   clock.Clock
	timeout time.Duration
}

func NewListUserBookings(
	store domain.Store,
	clk clock.Clock,
	timeout time.Duration,
) *ListUserBookings {
	return &ListUserBookings{store: store, clock: clk, timeout: timeout}
}

func (uc *ListUserBookings) Execute(
	ctx context.Context,
	userID string,
) (Classified, error) {

	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	bookings, err := uc.store.ListByUser(ctx, userID)
	if err != nil {
		return Classified{}, err
	}

	confirmed, concluded := domain.Classify(bookings, uc.clock.Now())

	return Classified{
		Confirmed: confirmed,
		Concluded: concluded,
	}, nil
}
