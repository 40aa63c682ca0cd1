package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
)

type GetAvailability struct {
	services domain.ServiceRepository
	store    domain.Store
	table    domain.SlotTable
	clock    clock.Clock
	timeout  time.Duration
}

func NewGetAvailability(
	services domain.ServiceRepository,
	store domain.Store,
	table domain.SlotTable,
	clk clock.Clock,
	timeout time.Duration,
) *GetAvailability {
	return &GetAvailability{
		services: services,
		store:    store,
		table:    orDefault(table),
		clock:    clk,
		timeout:  timeout,
	}
}

// Execute lists the free slots of serviceID on day's calendar date. A day
// already gone yields an empty list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	serviceID string,
	day time.Time,
) ([]domain.TimeSlot, error) {

	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	if _, err := uc.services.GetService(ctx, serviceID); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get availability: %w", err)
	}

	now := uc.clock.Now()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(clock.StartOfDay(now)) {
		return []domain.TimeSlot{}, nil
	}

	times, err := uc.store.BookedTimes(ctx, serviceID, day)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(
		uc.table,
		day,
		domain.NewBookedTimes(times...),
		now,
	), nil
}

// orDefault swaps an empty table for the 08:00-18:00 half-hour grid.
func orDefault(table domain.SlotTable) domain.SlotTable {
	if table.Len() == 0 {
		return domain.DefaultSlotTable()
	}
	return table
}
