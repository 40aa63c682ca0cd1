package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type ReserveBooking struct {
	services domain.ServiceRepository
	store    domain.Store
	table    domain.SlotTable
	clock    clock.Clock
	log      *zap.Logger
	timeout  time.Duration
}

func NewReserveBooking(
	services domain.ServiceRepository,
	store domain.Store,
	table domain.SlotTable,
	clk clock.Clock,
	log *zap.Logger,
	timeout time.Duration,
) *ReserveBooking {
	return &ReserveBooking{
		services: services,
		store:    store,
		table:    orDefault(table),
		clock:    clk,
		log:      log,
		timeout:  timeout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books serviceID at date for userID. It returns ErrServiceNotFound,
// ErrPastTime, ErrSlotNotOffered or ErrTimeConflict for the expected
// rejections; any other error comes from the store and is not retried.
func (uc *ReserveBooking) Execute(
	ctx context.Context,
	userID string,
	serviceID string,
	date time.Time,
) (*models.Booking, error) {

	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	// --------------------------------------------------
	// 1. Service
	// --------------------------------------------------
	service, err := uc.services.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reserve booking: %w", err)
	}

	// --------------------------------------------------
	// 2. Past time
	// --------------------------------------------------
	date = domain.NormalizeDate(date)
	now := uc.clock.Now()

	if !date.After(now) {
		uc.log.Info("booking rejected",
			zap.String("reason", "past_time"),
			zap.String("service_id", serviceID),
			zap.Time("date", date),
		)
		return nil, domain.ErrPastTime
	}

	// --------------------------------------------------
	// 3. Slot table
	// --------------------------------------------------
	if !uc.table.Contains(domain.TimeOfDayOf(date.In(now.Location()))) {
		uc.log.Info("booking rejected",
			zap.String("reason", "invalid_slot"),
			zap.String("service_id", serviceID),
			zap.Time("date", date),
		)
		return nil, domain.ErrSlotNotOffered
	}

	// --------------------------------------------------
	// 4. Atomic insert
	// --------------------------------------------------
	b := &models.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		ServiceID: service.ID,
		Date:      date,
		CreatedAt: now,
	}

	if err := uc.store.InsertIfAbsent(ctx, b); err != nil {
		if errors.Is(err, domain.ErrTimeConflict) {
			uc.log.Info("booking rejected",
				zap.String("reason", "time_conflict"),
				zap.String("service_id", serviceID),
				zap.Time("date", date),
			)
			return nil, err
		}

		uc.log.Error("booking store failure",
			zap.String("service_id", serviceID),
			zap.Time("date", date),
			zap.Error(err),
		)
		return nil, err
	}

	b.Service = service

	uc.log.Info("booking reserved",
		zap.String("booking_id", b.ID),
		zap.String("user_id", userID),
		zap.String("service_id", serviceID),
		zap.Time("date", date),
	)

	return b, nil
}
