package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

const pgUniqueViolation = "23505"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	if !validators.IsUUID(id) {
		return nil, domain.ErrServiceNotFound
	}

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) BookedTimes(
	ctx context.Context,
	serviceID string,
	day time.Time,
) ([]domain.TimeOfDay, error) {

	start := clock.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var dates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"service_id = ? AND date >= ? AND date < ?",
			serviceID, start, end,
		).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, fmt.Errorf("list booked times: %w", err)
	}

	out := make([]domain.TimeOfDay, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.TimeOfDayOf(d.In(day.Location())))
	}
	return out, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// InsertIfAbsent checks and inserts inside one read-committed transaction.
// The unique index idx_bookings_service_date settles races the check misses.
func (r *BookingGormRepository) InsertIfAbsent(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where("service_id = ? AND date = ?", b.ServiceID, b.Date).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrTimeConflict
		}

		return tx.Omit(clause.Associations).Create(b).Error
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrTimeConflict), isUniqueViolation(err):
		return domain.ErrTimeConflict
	default:
		return fmt.Errorf("insert booking: %w", err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --------------------------------------------------
// Booking (list)
// --------------------------------------------------

func (r *BookingGormRepository) ListByUser(
	ctx context.Context,
	userID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service.Barbershop").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}

	return bookings, nil
}

// Compile-time check
var (
	_ domain.Store             = (*BookingGormRepository)(nil)
	_ domain.ServiceRepository = (*BookingGormRepository)(nil)
)
