package booking

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var loc = time.FixedZone("BRT", -3*60*60)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, loc)
}

type fakeServices map[string]*models.Service

func (f fakeServices) GetService(_ context.Context, id string) (*models.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, domain.ErrServiceNotFound
}

// memStore serialises check-then-insert under one mutex, the in-memory
// counterpart of the unique index.
type memStore struct {
	mu       sync.Mutex
	bookings []models.Booking

	err   error
	block bool
}

func (s *memStore) BookedTimes(ctx context.Context, serviceID string, day time.Time) ([]domain.TimeOfDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	var out []domain.TimeOfDay
	for _, b := range s.bookings {
		d := b.Date.In(day.Location())
		if b.ServiceID == serviceID && clock.SameDay(d, day) {
			out = append(out, domain.TimeOfDayOf(d))
		}
	}
	return out, nil
}

func (s *memStore) InsertIfAbsent(ctx context.Context, b *models.Booking) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	for _, existing := range s.bookings {
		if existing.ServiceID == b.ServiceID && existing.Date.Equal(b.Date) {
			return domain.ErrTimeConflict
		}
	}

	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *memStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	var out []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}
