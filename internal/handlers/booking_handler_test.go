package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

type fakeReserver struct {
	err error

	gotUser    string
	gotService string
	gotDate    time.Time
}

func (f *fakeReserver) Execute(_ context.Context, userID, serviceID string, date time.Time) (*models.Booking, error) {
	f.gotUser, f.gotService, f.gotDate = userID, serviceID, date
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{ID: "b1", UserID: userID, ServiceID: serviceID, Date: date}, nil
}

type fakeAvailability struct {
	slots  []domain.TimeSlot
	err    error
	gotDay time.Time
}

func (f *fakeAvailability) Execute(_ context.Context, _ string, day time.Time) ([]domain.TimeSlot, error) {
	f.gotDay = day
	return f.slots, f.err
}

type fakeLister struct {
	out ucBooking.Classified
	err error
}

func (f *fakeLister) Execute(context.Context, string) (ucBooking.Classified, error) {
	return f.out, f.err
}

type fakeAudit struct {
	events []audit.Event
}

func (f *fakeAudit) Dispatch(ev audit.Event) bool {
	f.events = append(f.events, ev)
	return true
}

type fakeObserver struct {
	outcomes []string
}

func (f *fakeObserver) ObserveReservation(outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

type bookingFixture struct {
	reserve *fakeReserver
	avail   *fakeAvailability
	list    *fakeLister
	audit   *fakeAudit
	metrics *fakeObserver
	router  *gin.Engine
}

func newBookingFixture(t *testing.T) *bookingFixture {
	f := &bookingFixture{
		reserve: &fakeReserver{},
		avail:   &fakeAvailability{},
		list:    &fakeLister{},
		audit:   &fakeAudit{},
		metrics: &fakeObserver{},
	}

	h := NewBookingHandler(f.reserve, f.avail, f.list, loc, f.audit, f.metrics, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/api/services/:id/availability", h.Availability)
	r.POST("/api/bookings", withUser("u1"), h.Create)
	r.GET("/api/me/bookings", withUser("u1"), h.ListMine)

	f.router = r
	return f
}

func TestBookingHandler_Create(t *testing.T) {
	f := newBookingFixture(t)

	w := do(f.router, http.MethodPost, "/api/bookings", CreateBookingRequest{
		ServiceID: "s1",
		Date:      "2026-03-10",
		Time:      "09:30",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "b1", decode[models.Booking](t, w).ID)

	assert.Equal(t, "u1", f.reserve.gotUser)
	assert.Equal(t, "s1", f.reserve.gotService)
	assert.True(t, f.reserve.gotDate.Equal(time.Date(2026, 3, 10, 9, 30, 0, 0, loc)))

	assert.Equal(t, []string{metrics.OutcomeCreated}, f.metrics.outcomes)
	require.Len(t, f.audit.events, 1)
	assert.Equal(t, "booking_created", f.audit.events[0].Action)
	assert.Equal(t, "b1", f.audit.events[0].EntityID)
}

func TestBookingHandler_CreateBadInput(t *testing.T) {
	tests := []struct {
		name string
		body any
		code string
	}{
		{"missing fields", map[string]string{"service_id": "s1"}, "invalid_request"},
		{"bad time", CreateBookingRequest{ServiceID: "s1", Date: "2026-03-10", Time: "9h"}, "invalid_date_or_time"},
		{"bad date", CreateBookingRequest{ServiceID: "s1", Date: "10/03/2026", Time: "09:00"}, "invalid_date_or_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			w := do(f.router, http.MethodPost, "/api/bookings", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode[errorBody](t, w).Code)
			assert.Empty(t, f.reserve.gotService, "usecase is not reached")
		})
	}
}

func TestBookingHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		outcome string
		audited bool
	}{
		{"service not found", domain.ErrServiceNotFound, http.StatusNotFound, "service_not_found", metrics.OutcomeNotFound, false},
		{"past time", domain.ErrPastTime, http.StatusUnprocessableEntity, "past_time", metrics.OutcomePastTime, false},
		{"slot not offered", domain.ErrSlotNotOffered, http.StatusUnprocessableEntity, "invalid_slot", metrics.OutcomeInvalidSlot, false},
		{"conflict", domain.ErrTimeConflict, http.StatusConflict, "time_conflict", metrics.OutcomeConflict, true},
		{"store failure", errors.New("insert booking: connection reset"), http.StatusInternalServerError, "internal_error", metrics.OutcomeError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			f.reserve.err = tt.err

			w := do(f.router, http.MethodPost, "/api/bookings", CreateBookingRequest{
				ServiceID: "s1", Date: "2026-03-10", Time: "09:00",
			})

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[errorBody](t, w).Code)
			assert.Equal(t, []string{tt.outcome}, f.metrics.outcomes)

			if tt.audited {
				require.Len(t, f.audit.events, 1)
				assert.Equal(t, "booking_conflict", f.audit.events[0].Action)
			} else {
				assert.Empty(t, f.audit.events)
			}
		})
	}
}

func TestBookingHandler_Availability(t *testing.T) {
	f := newBookingFixture(t)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	f.avail.slots = []domain.TimeSlot{
		{Day: day, Time: domain.TimeOfDay{Hour: 8, Minute: 30}},
		{Day: day, Time: domain.TimeOfDay{Hour: 9}},
	}

	w := do(f.router, http.MethodGet, "/api/services/s1/availability?date=2026-03-10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[AvailabilityResponse](t, w)
	assert.Equal(t, []string{"08:30", "09:00"}, got.Slots)
	assert.Equal(t, "s1", got.ServiceID)
	assert.True(t, f.avail.gotDay.Equal(day))
}

func TestBookingHandler_AvailabilityErrors(t *testing.T) {
	t.Run("missing date", func(t *testing.T) {
		w := do(newBookingFixture(t).router, http.MethodGet, "/api/services/s1/availability", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		w := do(newBookingFixture(t).router, http.MethodGet, "/api/services/s1/availability?date=tomorrow", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newBookingFixture(t)
		f.avail.err = domain.ErrServiceNotFound

		w := do(f.router, http.MethodGet, "/api/services/nope/availability?date=2026-03-10", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty day renders an empty list", func(t *testing.T) {
		f := newBookingFixture(t)
		f.avail.slots = []domain.TimeSlot{}

		w := do(f.router, http.MethodGet, "/api/services/s1/availability?date=2020-01-01", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"service_id":"s1","date":"2020-01-01","slots":[]}`, w.Body.String())
	})
}

func TestBookingHandler_ListMine(t *testing.T) {
	f := newBookingFixture(t)
	f.list.out = ucBooking.Classified{
		Confirmed: []models.Booking{{ID: "next"}},
	}

	w := do(f.router, http.MethodGet, "/api/me/bookings", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.ClassifiedBookingsDTO](t, w)
	require.Len(t, got.Confirmed, 1)
	assert.Equal(t, "next", got.Confirmed[0].ID)
	assert.NotNil(t, got.Concluded)
	assert.Empty(t, got.Concluded)
}
