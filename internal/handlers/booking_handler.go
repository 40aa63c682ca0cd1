package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type Reserver interface {
	Execute(ctx context.Context, userID, serviceID string, date time.Time) (*models.Booking, error)
}

type AvailabilityGetter interface {
	Execute(ctx context.Context, serviceID string, day time.Time) ([]domain.TimeSlot, error)
}

type UserBookingsLister interface {
	Execute(ctx context.Context, userID string) (ucBooking.Classified, error)
}

type AuditDispatcher interface {
	Dispatch(ev audit.Event) bool
}

type ReservationObserver interface {
	ObserveReservation(outcome string)
}

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	reserve      Reserver
	availability AvailabilityGetter
	list         UserBookingsLister

	loc     *time.Location
	audit   AuditDispatcher
	metrics ReservationObserver
	log     *zap.Logger
}

func NewBookingHandler(
	reserve Reserver,
	availability AvailabilityGetter,
	list UserBookingsLister,
	loc *time.Location,
	audit AuditDispatcher,
	metrics ReservationObserver,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		reserve:      reserve,
		availability: availability,
		list:         list,
		loc:          loc,
		audit:        audit,
		metrics:      metrics,
		log:          log,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateBookingRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
}

type AvailabilityResponse struct {
	ServiceID string   `json:"service_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	serviceID := c.Param("id")

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	day, err := parseDate(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida. Use YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), serviceID, day)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.String())
	}

	httpresp.OK(c, AvailabilityResponse{
		ServiceID: serviceID,
		Date:      dateStr,
		Slots:     out,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := parseDateTime(h.loc, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou horário inválido.")
		return
	}

	b, err := h.reserve.Execute(c.Request.Context(), userID, req.ServiceID, date)
	if err != nil {
		h.observe(err)

		if errors.Is(err, domain.ErrTimeConflict) {
			h.audit.Dispatch(audit.Event{
				UserID:   userID,
				Action:   "booking_conflict",
				Entity:   "service",
				EntityID: req.ServiceID,
				Metadata: gin.H{"date": date.Format(dateTimeLayout)},
			})
		}

		h.writeError(c, err)
		return
	}

	h.metrics.ObserveReservation(metrics.OutcomeCreated)
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: gin.H{
			"service_id": b.ServiceID,
			"date":       b.Date.In(h.loc).Format(dateTimeLayout),
		},
	})

	httpresp.Created(c, b)
}

// ======================================================
// LIST (ME)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, dto.ClassifiedBookingsDTO{
		Confirmed: dto.FromBookings(out.Confirmed, h.loc),
		Concluded: dto.FromBookings(out.Concluded, h.loc),
	})
}

// ======================================================
// ERRORS
// ======================================================

// observe labels a rejected reservation with its business code.
func (h *BookingHandler) observe(err error) {
	outcome := httperr.CodeOf(err)
	if outcome == "" {
		outcome = metrics.OutcomeError
	}
	h.metrics.ObserveReservation(outcome)
}

func (h *BookingHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrServiceNotFound):
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
	case errors.Is(err, domain.ErrPastTime):
		httperr.Unprocessable(c, "past_time", "Não é possível reservar um horário que já passou.")
	case errors.Is(err, domain.ErrSlotNotOffered):
		httperr.Unprocessable(c, "invalid_slot", "Horário fora da agenda da barbearia.")
	case errors.Is(err, domain.ErrTimeConflict):
		httperr.Conflict(c, "time_conflict", "Este horário já está reservado.")
	default:
		h.log.Error("booking request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
	}
}
