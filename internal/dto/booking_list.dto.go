package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// BookingListDTO is one booking card: when, what and where.
type BookingListDTO struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`

	ServiceID    string          `json:"service_id"`
	ServiceName  string          `json:"service_name"`
	ServicePrice decimal.Decimal `json:"service_price"`

	BarbershopID      string `json:"barbershop_id"`
	BarbershopName    string `json:"barbershop_name"`
	BarbershopAddress string `json:"barbershop_address"`
	BarbershopImage   string `json:"barbershop_image_url"`
}

type ClassifiedBookingsDTO struct {
	Confirmed []BookingListDTO `json:"confirmed"`
	Concluded []BookingListDTO `json:"concluded"`
}

// FromBooking renders b with its date in loc. Missing associations leave
// the related fields empty.
func FromBooking(b models.Booking, loc *time.Location) BookingListDTO {
	out := BookingListDTO{
		ID:        b.ID,
		Date:      b.Date.In(loc),
		ServiceID: b.ServiceID,
	}

	if s := b.Service; s != nil {
		out.ServiceName = s.Name
		out.ServicePrice = s.Price

		if shop := s.Barbershop; shop != nil {
			out.BarbershopID = shop.ID
			out.BarbershopName = shop.Name
			out.BarbershopAddress = shop.Address
			out.BarbershopImage = shop.ImageURL
		}
	}

	return out
}

func FromBookings(bookings []models.Booking, loc *time.Location) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromBooking(b, loc))
	}
	return out
}
