package booking

import (
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Classify splits bookings into confirmed (date after now, soonest first) and
// concluded (date at or before now, most recent first). Ties break on ID.
func Classify(bookings []models.Booking, now time.Time) (confirmed, concluded []models.Booking) {
	confirmed = make([]models.Booking, 0, len(bookings))
	concluded = make([]models.Booking, 0, len(bookings))

	for _, b := range bookings {
		if b.Date.After(now) {
			confirmed = append(confirmed, b)
		} else {
			concluded = append(concluded, b)
		}
	}

	slices.SortFunc(confirmed, func(a, b models.Booking) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	slices.SortFunc(concluded, func(a, b models.Booking) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return confirmed, concluded
}
