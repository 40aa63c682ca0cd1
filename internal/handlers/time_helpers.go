package handlers

import "time"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// parseDate reads YYYY-MM-DD as midnight in the shop's zone.
func parseDate(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, dateStr, loc)
}

// parseDateTime reads YYYY-MM-DD plus HH:MM as a wall-clock time in the
// shop's zone.
func parseDateTime(loc *time.Location, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, dateStr+" "+timeStr, loc)
}
