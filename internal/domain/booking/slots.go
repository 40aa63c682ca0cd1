package booking

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
)

var ErrInvalidSlotTable = errors.New("invalid slot table")

// TimeOfDay is an (hour, minute) pair inside a business day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(hm string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", hm, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.minutes() < o.minutes()
}

// On places t on day's calendar date, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// SlotTable is the fixed catalog of bookable times, ascending and without
// duplicates. It is shared by every service and every day.
type SlotTable struct {
	times []TimeOfDay
}

// NewSlotTable builds open, open+step, ... up to and including close.
func NewSlotTable(open, close TimeOfDay, step time.Duration) (SlotTable, error) {
	if step < time.Minute || step%time.Minute != 0 {
		return SlotTable{}, fmt.Errorf("%w: step %s must be a positive whole number of minutes", ErrInvalidSlotTable, step)
	}
	if close.Before(open) {
		return SlotTable{}, fmt.Errorf("%w: close %s is before open %s", ErrInvalidSlotTable, close, open)
	}
	if close.minutes() >= 24*60 {
		return SlotTable{}, fmt.Errorf("%w: close %s is past midnight", ErrInvalidSlotTable, close)
	}

	stepMin := int(step / time.Minute)
	var times []TimeOfDay
	for m := open.minutes(); m <= close.minutes(); m += stepMin {
		times = append(times, TimeOfDay{Hour: m / 60, Minute: m % 60})
	}
	return SlotTable{times: times}, nil
}

// DefaultSlotTable is 08:00 to 18:00 every half hour.
func DefaultSlotTable() SlotTable {
	t, _ := NewSlotTable(TimeOfDay{Hour: 8}, TimeOfDay{Hour: 18}, 30*time.Minute)
	return t
}

// SlotTableOf builds a table from an explicit set of times.
func SlotTableOf(times ...TimeOfDay) SlotTable {
	sorted := slices.Clone(times)
	slices.SortFunc(sorted, func(a, b TimeOfDay) int { return a.minutes() - b.minutes() })
	return SlotTable{times: slices.Compact(sorted)}
}

func (t SlotTable) Times() []TimeOfDay {
	return slices.Clone(t.times)
}

func (t SlotTable) Len() int {
	return len(t.times)
}

func (t SlotTable) Contains(tod TimeOfDay) bool {
	return slices.Contains(t.times, tod)
}

// TimeSlot is a derived (day, time of day) candidate. Never persisted.
type TimeSlot struct {
	Day  time.Time
	Time TimeOfDay
}

func (s TimeSlot) At() time.Time {
	return s.Time.On(s.Day)
}

// BookedTimes is the set of times already taken for one service on one day.
type BookedTimes map[TimeOfDay]struct{}

func NewBookedTimes(times ...TimeOfDay) BookedTimes {
	set := make(BookedTimes, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}
	return set
}

func (b BookedTimes) Has(t TimeOfDay) bool {
	_, ok := b[t]
	return ok
}

// AvailableSlots lists the slots of day that can still be booked, ascending.
// On today, slots at or before now are dropped; booked times are always dropped.
// A day before today yields no slots.
func AvailableSlots(table SlotTable, day time.Time, booked BookedTimes, now time.Time) []TimeSlot {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	today := clock.StartOfDay(now)

	if day.Before(today) {
		return []TimeSlot{}
	}
	isToday := clock.SameDay(day, today)

	out := make([]TimeSlot, 0, len(table.times))
	for _, tod := range table.times {
		slot := TimeSlot{Day: day, Time: tod}

		if isToday && !slot.At().After(now) {
			continue
		}
		if booked.Has(tod) {
			continue
		}

		out = append(out, slot)
	}

	return out
}
