package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot generation parameters. The window hours are per-doctor defaults;
// a doctor document may carry its own window.
const (
	SlotInterval     = 30 * time.Minute
	BookingLead      = time.Hour
	SlotHorizonDays  = 7
	DefaultOpenHour  = 10
	DefaultCloseHour = 21
)

// TimeLabelLayout is the canonical slot time label layout ("09:30 AM").
// Both the generator and the validator must format through it; the booked-slot
// exclusion check is plain string equality against slotsBooked entries.
const TimeLabelLayout = "03:04 PM"

// FormatTimeLabel renders t as a canonical slot time label.
func FormatTimeLabel(t time.Time) string {
	return t.Format(TimeLabelLayout)
}

// ParseTimeLabel validates a slot time label and returns its clock time.
func ParseTimeLabel(label string) (time.Time, error) {
	t, err := time.Parse(TimeLabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q: %w", label, err)
	}
	return t, nil
}

// DayKey identifies a calendar day. Its single serialized form ("5_6_2024",
// day_month_year) is the key of the doctor's slotsBooked map.
type DayKey struct {
	Day   int
	Month int
	Year  int
}

// DayKeyFor returns the key of the calendar day containing t.
func DayKeyFor(t time.Time) DayKey {
	return DayKey{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// ParseDayKey parses the serialized day_month_year form.
func ParseDayKey(s string) (DayKey, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return DayKey{}, fmt.Errorf("invalid day key %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return DayKey{}, fmt.Errorf("invalid day key %q: %w", s, err)
		}
		nums[i] = n
	}
	key := DayKey{Day: nums[0], Month: nums[1], Year: nums[2]}
	if key.Date(time.UTC).Day() != key.Day {
		return DayKey{}, fmt.Errorf("invalid day key %q: no such date", s)
	}
	return key, nil
}

func (k DayKey) String() string {
	return fmt.Sprintf("%d_%d_%d", k.Day, k.Month, k.Year)
}

// Date returns midnight of the day in the given location.
func (k DayKey) Date(loc *time.Location) time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, loc)
}

func (k DayKey) IsZero() bool {
	return k == DayKey{}
}

// Slot is a single bookable (date, time) pair.
type Slot struct {
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Starts time.Time `json:"starts"`
}

// DaySlots is the bucket of open slots for one day of the horizon.
// Slots is never nil so a fully booked day still renders as an entry.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}
