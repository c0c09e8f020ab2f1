package booking

import (
	"time"

	"medibook/models"
)

// AvailableSlots computes the open slots for a doctor over the rolling
// horizon starting at now. It is pure: no side effects, safe to recompute
// at any time, and two calls with the same inputs return identical output.
//
// Day 0 starts at the next half-hour boundary at or after max(now, window
// start), pushed out by the booking lead time; later days start exactly at
// the window start. A slot is offered only if its label is absent from the
// doctor's booked set for that day. Every day of the horizon yields a
// bucket, even when fully booked.
func AvailableSlots(doc *models.Doctor, now time.Time) []models.DaySlots {
	window := doc.Window
	if window.EndHour <= window.StartHour {
		window = models.DefaultDailyWindow()
	}

	days := make([]models.DaySlots, 0, models.SlotHorizonDays)
	for i := 0; i < models.SlotHorizonDays; i++ {
		day := now.AddDate(0, 0, i)
		key := models.DayKeyFor(day)

		opens := time.Date(day.Year(), day.Month(), day.Day(), window.StartHour, 0, 0, 0, now.Location())
		closes := time.Date(day.Year(), day.Month(), day.Day(), window.EndHour, 0, 0, 0, now.Location())

		first := opens
		if i == 0 {
			base := now
			if base.Before(opens) {
				base = opens
			}
			first = nextHalfHour(base).Add(models.BookingLead)
		}

		booked := doc.SlotsBooked[key.String()]
		slots := make([]models.Slot, 0)
		for t := first; t.Before(closes); t = t.Add(models.SlotInterval) {
			label := models.FormatTimeLabel(t)
			if containsLabel(booked, label) {
				continue
			}
			slots = append(slots, models.Slot{Date: key.String(), Time: label, Starts: t})
		}

		days = append(days, models.DaySlots{Date: key.String(), Slots: slots})
	}
	return days
}

// nextHalfHour rounds t up to the next :00 or :30 boundary.
func nextHalfHour(t time.Time) time.Time {
	minute := t.Minute()
	if t.Second() > 0 || t.Nanosecond() > 0 {
		minute++
	}
	if rem := minute % 30; rem != 0 {
		minute += 30 - rem
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
