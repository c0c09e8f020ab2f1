package booking

import (
	"reflect"
	"testing"
	"time"

	"medibook/models"
)

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:          "doc-1",
		Name:        "Dr. Richard James",
		Available:   true,
		Fees:        50,
		SlotsBooked: map[string][]string{},
	}
}

func TestAvailableSlots_FirstDayLeadTime(t *testing.T) {
	// 09:00 is before the 10:00 window opens; the first offer is the window
	// start rounded to the half hour plus the one hour lead.
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	days := AvailableSlots(testDoctor(), now)

	if len(days) != models.SlotHorizonDays {
		t.Fatalf("expected %d day buckets, got %d", models.SlotHorizonDays, len(days))
	}
	if days[0].Date != "5_6_2024" {
		t.Fatalf("expected first bucket 5_6_2024, got %s", days[0].Date)
	}
	if len(days[0].Slots) == 0 {
		t.Fatal("expected open slots on day 0")
	}
	if got := days[0].Slots[0].Time; got != "11:00 AM" {
		t.Fatalf("expected first slot 11:00 AM, got %s", got)
	}
	last := days[0].Slots[len(days[0].Slots)-1]
	if last.Time != "08:30 PM" {
		t.Fatalf("expected last slot 08:30 PM, got %s", last.Time)
	}
}

func TestAvailableSlots_MidWindowRoundsUp(t *testing.T) {
	// 13:05 rounds up to 13:30, plus the lead gives 14:30.
	now := time.Date(2024, 6, 5, 13, 5, 0, 0, time.UTC)
	days := AvailableSlots(testDoctor(), now)
	if got := days[0].Slots[0].Time; got != "02:30 PM" {
		t.Fatalf("expected first slot 02:30 PM, got %s", got)
	}
}

func TestAvailableSlots_LateEveningYieldsEmptyDay(t *testing.T) {
	// At 20:45 the lead time pushes the first candidate past the 21:00
	// close; the bucket still appears, empty.
	now := time.Date(2024, 6, 5, 20, 45, 0, 0, time.UTC)
	days := AvailableSlots(testDoctor(), now)

	if days[0].Date != "5_6_2024" {
		t.Fatalf("expected bucket 5_6_2024, got %s", days[0].Date)
	}
	if len(days[0].Slots) != 0 {
		t.Fatalf("expected empty day 0, got %d slots", len(days[0].Slots))
	}
	if days[0].Slots == nil {
		t.Fatal("empty bucket must not be nil")
	}

	// Day 1 opens normally at the window start.
	if days[1].Date != "6_6_2024" {
		t.Fatalf("expected second bucket 6_6_2024, got %s", days[1].Date)
	}
	if got := days[1].Slots[0].Time; got != "10:00 AM" {
		t.Fatalf("expected day 1 to open at 10:00 AM, got %s", got)
	}
}

func TestAvailableSlots_ExcludesBookedLabels(t *testing.T) {
	doc := testDoctor()
	doc.SlotsBooked["6_6_2024"] = []string{"10:00 AM", "10:30 AM"}

	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	days := AvailableSlots(doc, now)

	day1 := days[1]
	if day1.Date != "6_6_2024" {
		t.Fatalf("expected bucket 6_6_2024, got %s", day1.Date)
	}
	if got := day1.Slots[0].Time; got != "11:00 AM" {
		t.Fatalf("expected first open slot 11:00 AM, got %s", got)
	}
	for _, s := range day1.Slots {
		if s.Time == "10:00 AM" || s.Time == "10:30 AM" {
			t.Fatalf("booked slot %s offered", s.Time)
		}
	}
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	doc := testDoctor()
	doc.SlotsBooked["6_6_2024"] = []string{"10:00 AM"}
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)

	first := AvailableSlots(doc, now)
	second := AvailableSlots(doc, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("generator is not idempotent for fixed inputs")
	}
}

func TestAvailableSlots_CustomWindow(t *testing.T) {
	doc := testDoctor()
	doc.Window = models.DailyWindow{StartHour: 8, EndHour: 12}

	now := time.Date(2024, 6, 5, 6, 0, 0, 0, time.UTC)
	days := AvailableSlots(doc, now)

	if got := days[0].Slots[0].Time; got != "09:00 AM" {
		t.Fatalf("expected first slot 09:00 AM, got %s", got)
	}
	last := days[0].Slots[len(days[0].Slots)-1]
	if last.Time != "11:30 AM" {
		t.Fatalf("expected last slot 11:30 AM, got %s", last.Time)
	}
}

func TestNextHalfHour(t *testing.T) {
	base := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in, want time.Time
	}{
		{base.Add(10 * time.Hour), base.Add(10 * time.Hour)},
		{base.Add(10*time.Hour + time.Minute), base.Add(10*time.Hour + 30*time.Minute)},
		{base.Add(10*time.Hour + 30*time.Minute), base.Add(10*time.Hour + 30*time.Minute)},
		{base.Add(10*time.Hour + 30*time.Minute + time.Second), base.Add(11 * time.Hour)},
		{base.Add(20*time.Hour + 45*time.Minute), base.Add(21 * time.Hour)},
	}
	for _, c := range cases {
		if got := nextHalfHour(c.in); !got.Equal(c.want) {
			t.Fatalf("nextHalfHour(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}
