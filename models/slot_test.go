package models

import (
	"testing"
	"time"
)

func TestDayKeyRoundTrip(t *testing.T) {
	key := DayKeyFor(time.Date(2024, 6, 5, 13, 30, 0, 0, time.UTC))
	if key.String() != "5_6_2024" {
		t.Fatalf("expected key 5_6_2024, got %s", key.String())
	}

	parsed, err := ParseDayKey(key.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != key {
		t.Fatalf("round trip mismatch: %v != %v", parsed, key)
	}
}

func TestParseDayKeyRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "5_6", "5-6-2024", "a_6_2024", "31_2_2024", "0_6_2024"} {
		if _, err := ParseDayKey(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTimeLabelCanonicalForm(t *testing.T) {
	noon := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	if got := FormatTimeLabel(noon); got != "12:00 PM" {
		t.Fatalf("expected 12:00 PM, got %s", got)
	}
	morning := time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC)
	if got := FormatTimeLabel(morning); got != "09:30 AM" {
		t.Fatalf("expected 09:30 AM, got %s", got)
	}

	if _, err := ParseTimeLabel("09:30 AM"); err != nil {
		t.Fatalf("parse canonical label: %v", err)
	}
	for _, in := range []string{"9:30 AM", "09:30", "25:00 PM", ""} {
		if _, err := ParseTimeLabel(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestSlotTaken(t *testing.T) {
	doc := &Doctor{SlotsBooked: map[string][]string{
		"5_6_2024": {"10:00 AM", "10:30 AM"},
	}}
	if !doc.SlotTaken("5_6_2024", "10:00 AM") {
		t.Fatal("expected slot to be taken")
	}
	if doc.SlotTaken("5_6_2024", "11:00 AM") {
		t.Fatal("expected slot to be free")
	}
	if doc.SlotTaken("6_6_2024", "10:00 AM") {
		t.Fatal("expected slot on unbooked day to be free")
	}
}
