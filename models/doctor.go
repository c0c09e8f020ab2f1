package models

import "time"

// DailyWindow is a doctor's bookable hours, fixed per doctor.
type DailyWindow struct {
	StartHour int `bson:"startHour" json:"startHour"`
	EndHour   int `bson:"endHour" json:"endHour"`
}

// DefaultDailyWindow returns the platform default consultation window.
func DefaultDailyWindow() DailyWindow {
	return DailyWindow{StartHour: DefaultOpenHour, EndHour: DefaultCloseHour}
}

type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2,omitempty" json:"line2,omitempty"`
}

// Doctor is the doctor document. SlotsBooked maps a DayKey string to the
// time labels reserved on that day; it is mutated only through the booking
// repository's conditional updates and read by the slot generator.
type Doctor struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Email        string              `bson:"email" json:"email"`
	Image        string              `bson:"image" json:"image,omitempty"`
	Speciality   string              `bson:"speciality" json:"speciality"`
	Degree       string              `bson:"degree" json:"degree"`
	Experience   string              `bson:"experience" json:"experience"`
	About        string              `bson:"about" json:"about"`
	Fees         float64             `bson:"fees" json:"fees"`
	Address      Address             `bson:"address" json:"address"`
	Available    bool                `bson:"available" json:"available"`
	Window       DailyWindow         `bson:"dailyWindow" json:"dailyWindow"`
	SlotsBooked  map[string][]string `bson:"slotsBooked" json:"slotsBooked"`
	PasswordHash string              `bson:"passwordHash" json:"-"`
	TokenHash    string              `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SlotTaken reports whether the (day, label) pair is already reserved.
func (d *Doctor) SlotTaken(day, label string) bool {
	for _, booked := range d.SlotsBooked[day] {
		if booked == label {
			return true
		}
	}
	return false
}
