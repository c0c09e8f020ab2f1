package models

import "time"

// Appointment status values. Pending is the only non-terminal state.
const (
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// DoctorSummary is the doctor snapshot embedded in an appointment so past
// records stay stable when the doctor's profile changes.
type DoctorSummary struct {
	Name       string  `bson:"name" json:"name"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Image      string  `bson:"image,omitempty" json:"image,omitempty"`
	Address    Address `bson:"address" json:"address"`
}

// PatientSummary is the patient snapshot embedded in an appointment.
type PatientSummary struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Appointment is a reserved (doctor, date, time) unit. Appointments are
// never deleted; cancellation and completion are terminal status flips.
// Amount is the fee snapshot captured at booking time.
type Appointment struct {
	ID          string         `bson:"id" json:"id"`
	DoctorID    string         `bson:"doctorId" json:"doctorId"`
	PatientID   string         `bson:"patientId" json:"patientId"`
	SlotDate    string         `bson:"slotDate" json:"slotDate"`
	SlotTime    string         `bson:"slotTime" json:"slotTime"`
	Amount      float64        `bson:"amount" json:"amount"`
	Currency    string         `bson:"currency" json:"currency"`
	Doctor      DoctorSummary  `bson:"doctor" json:"doctor"`
	Patient     PatientSummary `bson:"patient" json:"patient"`
	Cancelled   bool           `bson:"cancelled" json:"cancelled"`
	IsCompleted bool           `bson:"isCompleted" json:"isCompleted"`
	Payment     bool           `bson:"payment" json:"payment"`
	PaymentID   string         `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Status derives the lifecycle state from the terminal flags.
func (a *Appointment) Status() string {
	switch {
	case a.Cancelled:
		return StatusCancelled
	case a.IsCompleted:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Terminal reports whether the appointment can no longer change state.
func (a *Appointment) Terminal() bool {
	return a.Cancelled || a.IsCompleted
}
