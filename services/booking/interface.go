package booking

import (
	"context"

	"medibook/models"
)

// Actor identifies who is performing an operation, as resolved by the auth
// middleware.
type Actor struct {
	ID   string
	Role string // "patient", "doctor", "admin"
}

// BookSlotRequest carries a slot selection into the validator.
type BookSlotRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	PatientID string `json:"-"`
	SlotDate  string `json:"slotDate" binding:"required"`
	SlotTime  string `json:"slotTime" binding:"required"`
}

// Quarantine suspends bookings for a doctor/day pair after an integrity
// violation. IsBlocked gates the write path; Block is set by the
// post-reservation verification.
type Quarantine interface {
	Block(ctx context.Context, doctorID, dayKey string) error
	IsBlocked(ctx context.Context, doctorID, dayKey string) (bool, error)
}

// BookingService is the authority over slot listing, reservation and
// cancellation.
type BookingService interface {
	// ListAvailableSlots returns the open slots for the doctor over the
	// booking horizon, one bucket per day.
	ListAvailableSlots(ctx context.Context, doctorID string) ([]models.DaySlots, error)

	// BookSlot validates the selection and atomically reserves it. Exactly
	// one of N racing requests for the same slot succeeds; the others get a
	// ConflictError.
	BookSlot(ctx context.Context, req BookSlotRequest) (*models.Appointment, error)

	// CancelBooking releases the slot and marks the appointment cancelled.
	// Cancelling an already cancelled or completed appointment is an error.
	CancelBooking(ctx context.Context, appointmentID string, actor Actor) (*models.Appointment, error)

	// CompleteAppointment marks a pending appointment as completed by its
	// doctor. The slot stays occupied.
	CompleteAppointment(ctx context.Context, appointmentID, doctorID string) error
}
