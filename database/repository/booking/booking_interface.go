package bookingRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrSlotUnavailable signals that the conditional reservation matched no
// document: the slot was taken between listing and booking, or the doctor
// stopped accepting bookings.
var ErrSlotUnavailable = errors.New("slot no longer available")

// ErrAlreadyFinal signals a cancel against an appointment that is already
// cancelled or completed.
var ErrAlreadyFinal = errors.New("appointment is already cancelled or completed")

// BookingRepository is the storage-side authority for slot reservations.
// Reserve and Cancel each apply their two mutations (appointment record and
// the doctor's booked-slot set) as one logical unit.
type BookingRepository interface {
	Reserve(ctx context.Context, appt *models.Appointment) error
	Cancel(ctx context.Context, appt *models.Appointment) error
	VerifyReserved(ctx context.Context, doctorID, dayKey, timeLabel string) (bool, error)
}
