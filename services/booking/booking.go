package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	bookingRepo "medibook/database/repository/booking"
	doctorRepo "medibook/database/repository/doctor"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/notification"
	"medibook/utils"
)

// maxReserveAttempts bounds retries of the reservation transaction on
// transient storage errors. Conflict losses are never retried.
const maxReserveAttempts = 3

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	DoctorRepo doctorRepo.DoctorRepository
	UserRepo   userRepo.UserRepository
	ApptRepo   appointmentRepo.AppointmentRepository
	Repo       bookingRepo.BookingRepository
	Notifier   notification.NotificationService
	Quarantine Quarantine
	Currency   string

	// Now is the wall clock; overridable in tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListAvailableSlots returns the doctor's open slots over the booking horizon.
func (s *DefaultBookingService) ListAvailableSlots(ctx context.Context, doctorID string) ([]models.DaySlots, error) {
	doc, err := s.DoctorRepo.GetByID(doctorID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if doc == nil {
		return nil, NewValidationError("not_found", "doctor %s not found", doctorID)
	}
	return AvailableSlots(doc, s.now()), nil
}

// BookSlot is the single write-path authority for reservations. Precondition
// checks are advisory; the reservation transaction re-checks them
// atomically, so a race between two requests for the same slot produces
// exactly one success.
func (s *DefaultBookingService) BookSlot(ctx context.Context, req BookSlotRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	day, err := models.ParseDayKey(req.SlotDate)
	if err != nil {
		return nil, NewValidationError("bad_input", "%v", err)
	}
	clock, err := models.ParseTimeLabel(req.SlotTime)
	if err != nil {
		return nil, NewValidationError("bad_input", "%v", err)
	}
	// Re-format through the canonical layout so a parseable but
	// non-canonical label ("00:30 AM") cannot enter the booked set verbatim.
	req.SlotTime = models.FormatTimeLabel(clock)

	if s.Quarantine != nil {
		blocked, err := s.Quarantine.IsBlocked(ctx, req.DoctorID, day.String())
		if err != nil {
			logger.Warn("quarantine check failed", zap.Error(err))
		} else if blocked {
			return nil, &IntegrityError{Message: fmt.Sprintf(
				"bookings for doctor %s on %s are suspended pending investigation", req.DoctorID, day)}
		}
	}

	doc, err := s.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if doc == nil {
		return nil, NewValidationError("not_found", "doctor %s not found", req.DoctorID)
	}
	if !doc.Available {
		return nil, &UnavailableError{Message: "doctor unavailable"}
	}
	if doc.SlotTaken(day.String(), req.SlotTime) {
		return nil, &ConflictError{Message: "slot unavailable"}
	}

	patient, err := s.UserRepo.GetByID(req.PatientID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if patient == nil {
		return nil, NewValidationError("not_found", "patient %s not found", req.PatientID)
	}

	now := s.now()
	appt := &models.Appointment{
		ID:        uuid.New().String(),
		DoctorID:  doc.ID,
		PatientID: patient.ID,
		SlotDate:  day.String(),
		SlotTime:  req.SlotTime,
		Amount:    doc.Fees, // fee snapshot; later fee changes do not touch past invoices
		Currency:  s.Currency,
		Doctor: models.DoctorSummary{
			Name:       doc.Name,
			Speciality: doc.Speciality,
			Image:      doc.Image,
			Address:    doc.Address,
		},
		Patient: models.PatientSummary{
			Name:  patient.Name,
			Email: patient.Email,
			Phone: patient.Phone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reserveWithRetry(ctx, appt); err != nil {
		return nil, err
	}

	if err := s.verifyReservation(ctx, appt); err != nil {
		return nil, err
	}

	logger.Info("slot booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("slotDate", appt.SlotDate),
		zap.String("slotTime", appt.SlotTime),
	)

	s.notifyBooked(appt)
	return appt, nil
}

// reserveWithRetry runs the reservation transaction, retrying a bounded
// number of times on transient storage errors with backoff. A conflict loss
// surfaces immediately.
func (s *DefaultBookingService) reserveWithRetry(ctx context.Context, appt *models.Appointment) error {
	var lastErr error
	for attempt := 1; attempt <= maxReserveAttempts; attempt++ {
		err := s.Repo.Reserve(ctx, appt)
		if err == nil {
			return nil
		}
		if err == bookingRepo.ErrSlotUnavailable {
			return &ConflictError{Message: "slot unavailable"}
		}
		lastErr = classifyStorageErr(err)
		if !IsTransient(lastErr) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return &TransientError{Err: ctx.Err()}
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return lastErr
}

// verifyReservation re-reads the booked-slot set after a reported success.
// A mismatch means the atomic-update contract was violated: the doctor/day
// pair is quarantined and the caller gets an IntegrityError.
func (s *DefaultBookingService) verifyReservation(ctx context.Context, appt *models.Appointment) error {
	reserved, err := s.Repo.VerifyReserved(ctx, appt.DoctorID, appt.SlotDate, appt.SlotTime)
	if err != nil {
		// The reservation itself committed; a failed read here is not an
		// integrity violation.
		utils.GetLogger().Warn("reservation verify read failed", zap.Error(err))
		return nil
	}
	if reserved {
		return nil
	}

	logger := utils.GetLogger()
	logger.Error("reservation integrity violation",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("slotDate", appt.SlotDate),
		zap.String("slotTime", appt.SlotTime),
	)
	if s.Quarantine != nil {
		if qerr := s.Quarantine.Block(ctx, appt.DoctorID, appt.SlotDate); qerr != nil {
			logger.Error("failed to quarantine booking day", zap.Error(qerr))
		}
	}
	return &IntegrityError{Message: fmt.Sprintf(
		"appointment %s recorded but slot %s %s is not in the booked set", appt.ID, appt.SlotDate, appt.SlotTime)}
}

// CancelBooking releases a reserved slot. The status flip and the slot
// removal are applied as one unit by the booking repository.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, appointmentID string, actor Actor) (*models.Appointment, error) {
	appt, err := s.ApptRepo.GetByID(appointmentID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if appt == nil {
		return nil, NewValidationError("not_found", "appointment %s not found", appointmentID)
	}

	switch actor.Role {
	case "admin":
	case "doctor":
		if appt.DoctorID != actor.ID {
			return nil, NewValidationError("forbidden", "appointment belongs to another doctor")
		}
	default:
		if appt.PatientID != actor.ID {
			return nil, NewValidationError("forbidden", "appointment belongs to another patient")
		}
	}

	if appt.Terminal() {
		return nil, NewValidationError("invalid_state", "appointment is already %s", appt.Status())
	}

	if err := s.Repo.Cancel(ctx, appt); err != nil {
		if err == bookingRepo.ErrAlreadyFinal {
			return nil, NewValidationError("invalid_state", "appointment is already cancelled or completed")
		}
		return nil, classifyStorageErr(err)
	}
	appt.Cancelled = true
	appt.UpdatedAt = s.now()

	utils.GetLogger().Info("booking cancelled",
		zap.String("appointmentId", appt.ID),
		zap.String("by", actor.Role),
	)

	s.notifyCancelled(appt)
	return appt, nil
}

// CompleteAppointment is the doctor-side terminal transition; the slot stays
// in the booked set so the time remains blocked.
func (s *DefaultBookingService) CompleteAppointment(ctx context.Context, appointmentID, doctorID string) error {
	if err := s.ApptRepo.MarkCompleted(appointmentID, doctorID); err != nil {
		if err == appointmentRepo.ErrInvalidTransition {
			return NewValidationError("invalid_state", "appointment cannot be completed")
		}
		return classifyStorageErr(err)
	}
	return nil
}

// Notification failures never affect the booking outcome.

func (s *DefaultBookingService) notifyBooked(appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendBookingConfirmation(appt); err != nil {
		utils.GetLogger().Warn("failed to queue booking confirmation", zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyCancelled(appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendCancellationNotice(appt); err != nil {
		utils.GetLogger().Warn("failed to queue cancellation notice", zap.Error(err))
	}
}
