package notification

import "medibook/models"

// NotificationService queues fire-and-forget emails. Enqueue failures are
// reported to the caller for logging only; they must never roll back the
// operation that triggered the notification.
type NotificationService interface {
	SendDoctorWelcome(doctor *models.Doctor, tempPassword string) error
	SendBookingConfirmation(appt *models.Appointment) error
	SendCancellationNotice(appt *models.Appointment) error
}
