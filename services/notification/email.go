package notification

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"medibook/models"
)

// TypeEmailSend is the asynq task type for outbound email.
const TypeEmailSend = "email:send"

// AsynqEmailService queues emails onto Redis for the mail worker.
type AsynqEmailService struct {
	Client *asynq.Client
}

func NewAsynqEmailService(client *asynq.Client) *AsynqEmailService {
	return &AsynqEmailService{Client: client}
}

func (s *AsynqEmailService) enqueue(payload models.EmailPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}
	task := asynq.NewTask(TypeEmailSend, b)
	if _, err := s.Client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	return nil
}

// SendDoctorWelcome queues the credentials mail sent when an admin creates a
// doctor account.
func (s *AsynqEmailService) SendDoctorWelcome(doctor *models.Doctor, tempPassword string) error {
	body := fmt.Sprintf(
		"Welcome Dr. %s,\n\nYour profile has been added to the booking platform.\n\n"+
			"Login credentials:\n  Email: %s\n  Password: %s\n\n"+
			"Please sign in and change your password after your first login.\n",
		doctor.Name, doctor.Email, tempPassword,
	)
	return s.enqueue(models.EmailPayload{
		To:      doctor.Email,
		Subject: "Doctor Account Created - Login Credentials",
		Body:    body,
	})
}

// SendBookingConfirmation queues the patient's confirmation mail.
func (s *AsynqEmailService) SendBookingConfirmation(appt *models.Appointment) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment with Dr. %s (%s) is confirmed for %s at %s.\nFee: %.2f %s\n",
		appt.Patient.Name, appt.Doctor.Name, appt.Doctor.Speciality,
		appt.SlotDate, appt.SlotTime, appt.Amount, appt.Currency,
	)
	return s.enqueue(models.EmailPayload{
		To:      appt.Patient.Email,
		Subject: "Appointment Confirmed",
		Body:    body,
	})
}

// SendCancellationNotice queues the patient's cancellation mail.
func (s *AsynqEmailService) SendCancellationNotice(appt *models.Appointment) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment with Dr. %s on %s at %s has been cancelled.\n",
		appt.Patient.Name, appt.Doctor.Name, appt.SlotDate, appt.SlotTime,
	)
	return s.enqueue(models.EmailPayload{
		To:      appt.Patient.Email,
		Subject: "Appointment Cancelled",
		Body:    body,
	})
}
