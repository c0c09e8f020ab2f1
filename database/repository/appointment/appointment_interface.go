package appointmentRepo

import "medibook/models"

// AppointmentRepository defines data-access methods for appointment records.
// Appointments are only created through the booking repository's transaction
// and are never deleted; status flips are guarded so terminal states hold at
// the storage layer.
type AppointmentRepository interface {
	GetByID(id string) (*models.Appointment, error)
	GetByPatient(patientID string) ([]models.Appointment, error)
	GetByDoctor(doctorID string) ([]models.Appointment, error)
	GetAll() ([]models.Appointment, error)
	MarkCompleted(id, doctorID string) error
	MarkPaid(id, paymentID string) error
	Count() (int64, error)
}
