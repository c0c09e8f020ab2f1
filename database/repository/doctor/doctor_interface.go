package doctorRepo

import (
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DoctorRepository defines data-access methods for doctor documents.
// Slot mutation is deliberately absent: the booked-slot set is written only
// through the booking repository's transactional updates.
type DoctorRepository interface {
	Create(doc *models.Doctor) error
	Update(doc *models.Doctor) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Doctor, error)
	GetByEmail(email string) (*models.Doctor, error)
	GetAll() ([]models.Doctor, error)
	SetAvailability(id string, available bool) error
	Count() (int64, error)
}
