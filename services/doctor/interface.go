package doctor

import (
	"context"
	"mime/multipart"

	"medibook/models"
)

// RegisterDoctorRequest is the admin-side payload for adding a doctor.
type RegisterDoctorRequest struct {
	Name       string         `form:"name" binding:"required"`
	Email      string         `form:"email" binding:"required,email"`
	Speciality string         `form:"speciality" binding:"required"`
	Degree     string         `form:"degree" binding:"required"`
	Experience string         `form:"experience" binding:"required"`
	About      string         `form:"about" binding:"required"`
	Fees       float64        `form:"fees" binding:"required,gt=0"`
	Address    models.Address `form:"-"`
}

// UpdateDoctorProfileRequest carries the fields a doctor may edit.
type UpdateDoctorProfileRequest struct {
	Fees      *float64        `json:"fees,omitempty"`
	About     *string         `json:"about,omitempty"`
	Address   *models.Address `json:"address,omitempty"`
	Available *bool           `json:"available,omitempty"`
}

// AuthResponse is returned on successful doctor sign-in.
type AuthResponse struct {
	Token  string         `json:"token"`
	Doctor *models.Doctor `json:"doctor"`
}

// DoctorService manages doctor accounts and profiles.
type DoctorService interface {
	Register(ctx context.Context, req RegisterDoctorRequest, image multipart.File) (*models.Doctor, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(id string) (*models.Doctor, error)
	GetAll() ([]models.Doctor, error)
	UpdateProfile(id string, req UpdateDoctorProfileRequest) error
	SetAvailability(id string, available bool) error
}
