package user

import (
	"context"
	"mime/multipart"

	"medibook/models"
)

// RegisterUserRequest is the patient sign-up payload.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateProfileRequest carries the fields a patient may edit.
type UpdateProfileRequest struct {
	Name    *string         `form:"name"`
	Phone   *string         `form:"phone"`
	Address *models.Address `form:"-"`
	Gender  *string         `form:"gender"`
	DOB     *string         `form:"dob"`
}

// AuthResponse is returned on successful sign-up or sign-in.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages patient accounts.
type UserService interface {
	Register(req RegisterUserRequest) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest, image multipart.File) error
}
