package models

import "time"

// User is a patient account document.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Image        string    `bson:"image,omitempty" json:"image,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      Address   `bson:"address" json:"address"`
	Gender       string    `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB          string    `bson:"dob,omitempty" json:"dob,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
