package user

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "medibook/database/repository/user"
	"medibook/services/storage"
	"medibook/utils"

	"medibook/models"
)

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Storage storage.StorageService
}

// Register creates a patient account and signs it in.
func (s *DefaultUserService) Register(req RegisterUserRequest) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.GetLogger().Info("user registered", zap.String("userId", usr.ID))
	return s.issueToken(usr)
}

// Authenticate verifies credentials and issues a pinned JWT.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return s.issueToken(usr)
}

func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, "patient", 72*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(usr.ID, bson.M{"tokenHash": utils.HashToken(token)}); err != nil {
		return nil, fmt.Errorf("failed to persist token hash: %w", err)
	}
	return &AuthResponse{Token: token, User: sanitize(usr)}, nil
}

// GetByID returns the user without credential fields.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", id)
	}
	return sanitize(usr), nil
}

// UpdateProfile applies a partial profile update, uploading a new profile
// image when one is supplied.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest, image multipart.File) error {
	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Gender != nil {
		update["gender"] = *req.Gender
	}
	if req.DOB != nil {
		update["dob"] = *req.DOB
	}

	if image != nil && s.Storage != nil {
		url, err := s.Storage.UploadImage(ctx, image, "users")
		if err != nil {
			return fmt.Errorf("failed to upload profile image: %w", err)
		}
		update["image"] = url
	}

	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}
	return s.Repo.UpdateSetDocument(id, update)
}

func sanitize(usr *models.User) *models.User {
	out := *usr
	out.PasswordHash = ""
	out.TokenHash = ""
	return &out
}
