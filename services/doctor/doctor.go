package doctor

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/storage"
	"medibook/utils"

	"github.com/google/uuid"
)

// DefaultDoctorService is the production implementation of DoctorService.
type DefaultDoctorService struct {
	Repo     doctorRepo.DoctorRepository
	Storage  storage.StorageService
	Notifier notification.NotificationService
}

// Register creates a doctor account with a generated password, uploads the
// profile image, and queues the credentials mail. A failed mail is logged
// and never rolls back the account.
func (s *DefaultDoctorService) Register(ctx context.Context, req RegisterDoctorRequest, image multipart.File) (*models.Doctor, error) {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing doctor: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a doctor with email %s already exists", req.Email)
	}

	password, err := generatePassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var imageURL string
	if image != nil && s.Storage != nil {
		imageURL, err = s.Storage.UploadImage(ctx, image, "doctors")
		if err != nil {
			return nil, fmt.Errorf("failed to upload doctor image: %w", err)
		}
	}

	doc := &models.Doctor{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Image:        imageURL,
		Speciality:   req.Speciality,
		Degree:       req.Degree,
		Experience:   req.Experience,
		About:        req.About,
		Fees:         req.Fees,
		Address:      req.Address,
		Available:    true,
		Window:       models.DefaultDailyWindow(),
		SlotsBooked:  map[string][]string{},
		PasswordHash: string(hash),
	}

	if err := s.Repo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendDoctorWelcome(doc, password); err != nil {
			logger.Warn("failed to queue doctor welcome mail",
				zap.String("doctorId", doc.ID), zap.Error(err))
		}
	}

	logger.Info("doctor registered", zap.String("doctorId", doc.ID), zap.String("email", doc.Email))
	return sanitize(doc), nil
}

// Authenticate verifies credentials and issues a pinned JWT.
func (s *DefaultDoctorService) Authenticate(email, password string) (*AuthResponse, error) {
	doc, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(doc.ID, "doctor", 72*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(doc.ID, bson.M{"tokenHash": utils.HashToken(token)}); err != nil {
		return nil, fmt.Errorf("failed to persist token hash: %w", err)
	}

	return &AuthResponse{Token: token, Doctor: sanitize(doc)}, nil
}

// GetByID returns the doctor without credential fields.
func (s *DefaultDoctorService) GetByID(id string) (*models.Doctor, error) {
	doc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("doctor with id %s not found", id)
	}
	return sanitize(doc), nil
}

// GetAll returns all doctors without credential fields.
func (s *DefaultDoctorService) GetAll() ([]models.Doctor, error) {
	docs, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].PasswordHash = ""
		docs[i].TokenHash = ""
	}
	return docs, nil
}

// UpdateProfile applies a partial profile update.
func (s *DefaultDoctorService) UpdateProfile(id string, req UpdateDoctorProfileRequest) error {
	update := bson.M{}
	if req.Fees != nil {
		update["fees"] = *req.Fees
	}
	if req.About != nil {
		update["about"] = *req.About
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Available != nil {
		update["available"] = *req.Available
	}
	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}
	return s.Repo.UpdateSetDocument(id, update)
}

// SetAvailability toggles whether the doctor accepts new bookings. Confirmed
// future appointments are left as they are.
func (s *DefaultDoctorService) SetAvailability(id string, available bool) error {
	return s.Repo.SetAvailability(id, available)
}

func sanitize(doc *models.Doctor) *models.Doctor {
	out := *doc
	out.PasswordHash = ""
	out.TokenHash = ""
	return &out
}

// generatePassword returns a random initial password for a new doctor account.
func generatePassword() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
