package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/booking"
	"medibook/services/doctor"
	"medibook/utils"
)

const adminTokenTTL = 24 * time.Hour

// AdminHandler exposes the back-office console: doctor onboarding,
// platform-wide listings and administrative cancellation.
type AdminHandler struct {
	DoctorService  doctor.DoctorService
	BookingService booking.BookingService
	DoctorRepo     doctorRepo.DoctorRepository
	UserRepo       userRepo.UserRepository
	ApptRepo       appointmentRepo.AppointmentRepository
}

func NewAdminHandler(docSvc doctor.DoctorService, bookingSvc booking.BookingService, docRepo doctorRepo.DoctorRepository, usrRepo userRepo.UserRepository, apptRepo appointmentRepo.AppointmentRepository) *AdminHandler {
	return &AdminHandler{
		DoctorService:  docSvc,
		BookingService: bookingSvc,
		DoctorRepo:     docRepo,
		UserRepo:       usrRepo,
		ApptRepo:       apptRepo,
	}
}

// AdminLoginHandler handles POST /api/admin/login. Admin credentials come
// from configuration, not the database.
func (h *AdminHandler) AdminLoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if req.Email != config.AppConfig.AdminEmail || req.Password != config.AppConfig.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(req.Email, "admin", adminTokenTTL)
	if err != nil {
		utils.GetLogger().Error("admin token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AddDoctorHandler handles POST /api/admin/doctors. Accepts multipart form
// data; the address arrives as a JSON-encoded form field and the profile
// image as a file part.
func (h *AdminHandler) AddDoctorHandler(c *gin.Context) {
	var req doctor.RegisterDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if addrJSON := c.PostForm("address"); addrJSON != "" {
		var addr models.Address
		if err := json.Unmarshal([]byte(addrJSON), &addr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address payload"})
			return
		}
		req.Address = addr
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor image is required"})
		return
	}
	defer file.Close()

	doc, err := h.DoctorService.Register(c.Request.Context(), req, file)
	if err != nil {
		utils.GetLogger().Warn("doctor registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Doctor added", "doctor": doc})
}

// AllDoctorsHandler handles GET /api/admin/doctors.
func (h *AdminHandler) AllDoctorsHandler(c *gin.Context) {
	docs, err := h.DoctorService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": docs})
}

// AllAppointmentsHandler handles GET /api/admin/appointments.
func (h *AdminHandler) AllAppointmentsHandler(c *gin.Context) {
	appts, err := h.ApptRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CancelAppointmentHandler handles DELETE /api/admin/appointments/:id. The
// admin may cancel any non-terminal appointment; the slot is released.
func (h *AdminHandler) CancelAppointmentHandler(c *gin.Context) {
	appt, err := h.BookingService.CancelBooking(c.Request.Context(), c.Param("id"), booking.Actor{Role: "admin"})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled", "appointment": appt})
}

// SetDoctorAvailabilityHandler handles PUT /api/admin/doctors/:id/availability.
func (h *AdminHandler) SetDoctorAvailabilityHandler(c *gin.Context) {
	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.DoctorService.SetAvailability(c.Param("id"), *req.Available); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "available": *req.Available})
}

// AdminDashboardHandler handles GET /api/admin/dashboard.
func (h *AdminHandler) AdminDashboardHandler(c *gin.Context) {
	doctors, err := h.DoctorRepo.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	patients, err := h.UserRepo.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	appointments, err := h.ApptRepo.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	latest, err := h.ApptRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(latest) > 5 {
		latest = latest[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"doctors":            doctors,
		"patients":           patients,
		"appointments":       appointments,
		"latestAppointments": latest,
	})
}
