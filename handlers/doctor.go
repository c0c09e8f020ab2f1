package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/services/booking"
	"medibook/services/doctor"
	"medibook/utils"
)

// DoctorHandler exposes doctor console endpoints and the public doctor
// listing.
type DoctorHandler struct {
	DoctorService  doctor.DoctorService
	BookingService booking.BookingService
	ApptRepo       appointmentRepo.AppointmentRepository
}

func NewDoctorHandler(docSvc doctor.DoctorService, bookingSvc booking.BookingService, apptRepo appointmentRepo.AppointmentRepository) *DoctorHandler {
	return &DoctorHandler{DoctorService: docSvc, BookingService: bookingSvc, ApptRepo: apptRepo}
}

// AuthenticateDoctorHandler handles POST /api/doctors/login.
func (h *DoctorHandler) AuthenticateDoctorHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.DoctorService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDoctorsHandler handles GET /api/doctors (public).
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	docs, err := h.DoctorService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": docs})
}

// GetDoctorHandler handles GET /api/doctors/:id (public).
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	doc, err := h.DoctorService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpdateDoctorProfileHandler handles PATCH /api/doctors/profile.
func (h *DoctorHandler) UpdateDoctorProfileHandler(c *gin.Context) {
	id, ok := contextID(c, "doctorID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing doctor identity"})
		return
	}

	var req doctor.UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.DoctorService.UpdateProfile(id, req); err != nil {
		utils.GetLogger().Warn("doctor profile update failed", zap.String("doctorId", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ToggleAvailabilityHandler handles PUT /api/doctors/availability.
func (h *DoctorHandler) ToggleAvailabilityHandler(c *gin.Context) {
	id, ok := contextID(c, "doctorID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing doctor identity"})
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.DoctorService.SetAvailability(id, *req.Available); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "available": *req.Available})
}

// ListDoctorAppointmentsHandler handles GET /api/doctors/appointments.
func (h *DoctorHandler) ListDoctorAppointmentsHandler(c *gin.Context) {
	id, ok := contextID(c, "doctorID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing doctor identity"})
		return
	}

	appts, err := h.ApptRepo.GetByDoctor(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CompleteAppointmentHandler handles PUT /api/doctors/appointments/:id/complete.
func (h *DoctorHandler) CompleteAppointmentHandler(c *gin.Context) {
	id, ok := contextID(c, "doctorID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing doctor identity"})
		return
	}

	if err := h.BookingService.CompleteAppointment(c.Request.Context(), c.Param("id"), id); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed"})
}

// CancelAppointmentHandler handles DELETE /api/doctors/appointments/:id.
func (h *DoctorHandler) CancelAppointmentHandler(c *gin.Context) {
	id, ok := contextID(c, "doctorID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing doctor identity"})
		return
	}

	appt, err := h.BookingService.CancelBooking(c.Request.Context(), c.Param("id"), booking.Actor{ID: id, Role: "doctor"})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled", "appointment": appt})
}

// DoctorDashboardHandler handles GET /api/doctors/dashboard.
func (h *DoctorHandler) DoctorDashboardHandler(c *gin.Context) {
	id, ok := contextID(c, "doctorID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing doctor identity"})
		return
	}

	appts, err := h.ApptRepo.GetByDoctor(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var earnings float64
	patients := map[string]struct{}{}
	for _, a := range appts {
		if a.IsCompleted || a.Payment {
			earnings += a.Amount
		}
		patients[a.PatientID] = struct{}{}
	}

	latest := appts
	if len(latest) > 5 {
		latest = latest[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"earnings":           earnings,
		"appointments":       len(appts),
		"patients":           len(patients),
		"latestAppointments": latest,
	})
}
