package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/user"
	"medibook/utils"
)

// UserHandler exposes patient account endpoints.
type UserHandler struct {
	UserService user.UserService
	ApptRepo    appointmentRepo.AppointmentRepository
}

func NewUserHandler(svc user.UserService, apptRepo appointmentRepo.AppointmentRepository) *UserHandler {
	return &UserHandler{UserService: svc, ApptRepo: apptRepo}
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req user.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.UserService.Register(req)
	if err != nil {
		utils.GetLogger().Warn("user registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.UserService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	id, ok := contextID(c, "userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	usr, err := h.UserService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PUT /api/users/profile. Accepts multipart
// form data with an optional profile image.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	id, ok := contextID(c, "userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req user.UpdateProfileRequest
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
		req.Address = &addr
	}

	file, _, err := c.Request.FormFile("image")
	if err == nil {
		defer file.Close()
	} else {
		file = nil
	}

	if err := h.UserService.UpdateProfile(c.Request.Context(), id, req, file); err != nil {
		utils.GetLogger().Warn("profile update failed", zap.String("userId", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ListMyAppointmentsHandler handles GET /api/users/appointments.
func (h *UserHandler) ListMyAppointmentsHandler(c *gin.Context) {
	id, ok := contextID(c, "userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	appts, err := h.ApptRepo.GetByPatient(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
