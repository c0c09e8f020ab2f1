package handlers

import (
	"github.com/gin-gonic/gin"

	doctorRepoPkg "medibook/database/repository/doctor"
	userRepoPkg "medibook/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct so the route
// registry takes a single dependency.
type HandlerBundle struct {
	UserRepo   userRepoPkg.UserRepository
	DoctorRepo doctorRepoPkg.DoctorRepository

	// Patient endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetProfileHandler       gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc
	ListMyAppointments      gin.HandlerFunc

	// Public doctor directory.
	ListDoctorsHandler gin.HandlerFunc
	GetDoctorHandler   gin.HandlerFunc
	ListSlotsHandler   gin.HandlerFunc

	// Doctor console endpoints.
	AuthenticateDoctorHandler  gin.HandlerFunc
	UpdateDoctorProfileHandler gin.HandlerFunc
	ToggleAvailabilityHandler  gin.HandlerFunc
	ListDoctorAppointments     gin.HandlerFunc
	CompleteAppointmentHandler gin.HandlerFunc
	DoctorCancelHandler        gin.HandlerFunc
	DoctorDashboardHandler     gin.HandlerFunc

	// Booking endpoints.
	BookSlotHandler            gin.HandlerFunc
	CancelBookingHandler       gin.HandlerFunc
	CreatePaymentIntentHandler gin.HandlerFunc
	ConfirmPaymentHandler      gin.HandlerFunc

	// Admin endpoints.
	AdminLoginHandler           gin.HandlerFunc
	AddDoctorHandler            gin.HandlerFunc
	AllDoctorsHandler           gin.HandlerFunc
	AllAppointmentsHandler      gin.HandlerFunc
	AdminCancelHandler          gin.HandlerFunc
	SetDoctorAvailability       gin.HandlerFunc
	AdminDashboardHandler       gin.HandlerFunc
}
