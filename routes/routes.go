package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medibook/handlers"
	"medibook/middleware"
)

// RegisterUserRoutes registers patient account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (require a patient token).
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/profile", hb.GetProfileHandler)
		api.PUT("/profile", hb.UpdateProfileHandler)
		api.GET("/appointments", hb.ListMyAppointments)
	}
}

// RegisterDoctorRoutes registers the public doctor directory and the doctor
// console.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		// Public endpoints: directory browsing and slot listing.
		api.GET("", hb.ListDoctorsHandler)
		api.GET("/:id", hb.GetDoctorHandler)
		api.GET("/:id/slots", hb.ListSlotsHandler)
		api.POST("/login", hb.AuthenticateDoctorHandler)

		// Endpoints that act on the signed-in doctor's own account.
		console := api.Group("")
		console.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		console.PATCH("/profile", hb.UpdateDoctorProfileHandler)
		console.PUT("/availability", hb.ToggleAvailabilityHandler)
		console.GET("/appointments", hb.ListDoctorAppointments)
		console.PUT("/appointments/:id/complete", hb.CompleteAppointmentHandler)
		console.DELETE("/appointments/:id", hb.DoctorCancelHandler)
		console.GET("/dashboard", hb.DoctorDashboardHandler)
	}
}

// RegisterBookingRoutes sets up slot reservation and payment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		bookingGroup.POST("", hb.BookSlotHandler)
		bookingGroup.DELETE("/:id", hb.CancelBookingHandler)
		bookingGroup.POST("/:id/payment-intent", hb.CreatePaymentIntentHandler)
		bookingGroup.POST("/:id/confirm-payment", hb.ConfirmPaymentHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the back-office console.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.AdminLoginHandler)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.POST("/doctors", hb.AddDoctorHandler)
		protected.GET("/doctors", hb.AllDoctorsHandler)
		protected.PUT("/doctors/:id/availability", hb.SetDoctorAvailability)
		protected.GET("/appointments", hb.AllAppointmentsHandler)
		protected.DELETE("/appointments/:id", hb.AdminCancelHandler)
		protected.GET("/dashboard", hb.AdminDashboardHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediBook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
