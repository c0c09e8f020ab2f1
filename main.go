package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepoPkg "medibook/database/repository/appointment"
	bookingRepoPkg "medibook/database/repository/booking"
	doctorRepoPkg "medibook/database/repository/doctor"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/doctor"
	"medibook/services/notification"
	"medibook/services/user"
	"medibook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	stripe.Key = config.AppConfig.StripeKey

	// Outbound mail: handlers enqueue, the asynq worker delivers.
	mailQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	defer mailQueue.Close()
	notifier := notification.NewAsynqEmailService(mailQueue)
	cron.InitMailWorker(notification.NewSMTPSender(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPFrom,
	))

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	usrRepo := userRepoPkg.NewMongoUserRepo()
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	bkgRepo := bookingRepoPkg.NewMongoBookingRepo()

	// Services.
	userService := &user.DefaultUserService{
		Repo:    usrRepo,
		Storage: storageService,
	}
	doctorService := &doctor.DefaultDoctorService{
		Repo:     docRepo,
		Storage:  storageService,
		Notifier: notifier,
	}
	bookingService := &booking.DefaultBookingService{
		DoctorRepo: docRepo,
		UserRepo:   usrRepo,
		ApptRepo:   apptRepo,
		Repo:       bkgRepo,
		Notifier:   notifier,
		Quarantine: &utils.BookingQuarantine{Client: utils.GetCacheClient()},
		Currency:   config.AppConfig.Currency,
	}
	paymentHandler := booking.NewStripePaymentHandler(apptRepo, logger)

	// Handlers.
	userHandler := handlers.NewUserHandler(userService, apptRepo)
	doctorHandler := handlers.NewDoctorHandler(doctorService, bookingService, apptRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService, paymentHandler, logger)
	adminHandler := handlers.NewAdminHandler(doctorService, bookingService, docRepo, usrRepo, apptRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   usrRepo,
		DoctorRepo: docRepo,

		// Patient endpoints.
		RegisterUserHandler:     userHandler.RegisterUserHandler,
		AuthenticateUserHandler: userHandler.AuthenticateUserHandler,
		GetProfileHandler:       userHandler.GetProfileHandler,
		UpdateProfileHandler:    userHandler.UpdateProfileHandler,
		ListMyAppointments:      userHandler.ListMyAppointmentsHandler,

		// Public doctor directory.
		ListDoctorsHandler: doctorHandler.ListDoctorsHandler,
		GetDoctorHandler:   doctorHandler.GetDoctorHandler,
		ListSlotsHandler:   bookingHandler.ListAvailableSlots,

		// Doctor console endpoints.
		AuthenticateDoctorHandler:  doctorHandler.AuthenticateDoctorHandler,
		UpdateDoctorProfileHandler: doctorHandler.UpdateDoctorProfileHandler,
		ToggleAvailabilityHandler:  doctorHandler.ToggleAvailabilityHandler,
		ListDoctorAppointments:     doctorHandler.ListDoctorAppointmentsHandler,
		CompleteAppointmentHandler: doctorHandler.CompleteAppointmentHandler,
		DoctorCancelHandler:        doctorHandler.CancelAppointmentHandler,
		DoctorDashboardHandler:     doctorHandler.DoctorDashboardHandler,

		// Booking endpoints.
		BookSlotHandler:            bookingHandler.BookSlot,
		CancelBookingHandler:       bookingHandler.CancelBooking,
		CreatePaymentIntentHandler: bookingHandler.CreatePaymentIntent,
		ConfirmPaymentHandler:      bookingHandler.ConfirmPayment,

		// Admin endpoints.
		AdminLoginHandler:      adminHandler.AdminLoginHandler,
		AddDoctorHandler:       adminHandler.AddDoctorHandler,
		AllDoctorsHandler:      adminHandler.AllDoctorsHandler,
		AllAppointmentsHandler: adminHandler.AllAppointmentsHandler,
		AdminCancelHandler:     adminHandler.CancelAppointmentHandler,
		SetDoctorAvailability:  adminHandler.SetDoctorAvailabilityHandler,
		AdminDashboardHandler:  adminHandler.AdminDashboardHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	database.CloseDB(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
