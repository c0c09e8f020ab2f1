package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/services/booking"
)

// BookingHandler exposes the slot listing, reservation, cancellation and
// payment endpoints.
type BookingHandler struct {
	Service  booking.BookingService
	Payments booking.PaymentHandler
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, payments booking.PaymentHandler, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Payments: payments, Logger: logger}
}

// ListAvailableSlots handles GET /api/doctors/:id/slots.
func (h *BookingHandler) ListAvailableSlots(c *gin.Context) {
	doctorID := c.Param("id")
	days, err := h.Service.ListAvailableSlots(c.Request.Context(), doctorID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "days": days})
}

// BookSlot handles POST /api/booking. The patient comes from the token, not
// the payload.
func (h *BookingHandler) BookSlot(c *gin.Context) {
	patientID, ok := contextID(c, "userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req booking.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.PatientID = patientID

	appt, err := h.Service.BookSlot(c.Request.Context(), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked", "appointment": appt})
}

// CancelBooking handles DELETE /api/booking/:id for patients.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	patientID, ok := contextID(c, "userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	appt, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), booking.Actor{ID: patientID, Role: "patient"})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled", "appointment": appt})
}

// CreatePaymentIntent handles POST /api/booking/:id/payment-intent.
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	patientID, ok := contextID(c, "userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	intent, err := h.Payments.CreatePaymentIntent(c.Request.Context(), c.Param("id"), patientID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// ConfirmPayment handles POST /api/booking/:id/confirm-payment after the
// gateway redirect.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var req struct {
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Payments.ConfirmPayment(c.Request.Context(), c.Param("id"), req.PaymentIntentID); err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded"})
}
