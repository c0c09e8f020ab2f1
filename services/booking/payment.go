package booking

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
)

// PaymentHandler covers the payment side of an appointment: creating the
// gateway intent and applying the success callback. Payment never
// participates in slot reservation; a confirmed callback only flips the
// appointment's payment flag.
type PaymentHandler interface {
	CreatePaymentIntent(ctx context.Context, appointmentID, patientID string) (*PaymentIntent, error)
	ConfirmPayment(ctx context.Context, appointmentID, paymentIntentID string) error
}

// PaymentIntent is the client-facing handle for completing a payment.
type PaymentIntent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// StripePaymentHandler implements PaymentHandler against Stripe.
type StripePaymentHandler struct {
	ApptRepo appointmentRepo.AppointmentRepository
	Logger   *zap.Logger
}

func NewStripePaymentHandler(apptRepo appointmentRepo.AppointmentRepository, logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{ApptRepo: apptRepo, Logger: logger}
}

// amountInCents converts a fee snapshot to the gateway's integer unit.
// Rounded, not truncated: 19.99 stored as 1998.9999... must yield 1999.
func amountInCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePaymentIntent creates a gateway intent for the appointment's fee
// snapshot. Only the appointment's own patient may pay, and only while it
// is neither cancelled nor already paid.
func (h *StripePaymentHandler) CreatePaymentIntent(ctx context.Context, appointmentID, patientID string) (*PaymentIntent, error) {
	appt, err := h.ApptRepo.GetByID(appointmentID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if appt == nil {
		return nil, NewValidationError("not_found", "appointment %s not found", appointmentID)
	}
	if appt.PatientID != patientID {
		return nil, NewValidationError("forbidden", "appointment belongs to another patient")
	}
	if appt.Cancelled {
		return nil, NewValidationError("invalid_state", "cancelled appointment cannot be paid")
	}
	if appt.Payment {
		return nil, NewValidationError("invalid_state", "appointment is already paid")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents(appt.Amount)),
		Currency: stripe.String(appt.Currency),
	}
	params.AddMetadata("appointmentId", appt.ID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	h.Logger.Info("payment intent created",
		zap.String("appointmentId", appt.ID),
		zap.String("paymentIntentId", pi.ID),
	)

	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       appt.Amount,
		Currency:     appt.Currency,
	}, nil
}

// ConfirmPayment applies a successful gateway callback. The intent is
// re-fetched from the gateway rather than trusting the client.
func (h *StripePaymentHandler) ConfirmPayment(ctx context.Context, appointmentID, paymentIntentID string) error {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return NewValidationError("invalid_state", "payment intent %s is %s, not succeeded", pi.ID, pi.Status)
	}
	if pi.Metadata["appointmentId"] != appointmentID {
		return NewValidationError("bad_input", "payment intent does not belong to this appointment")
	}

	if err := h.ApptRepo.MarkPaid(appointmentID, paymentIntentID); err != nil {
		if err == appointmentRepo.ErrInvalidTransition {
			return NewValidationError("invalid_state", "cancelled appointment cannot be paid")
		}
		return classifyStorageErr(err)
	}

	h.Logger.Info("payment confirmed",
		zap.String("appointmentId", appointmentID),
		zap.String("paymentIntentId", paymentIntentID),
	)
	return nil
}
