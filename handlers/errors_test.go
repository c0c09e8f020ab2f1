package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"medibook/services/booking"
)

func writeErrStatus(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	writeBookingError(c, err)
	return w.Code
}

func TestWriteBookingErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"bad input", booking.NewValidationError("bad_input", "malformed date"), http.StatusBadRequest},
		{"not found", booking.NewValidationError("not_found", "doctor missing"), http.StatusNotFound},
		{"forbidden", booking.NewValidationError("forbidden", "not yours"), http.StatusForbidden},
		{"invalid state", booking.NewValidationError("invalid_state", "already cancelled"), http.StatusBadRequest},
		{"conflict", &booking.ConflictError{Message: "slot unavailable"}, http.StatusConflict},
		{"unavailable", &booking.UnavailableError{Message: "doctor unavailable"}, http.StatusConflict},
		{"integrity", &booking.IntegrityError{Message: "booked set mismatch"}, http.StatusInternalServerError},
		{"transient", &booking.TransientError{Err: errors.New("timeout")}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := writeErrStatus(t, c.err); got != c.want {
			t.Fatalf("%s: expected status %d, got %d", c.name, c.want, got)
		}
	}
}
