package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medibook/services/booking"
)

// writeBookingError maps the booking error taxonomy onto HTTP statuses.
// Validation and conflict outcomes are expected, user-visible results;
// integrity violations surface as server errors and are never masked.
func writeBookingError(c *gin.Context, err error) {
	var (
		ve *booking.ValidationError
		ce *booking.ConflictError
		ue *booking.UnavailableError
		ie *booking.IntegrityError
		te *booking.TransientError
	)
	switch {
	case errors.As(err, &ve):
		status := http.StatusBadRequest
		switch ve.Code {
		case "not_found":
			status = http.StatusNotFound
		case "forbidden":
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": ve.Message})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": ce.Message})
	case errors.As(err, &ue):
		c.JSON(http.StatusConflict, gin.H{"error": ue.Message})
	case errors.As(err, &ie):
		c.JSON(http.StatusInternalServerError, gin.H{"error": ie.Message})
	case errors.As(err, &te):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary storage error, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// contextID fetches a string identifier set by the auth middleware.
func contextID(c *gin.Context, key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
