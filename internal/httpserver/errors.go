package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shipmart-be/internal/correction"
	"shipmart-be/internal/order"
)

// statusFor maps core errors onto HTTP statuses: missing things are 404,
// state conflicts 409, rejected input 422, a failed upstream submission 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, correction.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, correction.ErrRemovalNotConfirmed),
		errors.Is(err, correction.ErrNotEditing),
		errors.Is(err, correction.ErrConfirmInFlight):
		return http.StatusConflict
	case correction.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, correction.ErrSubmissionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
