package handlers

import (
	"errors"
	"net/http"

	"consultify/services/scheduling"
	"consultify/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps the scheduling error taxonomy onto HTTP status codes.
// Conflicts are 409 so clients refresh and choose again; validation errors
// are 400; store outages are 503 and safe to retry only for reads.
func statusFor(code scheduling.ErrorCode) int {
	switch code {
	case scheduling.CodeInvalidSlot, scheduling.CodeOutOfHorizon, scheduling.CodePastSlot:
		return http.StatusBadRequest
	case scheduling.CodeSlotTaken, scheduling.CodeIllegalTransition:
		return http.StatusConflict
	case scheduling.CodeNotFound:
		return http.StatusNotFound
	case scheduling.CodeForbidden:
		return http.StatusForbidden
	case scheduling.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondSchedulingError renders a scheduling failure with its specific,
// actionable reason; anything outside the taxonomy becomes a generic 500.
func respondSchedulingError(c *gin.Context, err error) {
	var schedErr *scheduling.Error
	if errors.As(err, &schedErr) {
		utils.JSONError(c, statusFor(schedErr.Code), string(schedErr.Code), schedErr.Message)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.")
}
