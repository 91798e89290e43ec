package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/entity"
)

// SuccessResponse wraps a successful API result
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse wraps an API error. Code is a stable machine-readable
// identifier so clients can distinguish, say, a full schedule from a repeat
// registration without parsing the message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

// respondError maps domain errors to HTTP statuses. Conflicts with the
// current ledger state are 409, broken slot configuration is 422, missing
// records are 404, everything unexpected is 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, entity.ErrDuplicateRegistration):
		status, code = http.StatusConflict, "duplicate_registration"
	case errors.Is(err, entity.ErrSlotsExhausted):
		status, code = http.StatusConflict, "slots_exhausted"
	case errors.Is(err, entity.ErrEventArchived):
		status, code = http.StatusConflict, "event_archived"
	case errors.Is(err, entity.ErrTimeSlotExists):
		status, code = http.StatusConflict, "time_slot_exists"
	case errors.Is(err, entity.ErrNoTimeSlotsConfigured):
		status, code = http.StatusUnprocessableEntity, "no_time_slots_configured"
	case errors.Is(err, entity.ErrInvalidSlotConfig):
		status, code = http.StatusUnprocessableEntity, "invalid_slot_configuration"
	case errors.Is(err, entity.ErrEventDates):
		status, code = http.StatusBadRequest, "invalid_event_dates"
	case errors.Is(err, entity.ErrInvalidNote):
		status, code = http.StatusBadRequest, "invalid_note"
	case errors.Is(err, entity.ErrEventNotFound):
		status, code = http.StatusNotFound, "event_not_found"
	case errors.Is(err, entity.ErrTimeSlotNotFound):
		status, code = http.StatusNotFound, "time_slot_not_found"
	case errors.Is(err, entity.ErrTalentNotFound):
		status, code = http.StatusNotFound, "talent_not_found"
	case errors.Is(err, entity.ErrParticipationNotFound):
		status, code = http.StatusNotFound, "participation_not_found"
	}

	c.JSON(status, ErrorResponse{
		Success: false,
		Code:    code,
		Error:   err.Error(),
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Code:    "bad_request",
		Error:   message,
	})
}
