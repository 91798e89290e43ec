package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"duplicate registration", entity.ErrDuplicateRegistration, http.StatusConflict, "duplicate_registration"},
		{"slots exhausted", entity.ErrSlotsExhausted, http.StatusConflict, "slots_exhausted"},
		{"event archived", entity.ErrEventArchived, http.StatusConflict, "event_archived"},
		{"no time slots", entity.ErrNoTimeSlotsConfigured, http.StatusUnprocessableEntity, "no_time_slots_configured"},
		{"invalid slot config", entity.ErrInvalidSlotConfig, http.StatusUnprocessableEntity, "invalid_slot_configuration"},
		{"event not found", entity.ErrEventNotFound, http.StatusNotFound, "event_not_found"},
		{"time slot not found", entity.ErrTimeSlotNotFound, http.StatusNotFound, "time_slot_not_found"},
		{"invalid note", entity.ErrInvalidNote, http.StatusBadRequest, "invalid_note"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
