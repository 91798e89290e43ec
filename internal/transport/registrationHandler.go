package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/service"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
}

func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register commits a talent's registration for the event in the path. The
// body may name a preferred time slot; otherwise the earliest one is used.
func (h *RegistrationHandler) Register(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	req.EventID = eventID

	result, err := h.registrationService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Registration committed successfully",
		Data:    result,
	})
}
