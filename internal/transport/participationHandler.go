package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/service"
)

type ParticipationHandler struct {
	participationService service.ParticipationService
}

func NewParticipationHandler(participationService service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participationService: participationService}
}

type attendanceRequest struct {
	HasAttended *bool `json:"has_attended" binding:"required"`
}

type selectedRequest struct {
	IsSelected *bool `json:"is_selected" binding:"required"`
}

func (h *ParticipationHandler) GetParticipation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid participation ID")
		return
	}

	participation, err := h.participationService.GetParticipation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Participation retrieved successfully",
		Data:    participation,
	})
}

func (h *ParticipationHandler) GetEventParticipations(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	participations, err := h.participationService.GetEventParticipations(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Event participations retrieved successfully",
		Data:    participations,
		Meta:    map[string]interface{}{"event_id": eventID, "total": len(participations)},
	})
}

func (h *ParticipationHandler) GetTalentParticipations(c *gin.Context) {
	talentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid talent ID")
		return
	}

	participations, err := h.participationService.GetTalentParticipations(c.Request.Context(), talentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Talent participations retrieved successfully",
		Data:    participations,
		Meta:    map[string]interface{}{"talent_id": talentID, "total": len(participations)},
	})
}

func (h *ParticipationHandler) CancelParticipation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid participation ID")
		return
	}

	if err := h.participationService.CancelParticipation(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Participation cancelled successfully",
		Meta:    map[string]interface{}{"participation_id": id},
	})
}

func (h *ParticipationHandler) SetAttendance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid participation ID")
		return
	}

	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.participationService.SetAttendance(c.Request.Context(), id, *req.HasAttended); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Attendance updated successfully",
		Meta:    map[string]interface{}{"participation_id": id},
	})
}

func (h *ParticipationHandler) SetReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid participation ID")
		return
	}

	var req service.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.participationService.SetReview(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Review saved successfully",
		Meta:    map[string]interface{}{"participation_id": id},
	})
}

func (h *ParticipationHandler) SetSelected(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid participation ID")
		return
	}

	var req selectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.participationService.SetSelected(c.Request.Context(), id, *req.IsSelected); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Selection updated successfully",
		Meta:    map[string]interface{}{"participation_id": id},
	})
}
