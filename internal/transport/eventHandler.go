package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/service"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type createEventRequest struct {
	Title             string    `json:"title" binding:"required"`
	Caption           string    `json:"caption"`
	Description       string    `json:"description"`
	StartDate         time.Time `json:"start_date" binding:"required"`
	EndDate           time.Time `json:"end_date" binding:"required"`
	Location          string    `json:"location"`
	IsOnline          bool      `json:"is_online"`
	MeetingLink       string    `json:"meeting_link"`
	RecruitersNumber  int       `json:"recruiters_number"`
	IsTimeSlotEnabled bool      `json:"is_time_slot_enabled"`
}

type addTimeSlotRequest struct {
	StartTime       entity.TimeOfDay `json:"start_time" binding:"required"`
	EndTime         entity.TimeOfDay `json:"end_time" binding:"required"`
	CapacityHint    int              `json:"capacity_hint"`
	DurationMinutes int              `json:"duration_minutes"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	event := &entity.Event{
		Title:             req.Title,
		Caption:           req.Caption,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Location:          req.Location,
		IsOnline:          req.IsOnline,
		MeetingLink:       req.MeetingLink,
		RecruitersNumber:  req.RecruitersNumber,
		IsTimeSlotEnabled: req.IsTimeSlotEnabled,
	}

	if err := h.eventService.CreateEvent(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Event created successfully",
		Data:    event,
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Event retrieved successfully",
		Data:    event,
	})
}

// GetAllEvents lists events; ?q= filters by title, ?from=/&to= by date range.
func (h *EventHandler) GetAllEvents(c *gin.Context) {
	ctx := c.Request.Context()

	if q := c.Query("q"); q != "" {
		events, err := h.eventService.SearchEvents(ctx, q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Events retrieved successfully",
			Data:    events,
			Meta:    map[string]interface{}{"total": len(events), "query": q},
		})
		return
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondBadRequest(c, "Invalid 'from' date, expected RFC3339")
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respondBadRequest(c, "Invalid 'to' date, expected RFC3339")
			return
		}

		events, err := h.eventService.GetEventsByDateRange(ctx, from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Events retrieved successfully",
			Data:    events,
			Meta:    map[string]interface{}{"total": len(events)},
		})
		return
	}

	events, err := h.eventService.GetAllEvents(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Events retrieved successfully",
		Data:    events,
		Meta:    map[string]interface{}{"total": len(events)},
	})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	event := &entity.Event{
		ID:                id,
		Title:             req.Title,
		Caption:           req.Caption,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Location:          req.Location,
		IsOnline:          req.IsOnline,
		MeetingLink:       req.MeetingLink,
		RecruitersNumber:  req.RecruitersNumber,
		IsTimeSlotEnabled: req.IsTimeSlotEnabled,
	}

	if err := h.eventService.UpdateEvent(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Event updated successfully",
		Data:    event,
	})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Event deleted successfully",
		Meta:    map[string]interface{}{"event_id": id},
	})
}

func (h *EventHandler) GetEventStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	stats, err := h.eventService.GetEventStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Event stats retrieved successfully",
		Data:    stats,
	})
}

func (h *EventHandler) AddTimeSlot(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	var req addTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	slot := &entity.TimeSlot{
		EventID:         eventID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CapacityHint:    req.CapacityHint,
		DurationMinutes: req.DurationMinutes,
	}

	if err := h.eventService.AddTimeSlot(c.Request.Context(), slot); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Time slot added successfully",
		Data:    slot,
	})
}

func (h *EventHandler) GetTimeSlots(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid event ID")
		return
	}

	slots, err := h.eventService.GetTimeSlots(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Time slots retrieved successfully",
		Data:    slots,
		Meta:    map[string]interface{}{"total": len(slots)},
	})
}

func (h *EventHandler) DeleteTimeSlot(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("slot_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid time slot ID")
		return
	}

	if err := h.eventService.DeleteTimeSlot(c.Request.Context(), slotID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Time slot deleted successfully",
		Meta:    map[string]interface{}{"slot_id": slotID},
	})
}
