package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/service"
)

type TalentHandler struct {
	talentService service.TalentService
}

func NewTalentHandler(talentService service.TalentService) *TalentHandler {
	return &TalentHandler{talentService: talentService}
}

type talentRequest struct {
	UserID    *int64 `json:"user_id"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	School    string `json:"school"`
	Program   string `json:"program"`
	ResumeURL string `json:"resume_url"`
}

func (h *TalentHandler) CreateTalent(c *gin.Context) {
	var req talentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	talent := &entity.Talent{
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		School:    req.School,
		Program:   req.Program,
		ResumeURL: req.ResumeURL,
	}

	if err := h.talentService.CreateTalent(c.Request.Context(), talent); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Talent created successfully",
		Data:    talent,
	})
}

func (h *TalentHandler) GetTalent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid talent ID")
		return
	}

	talent, err := h.talentService.GetTalent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Talent retrieved successfully",
		Data:    talent,
	})
}

func (h *TalentHandler) GetAllTalents(c *gin.Context) {
	talents, err := h.talentService.GetAllTalents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Talents retrieved successfully",
		Data:    talents,
		Meta:    map[string]interface{}{"total": len(talents)},
	})
}

func (h *TalentHandler) UpdateTalent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid talent ID")
		return
	}

	var req talentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	talent := &entity.Talent{
		ID:        id,
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		School:    req.School,
		Program:   req.Program,
		ResumeURL: req.ResumeURL,
	}

	if err := h.talentService.UpdateTalent(c.Request.Context(), talent); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Talent updated successfully",
		Data:    talent,
	})
}
