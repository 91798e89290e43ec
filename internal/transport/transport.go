package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobgate/jobgate-backend/internal/transport/middleware"
)

func InitRoutes(
	eventHandler *EventHandler,
	registrationHandler *RegistrationHandler,
	participationHandler *ParticipationHandler,
	talentHandler *TalentHandler,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		// Event routes
		events := api.Group("/events")
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
			events.GET("/:id/stats", eventHandler.GetEventStats)

			// Time slot routes
			events.POST("/:id/time-slots", eventHandler.AddTimeSlot)
			events.GET("/:id/time-slots", eventHandler.GetTimeSlots)
			events.DELETE("/:id/time-slots/:slot_id", eventHandler.DeleteTimeSlot)

			// Registration
			events.POST("/:id/register", registrationHandler.Register)
			events.GET("/:id/participations", participationHandler.GetEventParticipations)
		}

		// Participation routes
		participations := api.Group("/participations")
		{
			participations.GET("/:id", participationHandler.GetParticipation)
			participations.DELETE("/:id", participationHandler.CancelParticipation)
			participations.PATCH("/:id/attendance", participationHandler.SetAttendance)
			participations.PATCH("/:id/review", participationHandler.SetReview)
			participations.PATCH("/:id/selected", participationHandler.SetSelected)
		}

		// Talent routes
		talents := api.Group("/talents")
		{
			talents.POST("", talentHandler.CreateTalent)
			talents.GET("", talentHandler.GetAllTalents)
			talents.GET("/:id", talentHandler.GetTalent)
			talents.PUT("/:id", talentHandler.UpdateTalent)
			talents.GET("/:id/participations", participationHandler.GetTalentParticipations)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	return router
}
