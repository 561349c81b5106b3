package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GencZhushi/schedule-builder/config"
	"github.com/GencZhushi/schedule-builder/internal/api/handler"
	"github.com/GencZhushi/schedule-builder/internal/api/middleware"
	"github.com/GencZhushi/schedule-builder/pkg/redis"
)

// Setup builds the Gin engine with middleware and routes.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Ingestion sessions
		sessions := v1.Group("/sessions")
		{
			sessions.POST("/upload",
				middleware.BodyLimit(cfg.Upload.MaxBodyBytes),
				middleware.RateLimit(rdb, cfg.Upload.RateLimit, cfg.Upload.RateWindow),
				h.Session.Upload,
			)
			sessions.GET("/:id", h.Session.Get)
			sessions.DELETE("/:id", h.Session.Delete)
			sessions.PUT("/:id/lectures/:lectureId", h.Session.UpdateLecture)
			sessions.DELETE("/:id/lectures/:lectureId", h.Session.DeleteLecture)
		}

		// Classroom catalog
		classrooms := v1.Group("/classrooms")
		{
			classrooms.GET("", h.Classroom.ListClassrooms)
			classrooms.POST("", h.Classroom.CreateClassroom)
			classrooms.PUT("/:id", h.Classroom.UpdateClassroom)
			classrooms.DELETE("/:id", h.Classroom.DeleteClassroom)
		}

		// Time-slot catalog
		timeSlots := v1.Group("/time-slots")
		{
			timeSlots.GET("", h.TimeSlot.ListTimeSlots)
			timeSlots.POST("", h.TimeSlot.CreateTimeSlot)
			timeSlots.PUT("/:id", h.TimeSlot.UpdateTimeSlot)
			timeSlots.DELETE("/:id", h.TimeSlot.DeleteTimeSlot)
		}
	}

	return r
}
