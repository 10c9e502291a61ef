package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kerubo0/Rafiki/handlers"
	"github.com/Kerubo0/Rafiki/middleware"
	"github.com/Kerubo0/Rafiki/utils"
)

// RegisterAssistantRoutes registers the conversation endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.POST("/message", hb.ProcessMessageHandler)
	}
	voice := r.Group("/api/voice")
	{
		voice.POST("/transcribe", hb.TranscribeHandler)
	}
}

// RegisterSessionRoutes registers session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.POST("", hb.CreateSessionHandler)
		api.GET("/:id", hb.GetSessionHandler)
		api.DELETE("/:id", hb.DeleteSessionHandler)
	}
}

// RegisterBookingRoutes registers appointment booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/availability/:type", hb.AvailabilityHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id", hb.UpdateBookingHandler)
		api.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterServiceRoutes registers the service directory endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.ListServicesHandler)
		api.GET("/:type", hb.GetServiceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Rafiki",
			"deps":    utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(utils.ErrorHandler())

	RegisterHealthRoute(r)
	RegisterAssistantRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
}
