package routes

import (
	"net/http"
	"time"

	"belissimo/handlers"
	"belissimo/middleware"
	"belissimo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.POST("", handlers.CreateBooking)
		api.GET("", handlers.ListBookings)
		api.GET("/availability/check", handlers.CheckAvailability)
		api.GET("/:id", handlers.GetBooking)
		api.PATCH("/:id/cancel", handlers.CancelBooking)
	}
}

// RegisterAIRoutes registers the conversational endpoints. Both paths serve
// the same handler; older clients still post to /message.
func RegisterAIRoutes(r *gin.Engine) {
	api := r.Group("/api/ai")
	{
		api.POST("/respond", handlers.RespondToMessage)
		api.POST("/message", handlers.RespondToMessage)
	}
}

// RegisterPaymentRoutes registers checkout-session creation and the provider
// webhook.
func RegisterPaymentRoutes(r *gin.Engine) {
	api := r.Group("/api/payments")
	{
		api.POST("/create-session", handlers.CreateCheckoutSession)
		api.POST("/webhook", handlers.StripeWebhook)
	}
}

// RegisterServiceRoutes registers the public service catalog.
func RegisterServiceRoutes(r *gin.Engine) {
	r.GET("/api/services", handlers.ListServices)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterBookingRoutes(r)
	RegisterAIRoutes(r)
	RegisterPaymentRoutes(r)
	RegisterServiceRoutes(r)
	RegisterHealthRoute(r)
}
