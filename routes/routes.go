package routes

import (
	"net/http"
	"time"

	"fitbook/handlers"
	"fitbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTrainerRoutes registers trainer management and availability
// configuration. Writes are admin-only.
func RegisterTrainerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trainers")
	{
		api.GET("", hb.ListTrainersHandler)
		api.GET("/:trainerId", hb.GetTrainerHandler)
		api.GET("/:trainerId/availability", hb.GetAvailabilityHandler)
		api.GET("/:trainerId/slots", hb.GetDaySlotsHandler)
		api.GET("/:trainerId/slots/monthly", hb.GetMonthlyDaySlotsHandler)
		api.GET("/:trainerId/sessions", hb.ListTrainerSessionsHandler)

		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		protected.POST("", hb.CreateTrainerHandler)
		protected.PUT("/:trainerId", hb.UpdateTrainerHandler)
		protected.DELETE("/:trainerId", hb.DeleteTrainerHandler)
		protected.PUT("/:trainerId/availability", hb.SetAvailabilityHandler)
		protected.POST("/:trainerId/overrides", hb.ToggleSlotHandler)
		protected.PUT("/:trainerId/overrides", hb.SetAllOverridesHandler)
	}
}

// RegisterSessionRoutes registers session package management.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.GET("/:id", hb.GetSessionHandler)

		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		protected.POST("", hb.CreateSessionHandler)
		protected.DELETE("/:id", hb.DeleteSessionHandler)
	}
}

// RegisterBookingRoutes registers the booking write surface. Monthly routes
// are only registered when the capability is enabled.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.CreateBookingHandler)
		api.POST("/advance", hb.CreateAdvanceBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.GET("/user/:userId", hb.ListUserBookingsHandler)

		if hb.MonthlyEnabled {
			api.POST("/monthly", hb.CreateMonthlyBookingHandler)
			api.DELETE("/monthly/:id", hb.CancelMonthlyBookingHandler)
		}
	}
}

// RegisterBillingRoutes registers checkout, the provider webhook and the
// subscription lifecycle. The webhook authenticates by signature, not
// middleware.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhookHandler)

	api := r.Group("/api/subscriptions")
	{
		api.POST("/checkout", hb.StartCheckoutHandler)
		api.GET("/:id", hb.GetSubscriptionHandler)
		api.POST("/:id/pause", hb.PauseSubscriptionHandler)
		api.POST("/:id/resume", hb.ResumeSubscriptionHandler)
		api.POST("/:id/cancel", hb.CancelSubscriptionHandler)
	}
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.GET("/:userId", hb.GetUserHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterTrainerRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
}
