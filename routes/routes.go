package routes

import (
	"net/http"
	"strings"
	"time"

	"vibezone/config"
	"vibezone/handlers"
	"vibezone/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	Booking      *handlers.BookingHandler
	Webhook      *handlers.WebhookHandler
	Sweep        *handlers.SweepHandler
	Verification *handlers.VerificationHandler
	Admin        *handlers.AdminHandler
}

// RegisterBookingRoutes registers the public booking intake endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.SubmitBooking)
		api.GET("/availability", hb.Booking.Availability)
		api.GET("/status", hb.Booking.BookingStatus)
	}
}

// RegisterCheckoutRoutes registers the deposit checkout endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/checkout")
	{
		api.POST("/session", hb.Booking.StartCheckout)
	}
}

// RegisterWebhookRoutes registers the payment processor callback. No CORS
// or rate limiting applies here; the signature check is the gate.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.Webhook.HandleStripeWebhook)
}

// RegisterSweepRoutes registers the secret-guarded sweep trigger.
func RegisterSweepRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/sweep", hb.Sweep.RunSweep)
}

// RegisterVerificationRoutes registers email verification endpoints.
func RegisterVerificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/verification")
	{
		api.POST("/request", hb.Verification.RequestCode)
		api.POST("/verify", hb.Verification.VerifyCode)
	}
}

// RegisterAdminRoutes registers the operator endpoints behind JWT auth.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("/bookings", hb.Admin.ListBookings)
		api.POST("/bookings/:id/confirm", hb.Admin.ConfirmBooking)
		api.POST("/bookings/:id/cancel", hb.Admin.CancelBooking)
		api.POST("/bookings/:id/expire", hb.Admin.ExpireBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm VibeZone"})
	})
}

// RegisterRoutes attaches CORS and every route group to the engine.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	origins := []string{"*"}
	if config.AppConfig.CORSOrigins != "" {
		origins = strings.Split(config.AppConfig.CORSOrigins, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterSweepRoutes(r, hb)
	RegisterVerificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
