package routes

import (
	"time"

	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterProviderRoutes registers provider profile and schedule endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public: registration and client-facing slot/booking endpoints.
		api.POST("", hb.RegisterProvider)
		api.GET("/:providerID/slots", hb.GetSlots)
		api.POST("/:providerID/bookings", hb.CreateBooking)

		protected := api.Group("/:providerID")
		protected.Use(middleware.JWTAuthProviderMiddleware())
		protected.GET("", hb.GetProvider)
		protected.PUT("/availability", hb.SetAvailability)
		protected.POST("/blocked", hb.AddBlockedRange)
		protected.DELETE("/blocked/:blockID", hb.RemoveBlockedRange)
		protected.PUT("/offerings", hb.SetOfferings)
		protected.GET("/bookings", hb.ListBookings)
	}
}

// RegisterBookingRoutes registers booking lifecycle endpoints. Clients act
// through their cancellation token; ID-addressed routes belong to the provider.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("/token/:token", hb.GetBookingByToken)
		api.PUT("/token/:token/reschedule", hb.RescheduleByToken)
		api.POST("/cancel/:token", hb.CancelByToken)

		owned := api.Group("/:bookingID")
		owned.Use(middleware.JWTAuthProviderMiddleware())
		owned.GET("", hb.GetBooking)
		owned.PUT("/reschedule", hb.RescheduleBooking)
		owned.POST("/cancel", hb.CancelBooking)
		owned.PATCH("", hb.UpdateBooking)
	}
}

// SetupRouter initializes the Gin router with middleware and all routes.
func SetupRouter(hb *handlers.HandlerBundle, maxRequestsPerMin int) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	return r
}
