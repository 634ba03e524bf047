package routes

import (
	"net/http"
	"time"

	"consultify/handlers"
	"consultify/middleware"
	"consultify/models"
	"consultify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the wired handlers for route registration.
type HandlerBundle struct {
	Booking      *handlers.BookingHandler
	Availability *handlers.AvailabilityHandler
	Admin        *handlers.AdminHandler
}

// RegisterAdvisorRoutes registers the advisor directory and availability endpoints.
func RegisterAdvisorRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/advisors")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Availability.ListAdvisors)
		api.GET("/:id/availability", hb.Availability.GetDayAvailability)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole(models.RoleClient), hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListOwnBookings)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PUT("/:id/reschedule", hb.Booking.Reschedule)
		api.PUT("/:id/status", middleware.RequireRole(models.RoleAdvisor), hb.Booking.UpdateStatus)
		api.POST("/:id/comments", hb.Booking.AppendComment)
	}
}

// RegisterAdminRoutes sets up endpoints for operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.SuperAdminMiddleware())
		api.GET("/bookings", hb.Admin.ListBookings)
		api.PUT("/bookings/:id/cancel", hb.Admin.CancelBooking)
		api.PUT("/advisors/:id", hb.Admin.UpsertAdvisor)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAdvisorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
