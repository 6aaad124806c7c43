package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotify/handlers"
	"slotify/middleware"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Blocked      *handlers.BlockedPeriodHandler
	Booking      *handlers.BookingHandler
	Members      *handlers.MemberHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	// Booking flow (client app): slot queries and booking confirmation.
	api := r.Group("/api")
	{
		api.GET("/availability", hb.Availability.GetAvailableSlots)
		api.GET("/providers/:id/members", hb.Members.ListActiveMembers)

		api.POST("/bookings", middleware.FirebaseAuthMiddleware(), hb.Booking.ConfirmBooking)
		api.POST("/bookings/:id/cancel", middleware.FirebaseAuthMiddleware(), hb.Booking.CancelBooking)
	}

	// Pro surface: blocking time off requires a verified session.
	pro := r.Group("/api/members")
	pro.Use(middleware.FirebaseAuthMiddleware())
	{
		pro.POST("/blocked-periods", hb.Blocked.CreateBlockedPeriod)
		pro.DELETE("/:memberId/blocked-periods/:id", hb.Blocked.DeleteBlockedPeriod)
	}
}
