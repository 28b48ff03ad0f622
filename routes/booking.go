package routes

import (
	"deskhive/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
// The listing is anonymous-tolerant: without a token it degrades to an empty
// list instead of a 401. Every mutation requires strict auth.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	api.GET("", middleware.OptionalAuthMiddleware(), hb.Booking.ListMyBookings)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthUserMiddleware(), middleware.ProfileSyncMiddleware(hb.Profiles))
	{
		authed.POST("", hb.Booking.CreateBooking)
		authed.GET("/:id", hb.Booking.GetBooking)
		authed.PUT("/:id", hb.Booking.UpdateBooking)
		authed.POST("/:id/cancel", hb.Booking.CancelBooking)
	}

	qr := r.Group("/api/checkin")
	qr.Use(middleware.JWTAuthUserMiddleware())
	{
		qr.POST("/token", hb.Checkin.IssueToken)
		qr.GET("/history", hb.Checkin.History)
	}
}
