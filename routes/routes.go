package routes

import (
	"net/http"
	"time"

	"deskhive/handlers"
	"deskhive/middleware"

	profileRepo "deskhive/database/repository/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the route registrar wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Seats    *handlers.SeatHandler
	Payments *handlers.PaymentWebhookHandler
	Checkin  *handlers.CheckinHandler
	Admin    *handlers.AdminHandler
	Profiles profileRepo.ProfileRepository
}

// RegisterRoutes attaches every endpoint group to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)

	RegisterBookingRoutes(r, hb)
	RegisterSeatRoutes(r, hb)
	RegisterAdminRoutes(r, hb)

	// Gateway callbacks authenticate by signature, not bearer token.
	r.POST("/api/payments/webhook", hb.Payments.HandleWebhook)
}

// RegisterSeatRoutes registers the public seat map endpoints.
func RegisterSeatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/seats")
	{
		api.GET("", hb.Seats.ListSeats)
		api.GET("/availability", hb.Seats.SeatAvailability)
	}
}

// RegisterAdminRoutes registers staff-only endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthUserMiddleware(), middleware.AdminRoleMiddleware())
	{
		api.POST("/seats", hb.Seats.CreateSeat)
		api.DELETE("/seats/:id", hb.Seats.DeleteSeat)
		api.GET("/customers", hb.Admin.ListCustomers)
		api.GET("/customers/:id", hb.Admin.GetCustomer)
		api.GET("/bookings", hb.Admin.ListBookings)
		api.GET("/metrics/attendance", hb.Admin.AttendanceMetrics)
		api.POST("/checkin/verify", hb.Checkin.Verify)
	}
}
