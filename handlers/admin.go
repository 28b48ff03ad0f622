package handlers

import (
	"net/http"
	"strconv"
	"time"

	attendanceRepo "deskhive/database/repository/attendance"
	bookingRepo "deskhive/database/repository/booking"
	profileRepo "deskhive/database/repository/profile"
	"deskhive/services/booking"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes customer, booking and attendance views for staff.
type AdminHandler struct {
	Profiles   profileRepo.ProfileRepository
	Bookings   bookingRepo.BookingRepository
	Attendance attendanceRepo.AttendanceRepository
	Logger     *zap.Logger
	Zone       *time.Location
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(profiles profileRepo.ProfileRepository, bookings bookingRepo.BookingRepository, attendance attendanceRepo.AttendanceRepository, logger *zap.Logger, zone *time.Location) *AdminHandler {
	return &AdminHandler{Profiles: profiles, Bookings: bookings, Attendance: attendance, Logger: logger, Zone: zone}
}

// ListCustomers handles GET /api/admin/customers?search=&limit=&offset=.
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}

	profiles, err := h.Profiles.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetCustomer handles GET /api/admin/customers/:id.
func (h *AdminHandler) GetCustomer(c *gin.Context) {
	profile, err := h.Profiles.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch customer", err.Error())
		return
	}
	if profile == nil {
		utils.JSONError(c, http.StatusNotFound, "customer not found", "")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListBookings handles GET /api/admin/bookings?from=&to=, ordered oldest
// start date first.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if _, err := booking.ParseDate(from, h.Zone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}
	if _, err := booking.ParseDate(to, h.Zone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	bookings, err := h.Bookings.ListByStartDateRange(c.Request.Context(), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AttendanceMetrics handles GET /api/admin/metrics/attendance?from=&to=,
// returning daily check-in counts for the window.
func (h *AdminHandler) AttendanceMetrics(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if _, err := booking.ParseDate(from, h.Zone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}
	if _, err := booking.ParseDate(to, h.Zone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	counts, err := h.Attendance.CountPerDay(c.Request.Context(), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to aggregate attendance", err.Error())
		return
	}
	c.JSON(http.StatusOK, counts)
}
