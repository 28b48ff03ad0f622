package handlers

import (
	"errors"
	"net/http"

	"deskhive/services/booking"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// getUserID returns the authenticated subject id set by the auth middleware.
func getUserID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func getUserEmail(c *gin.Context) string {
	if v, exists := c.Get("userEmail"); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// respondBookingError maps engine errors onto HTTP statuses. Validation
// errors are 400, conflicts 409, lifecycle violations 409, ownership 403.
func respondBookingError(c *gin.Context, err error) {
	var seatErr *booking.SeatUnavailableError
	var stateErr *booking.InvalidStateError

	switch {
	case errors.Is(err, booking.ErrInvalidDurationType),
		errors.Is(err, booking.ErrNoSeatsSelected),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrClosedOnSunday):
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
	case errors.As(err, &seatErr):
		utils.JSONError(c, http.StatusConflict, "seat unavailable", seatErr.Error())
	case errors.As(err, &stateErr):
		utils.JSONError(c, http.StatusConflict, "booking no longer actionable", stateErr.Error())
	case errors.Is(err, booking.ErrSeatsContended):
		utils.JSONError(c, http.StatusConflict, "seats busy", err.Error())
	case errors.Is(err, booking.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, booking.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
	case errors.Is(err, booking.ErrSeatNotFound):
		utils.JSONError(c, http.StatusNotFound, "seat not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
	}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.UserID = getUserID(c)
	req.Email = getUserEmail(c)

	quote, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// UpdateBooking handles PUT /api/bookings/:id, permitted while pending.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req booking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), getUserID(c), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBooking handles POST /api/bookings/:id/cancel. The payment widget's
// close event also lands here when a user abandons payment.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), getUserID(c)); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), getUserID(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookings handles GET /api/bookings. Unauthenticated callers get an
// empty list rather than an error.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Svc.ListForUser(c.Request.Context(), getUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, bookings)
}
