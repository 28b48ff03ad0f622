package handlers

import (
	"errors"
	"net/http"
	"time"

	seatRepo "deskhive/database/repository/seat"
	"deskhive/models"
	"deskhive/services/booking"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatHandler exposes the seat map and admin seat management.
type SeatHandler struct {
	Svc    booking.BookingService
	Seats  seatRepo.SeatRepository
	Logger *zap.Logger
	Zone   *time.Location
}

// NewSeatHandler constructs a SeatHandler.
func NewSeatHandler(svc booking.BookingService, seats seatRepo.SeatRepository, logger *zap.Logger, zone *time.Location) *SeatHandler {
	return &SeatHandler{Svc: svc, Seats: seats, Logger: logger, Zone: zone}
}

// ListSeats handles GET /api/seats.
func (h *SeatHandler) ListSeats(c *gin.Context) {
	seats, err := h.Seats.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list seats", err.Error())
		return
	}
	c.JSON(http.StatusOK, seats)
}

// SeatAvailability handles GET /api/seats/availability?start=...&end=...
// It returns every seat with derived availability for the inclusive range.
func (h *SeatHandler) SeatAvailability(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if _, err := booking.ParseDate(start, h.Zone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}
	if _, err := booking.ParseDate(end, h.Zone); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}
	if end < start {
		utils.JSONError(c, http.StatusBadRequest, "invalid range", "end date precedes start date")
		return
	}

	seatMap, err := h.Svc.SeatMap(c.Request.Context(), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute seat map", err.Error())
		return
	}
	c.JSON(http.StatusOK, seatMap)
}

// CreateSeat handles POST /api/admin/seats.
func (h *SeatHandler) CreateSeat(c *gin.Context) {
	var input struct {
		SeatNumber int    `json:"seat_number" binding:"required"`
		Zone       string `json:"zone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	seat := &models.Seat{
		ID:         uuid.New().String(),
		SeatNumber: input.SeatNumber,
		Zone:       input.Zone,
		CreatedAt:  time.Now(),
	}
	if err := h.Seats.Create(c.Request.Context(), seat); err != nil {
		if errors.Is(err, seatRepo.ErrDuplicateSeatNumber) {
			utils.JSONError(c, http.StatusConflict, "seat number taken", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create seat", err.Error())
		return
	}
	c.JSON(http.StatusCreated, seat)
}

// DeleteSeat handles DELETE /api/admin/seats/:id.
func (h *SeatHandler) DeleteSeat(c *gin.Context) {
	if err := h.Seats.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to delete seat", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
