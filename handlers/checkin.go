package handlers

import (
	"errors"
	"net/http"

	attendanceRepo "deskhive/database/repository/attendance"
	"deskhive/services/booking"
	"deskhive/services/checkin"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckinHandler exposes QR token issuance and scanner-side verification.
type CheckinHandler struct {
	Svc    checkin.CheckinService
	Logger *zap.Logger
}

// NewCheckinHandler constructs a CheckinHandler.
func NewCheckinHandler(svc checkin.CheckinService, logger *zap.Logger) *CheckinHandler {
	return &CheckinHandler{Svc: svc, Logger: logger}
}

// IssueToken handles POST /api/checkin/token. The caller must own a confirmed
// booking; the returned token is what the client renders as a QR code.
func (h *CheckinHandler) IssueToken(c *gin.Context) {
	var input struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	token, err := h.Svc.IssueToken(c.Request.Context(), input.BookingID, getUserID(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Verify handles POST /api/checkin/verify: the admin scanner posts a scanned
// token and gets back the recorded attendance.
func (h *CheckinHandler) Verify(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Svc.CheckIn(c.Request.Context(), input.Token)
	if err != nil {
		switch {
		case errors.Is(err, checkin.ErrInvalidToken):
			utils.JSONError(c, http.StatusUnauthorized, "invalid check-in code", err.Error())
		case errors.Is(err, checkin.ErrOutsideBookedRange):
			utils.JSONError(c, http.StatusConflict, "booking does not cover today", err.Error())
		case errors.Is(err, attendanceRepo.ErrAlreadyCheckedIn):
			utils.JSONError(c, http.StatusConflict, "already checked in", err.Error())
		case errors.Is(err, booking.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
		default:
			respondBookingError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// History handles GET /api/checkin/history for the authenticated user.
func (h *CheckinHandler) History(c *gin.Context) {
	records, err := h.Svc.History(c.Request.Context(), getUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list check-ins", err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}
