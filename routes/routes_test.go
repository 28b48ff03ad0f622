package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deskhive/config"
	"deskhive/handlers"
	"deskhive/models"
	"deskhive/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned data keyed by user id so route tests can
// tell whose bookings were listed.
type stubBookingService struct {
	byUser map[string][]models.Booking
}

func (s *stubBookingService) Create(ctx context.Context, req booking.CreateBookingRequest) (*models.BookingQuote, error) {
	return nil, nil
}

func (s *stubBookingService) Update(ctx context.Context, bookingID, userID string, req booking.UpdateBookingRequest) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) Confirm(ctx context.Context, bookingID string) error { return nil }

func (s *stubBookingService) Cancel(ctx context.Context, bookingID, userID string) error { return nil }

func (s *stubBookingService) GetByID(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	return nil, booking.ErrBookingNotFound
}

func (s *stubBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if userID == "" {
		return []models.Booking{}, nil
	}
	return s.byUser[userID], nil
}

func (s *stubBookingService) CheckAvailability(ctx context.Context, seatIDs []string, startDate, endDate, excludeBookingID string) (*booking.AvailabilityResult, error) {
	return &booking.AvailabilityResult{Available: true}, nil
}

func (s *stubBookingService) SeatMap(ctx context.Context, startDate, endDate string) ([]models.SeatAvailability, error) {
	return nil, nil
}

func (s *stubBookingService) ExpireStale(ctx context.Context) (*models.SweepReport, error) {
	return &models.SweepReport{}, nil
}

func newBookingTestRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hb := &HandlerBundle{Booking: handlers.NewBookingHandler(svc, zap.NewNop())}
	RegisterBookingRoutes(r, hb)
	return r
}

func signIdentityToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	return signed
}

func TestListBookingsAnonymousGetsEmptyList(t *testing.T) {
	r := newBookingTestRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListBookingsReturnsOwnerRecords(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "route-test-secret"
	defer func() { config.AppConfig.JWTSecret = prev }()

	svc := &stubBookingService{byUser: map[string][]models.Booking{
		"u1": {{ID: "b1", UserID: "u1", Status: models.BookingConfirmed}},
	}}
	r := newBookingTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signIdentityToken(t, "u1"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"b1"`)
}

func TestBookingMutationsRequireAuth(t *testing.T) {
	r := newBookingTestRouter(&stubBookingService{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/bookings/b1"},
		{http.MethodPut, "/api/bookings/b1"},
		{http.MethodPost, "/api/bookings/b1/cancel"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}
