package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"belissimo/models"
	"belissimo/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingService scripts the service layer responses.
type stubBookingService struct {
	created   *models.Booking
	createErr error
	cancelled *models.Booking
	cancelErr error
	fetched   *models.Booking
	fetchErr  error
	avail     *booking.AvailabilityResult
	listed    []models.Booking
}

func (s *stubBookingService) CheckAvailability(_ context.Context, _, _ string, _ time.Time, _ int) (*booking.AvailabilityResult, error) {
	return s.avail, nil
}

func (s *stubBookingService) Create(_ context.Context, _ booking.CreateBookingInput) (*models.Booking, error) {
	return s.created, s.createErr
}

func (s *stubBookingService) Cancel(_ context.Context, _ string) (*models.Booking, error) {
	return s.cancelled, s.cancelErr
}

func (s *stubBookingService) ConfirmPayment(_ context.Context, _ string) (*models.Booking, error) {
	return nil, booking.NewNotFound("Booking not found")
}

func (s *stubBookingService) Get(_ context.Context, _ string) (*models.Booking, error) {
	return s.fetched, s.fetchErr
}

func (s *stubBookingService) ListByDate(_ context.Context, _ time.Time) ([]models.Booking, error) {
	return s.listed, nil
}

func (s *stubBookingService) AttachPayment(_ context.Context, _, _ string) error { return nil }

func newBookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	BookingService = svc
	r := gin.New()
	r.POST("/api/bookings", CreateBooking)
	r.GET("/api/bookings/availability/check", CheckAvailability)
	r.PATCH("/api/bookings/:id/cancel", CancelBooking)
	r.GET("/api/bookings/:id", GetBooking)
	return r
}

const validCreateBody = `{
	"serviceId": "haircut",
	"clientName": "Ayşe",
	"clientPhone": "+905551112233",
	"startAt": "2025-11-20T14:00:00Z"
}`

func TestCreateBooking_Created(t *testing.T) {
	router := newBookingRouter(&stubBookingService{
		created: &models.Booking{ID: "bk-1", Status: models.BookingPending},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validCreateBody))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"bk-1"`)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"conflict", booking.NewConflict(booking.ReasonSubServiceTaken), http.StatusConflict},
		{"missing service", booking.NewNotFound("Service not found"), http.StatusNotFound},
		{"validation", booking.NewValidation("clientName is required"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newBookingRouter(&stubBookingService{createErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validCreateBody))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestCreateBooking_BadPayload(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing required fields", `{"serviceId": "haircut"}`},
		{"not json", `hello`},
		{"bad timestamp", `{"serviceId":"haircut","clientName":"A","clientPhone":"1","startAt":"next tuesday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCheckAvailability_Endpoint(t *testing.T) {
	router := newBookingRouter(&stubBookingService{
		avail: &booking.AvailabilityResult{Available: false, Reason: booking.ReasonAtCapacity},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/bookings/availability/check?serviceId=haircut&startAt=2025-11-20T14:00:00Z", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)
	assert.Contains(t, w.Body.String(), booking.ReasonAtCapacity)
}

func TestCheckAvailability_BadQuery(t *testing.T) {
	router := newBookingRouter(&stubBookingService{})

	tests := []struct {
		name string
		url  string
	}{
		{"missing serviceId", "/api/bookings/availability/check?startAt=2025-11-20T14:00:00Z"},
		{"bad startAt", "/api/bookings/availability/check?serviceId=haircut&startAt=tomorrow"},
		{"bad duration", "/api/bookings/availability/check?serviceId=haircut&startAt=2025-11-20T14:00:00Z&durationMinutes=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCancelBooking_Endpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newBookingRouter(&stubBookingService{
			cancelled: &models.Booking{ID: "bk-1", Status: models.BookingCancelled},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/bookings/bk-1/cancel", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
	})

	t.Run("not found", func(t *testing.T) {
		router := newBookingRouter(&stubBookingService{
			cancelErr: booking.NewNotFound("Booking not found"),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/bookings/ghost/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetBooking_Endpoint(t *testing.T) {
	router := newBookingRouter(&stubBookingService{
		fetched: &models.Booking{ID: "bk-1", Status: models.BookingConfirmed},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}
