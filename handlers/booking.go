package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"belissimo/services/booking"
)

// BookingService is wired in main before the router starts serving.
var BookingService booking.BookingService

type createBookingRequest struct {
	ServiceID       string `json:"serviceId" binding:"required"`
	SubService      string `json:"subService"`
	ClientName      string `json:"clientName" binding:"required"`
	ClientPhone     string `json:"clientPhone" binding:"required"`
	StartAt         string `json:"startAt" binding:"required"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int    `json:"priceCents"`
}

// CreateBooking handles POST /api/bookings.
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startAt must be an ISO-8601 timestamp"})
		return
	}

	b, err := BookingService.Create(c.Request.Context(), booking.CreateBookingInput{
		ServiceID:       req.ServiceID,
		SubServiceName:  req.SubService,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		StartAt:         startAt,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// CheckAvailability handles GET /api/bookings/availability/check.
func CheckAvailability(c *gin.Context) {
	serviceID := c.Query("serviceId")
	if serviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceId is required"})
		return
	}
	startRaw := c.Query("startAt")
	startAt, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startAt must be an ISO-8601 timestamp"})
		return
	}

	duration := 0
	if raw := c.Query("durationMinutes"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "durationMinutes must be a non-negative number"})
			return
		}
	}

	result, err := BookingService.CheckAvailability(c.Request.Context(), serviceID, c.Query("subServiceName"), startAt, duration)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelBooking handles PATCH /api/bookings/:id/cancel.
func CancelBooking(c *gin.Context) {
	b, err := BookingService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBooking handles GET /api/bookings/:id.
func GetBooking(c *gin.Context) {
	b, err := BookingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings handles GET /api/bookings?date=YYYY-MM-DD.
func ListBookings(c *gin.Context) {
	dateRaw := c.Query("date")
	if dateRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required (YYYY-MM-DD)"})
		return
	}
	day, err := time.Parse("2006-01-02", dateRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	bookings, err := BookingService.ListByDate(c.Request.Context(), day)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// respondBookingError maps the domain error taxonomy onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case booking.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case booking.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case booking.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
