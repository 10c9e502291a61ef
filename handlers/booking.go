package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookingRepo "github.com/Kerubo0/Rafiki/database/repository/booking"
	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/booking"
)

// CreateBookingHandler books an appointment directly, outside the
// conversational flow.
func CreateBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req booking.CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result := svc.Create(c.Request.Context(), req)
		if !result.Success {
			status := http.StatusBadRequest
			if result.Booking != nil {
				// Duplicate booking: the existing one rides along.
				status = http.StatusConflict
			}
			c.JSON(status, result)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// GetBookingHandler looks up one booking by its short ID.
func GetBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err == bookingRepo.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// ListBookingsHandler returns a citizen's bookings by phone number, with
// an optional status filter.
func ListBookingsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Query("phone")
		if phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
			return
		}

		bookings, err := svc.ListByPhone(c.Request.Context(), phone, models.BookingStatus(c.Query("status")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
	}
}

// UpdateBookingHandler changes the slot, date or notes of a booking.
func UpdateBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req booking.UpdateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result := svc.Update(c.Request.Context(), c.Param("id"), req)
		if !result.Success {
			status := http.StatusBadRequest
			if result.Error == "Booking not found" {
				status = http.StatusNotFound
			}
			c.JSON(status, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CancelBookingHandler cancels a booking; ?notify=false suppresses the
// cancellation SMS.
func CancelBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sendSMS := c.DefaultQuery("notify", "true") == "true"

		result := svc.Cancel(c.Request.Context(), c.Param("id"), sendSMS)
		if !result.Success {
			status := http.StatusBadRequest
			if result.Error == "Booking not found" {
				status = http.StatusNotFound
			}
			c.JSON(status, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AvailabilityHandler lists open weekday slots for a service.
func AvailabilityHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceType := c.Param("type")
		if _, ok := svc.ServiceInfo(serviceType); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown service type"})
			return
		}

		days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
		c.JSON(http.StatusOK, gin.H{
			"service_type": serviceType,
			"available":    svc.AvailableDates(serviceType, days),
		})
	}
}
