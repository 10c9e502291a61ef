// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so routes
// can be registered without reaching into the service graph.
type HandlerBundle struct {
	// Assistant endpoints
	ProcessMessageHandler gin.HandlerFunc
	TranscribeHandler     gin.HandlerFunc

	// Session endpoints
	CreateSessionHandler gin.HandlerFunc
	GetSessionHandler    gin.HandlerFunc
	DeleteSessionHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc
	AvailabilityHandler  gin.HandlerFunc

	// Service directory endpoints
	ListServicesHandler gin.HandlerFunc
	GetServiceHandler   gin.HandlerFunc
}
