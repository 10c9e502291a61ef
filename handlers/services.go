package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kerubo0/Rafiki/services/booking"
)

// ListServicesHandler returns the government-service directory.
func ListServicesHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"services": svc.AllServices()})
	}
}

// GetServiceHandler returns directory details for one service type.
func GetServiceHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := svc.ServiceInfo(c.Param("type"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown service type"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}
