package booking

import (
	"context"

	bookingRepo "github.com/Kerubo0/Rafiki/database/repository/booking"
	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/notification"
	"github.com/Kerubo0/Rafiki/services/tasks"
)

// CreateBookingRequest carries everything needed to book an appointment.
type CreateBookingRequest struct {
	ServiceType     string          `json:"service_type" binding:"required"`
	UserName        string          `json:"user_name" binding:"required"`
	PhoneNumber     string          `json:"phone_number" binding:"required"`
	TimeSlot        models.TimeSlot `json:"time_slot" binding:"required"`
	AppointmentDate string          `json:"appointment_date" binding:"required"` // "YYYY-MM-DD"
	AdditionalNotes string          `json:"additional_notes,omitempty"`
	SendSMS         bool            `json:"send_sms"`
}

// UpdateBookingRequest carries the fields a citizen may change on an
// existing booking.
type UpdateBookingRequest struct {
	TimeSlot        models.TimeSlot `json:"time_slot,omitempty"`
	AppointmentDate string          `json:"appointment_date,omitempty"`
	AdditionalNotes *string         `json:"additional_notes,omitempty"`
}

// BookingService manages appointment bookings for government services.
type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) *models.BookingResult
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByPhone(ctx context.Context, phone string, status models.BookingStatus) ([]models.Booking, error)
	Cancel(ctx context.Context, bookingID string, sendSMS bool) *models.BookingResult
	Update(ctx context.Context, bookingID string, req UpdateBookingRequest) *models.BookingResult
	AvailableDates(serviceType string, daysAhead int) []models.DayAvailability
	ServiceInfo(serviceType string) (models.ServiceInfo, bool)
	AllServices() []models.ServiceInfo
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.Repository
	SMS       notification.SMSSender
	Reminders tasks.Scheduler // optional; nil skips reminder scheduling
}
