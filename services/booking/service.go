package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "github.com/Kerubo0/Rafiki/database/repository/booking"
	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/notification"
	"github.com/Kerubo0/Rafiki/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	// maxAdvanceDays bounds how far ahead appointments can be booked.
	maxAdvanceDays = 90
)

// Create validates the request, rejects duplicates, persists the booking,
// sends the confirmation SMS and schedules a day-before reminder. The
// returned Message is speakable and includes the booking ID.
func (s *DefaultBookingService) Create(ctx context.Context, req CreateBookingRequest) *models.BookingResult {
	logger := utils.GetLogger()

	info, ok := models.GovernmentServices[req.ServiceType]
	if !ok {
		return &models.BookingResult{Success: false, Error: fmt.Sprintf("unknown service type %q", req.ServiceType)}
	}
	if req.TimeSlot != models.SlotMorning && req.TimeSlot != models.SlotAfternoon {
		return &models.BookingResult{Success: false, Error: fmt.Sprintf("unknown time slot %q", req.TimeSlot)}
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return &models.BookingResult{Success: false, Error: "appointment date must be in YYYY-MM-DD format"}
	}
	today := truncateToDay(time.Now())
	if date.Before(today) {
		return &models.BookingResult{Success: false, Error: "Appointment date cannot be in the past"}
	}
	if date.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return &models.BookingResult{Success: false, Error: fmt.Sprintf("Appointment date cannot be more than %d days in the future", maxAdvanceDays)}
	}

	existing, err := s.Repo.FindActive(ctx, req.PhoneNumber, req.ServiceType, req.AppointmentDate, req.TimeSlot)
	if err == nil {
		return &models.BookingResult{
			Success: false,
			Booking: existing,
			Error:   "You already have a booking for this service at this time",
		}
	}
	if err != bookingRepo.ErrNotFound {
		logger.Error("duplicate probe failed", zap.Error(err))
		return &models.BookingResult{Success: false, Error: "failed to create booking"}
	}

	booking := &models.Booking{
		ID:              newBookingID(),
		ServiceType:     req.ServiceType,
		UserName:        req.UserName,
		PhoneNumber:     req.PhoneNumber,
		TimeSlot:        req.TimeSlot,
		AppointmentDate: req.AppointmentDate,
		AdditionalNotes: req.AdditionalNotes,
		Status:          models.BookingConfirmed,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		logger.Error("failed to persist booking", zap.Error(err))
		return &models.BookingResult{Success: false, Error: "failed to create booking"}
	}

	smsSent := false
	if req.SendSMS {
		if err := s.SMS.SendSMS(ctx, booking.PhoneNumber, notification.BookingConfirmationMessage(booking)); err != nil {
			logger.Warn("confirmation SMS failed", zap.String("bookingId", booking.ID), zap.Error(err))
		} else {
			smsSent = true
		}
		booking.ConfirmationSent = smsSent
		if err := s.Repo.Update(ctx, booking); err != nil {
			logger.Warn("failed to record SMS status", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	s.scheduleReminder(booking, date)

	logger.Sugar().Infof("Created booking %s for %s", booking.ID, booking.UserName)

	return &models.BookingResult{
		Success: true,
		Booking: booking,
		SMSSent: smsSent,
		Message: fmt.Sprintf(
			"Your appointment for %s has been booked for %s during %s. Booking ID: %s",
			info.Name, date.Format("January 02, 2006"), booking.TimeSlot, booking.ID),
	}
}

// scheduleReminder queues a reminder for 6 PM the day before the
// appointment; same-day bookings get none.
func (s *DefaultBookingService) scheduleReminder(booking *models.Booking, date time.Time) {
	if s.Reminders == nil {
		return
	}
	fireAt := time.Date(date.Year(), date.Month(), date.Day(), 18, 0, 0, 0, time.Local).AddDate(0, 0, -1)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:   booking.ID,
		PhoneNumber: booking.PhoneNumber,
		ServiceType: booking.ServiceType,
		Date:        booking.AppointmentDate,
		TimeSlot:    string(booking.TimeSlot),
	}
	if err := s.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder", zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

// Get returns a booking by ID; lookups are case-insensitive on the ID.
func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, strings.ToUpper(bookingID))
}

// ListByPhone returns a citizen's bookings, optionally filtered by status.
func (s *DefaultBookingService) ListByPhone(ctx context.Context, phone string, status models.BookingStatus) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return bookings, nil
	}
	filtered := bookings[:0]
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Cancel marks a booking cancelled and notifies the citizen.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string, sendSMS bool) *models.BookingResult {
	booking, err := s.Repo.GetByID(ctx, strings.ToUpper(bookingID))
	if err != nil {
		return &models.BookingResult{Success: false, Error: "Booking not found"}
	}
	if booking.Status == models.BookingCancelled {
		return &models.BookingResult{Success: false, Error: "Booking is already cancelled"}
	}
	if booking.Status == models.BookingCompleted {
		return &models.BookingResult{Success: false, Error: "Cannot cancel a completed booking"}
	}

	booking.Status = models.BookingCancelled
	if err := s.Repo.Update(ctx, booking); err != nil {
		return &models.BookingResult{Success: false, Error: "failed to cancel booking"}
	}

	if sendSMS {
		if err := s.SMS.SendSMS(ctx, booking.PhoneNumber, notification.CancellationMessage(booking)); err != nil {
			utils.GetLogger().Warn("cancellation SMS failed", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	utils.GetLogger().Sugar().Infof("Cancelled booking %s", booking.ID)

	return &models.BookingResult{
		Success: true,
		Booking: booking,
		Message: "Your booking has been cancelled successfully.",
	}
}

// Update changes slot, date or notes on an active booking.
func (s *DefaultBookingService) Update(ctx context.Context, bookingID string, req UpdateBookingRequest) *models.BookingResult {
	booking, err := s.Repo.GetByID(ctx, strings.ToUpper(bookingID))
	if err != nil {
		return &models.BookingResult{Success: false, Error: "Booking not found"}
	}
	if booking.Status == models.BookingCancelled || booking.Status == models.BookingCompleted {
		return &models.BookingResult{Success: false, Error: fmt.Sprintf("Cannot update a %s booking", booking.Status)}
	}

	if req.TimeSlot != "" {
		if req.TimeSlot != models.SlotMorning && req.TimeSlot != models.SlotAfternoon {
			return &models.BookingResult{Success: false, Error: fmt.Sprintf("unknown time slot %q", req.TimeSlot)}
		}
		booking.TimeSlot = req.TimeSlot
	}
	if req.AppointmentDate != "" {
		date, err := time.Parse(dateLayout, req.AppointmentDate)
		if err != nil {
			return &models.BookingResult{Success: false, Error: "appointment date must be in YYYY-MM-DD format"}
		}
		if date.Before(truncateToDay(time.Now())) {
			return &models.BookingResult{Success: false, Error: "Appointment date cannot be in the past"}
		}
		booking.AppointmentDate = req.AppointmentDate
	}
	if req.AdditionalNotes != nil {
		booking.AdditionalNotes = *req.AdditionalNotes
	}

	if err := s.Repo.Update(ctx, booking); err != nil {
		return &models.BookingResult{Success: false, Error: "failed to update booking"}
	}

	utils.GetLogger().Sugar().Infof("Updated booking %s", booking.ID)

	return &models.BookingResult{
		Success: true,
		Booking: booking,
		Message: "Your booking has been updated successfully.",
	}
}

// AvailableDates lists weekday dates with open slots over the coming period.
// Capacity bookkeeping is not modelled; every weekday slot is offered.
func (s *DefaultBookingService) AvailableDates(serviceType string, daysAhead int) []models.DayAvailability {
	if daysAhead <= 0 {
		daysAhead = 30
	}
	var available []models.DayAvailability
	today := truncateToDay(time.Now())

	for i := 0; i < daysAhead; i++ {
		day := today.AddDate(0, 0, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		available = append(available, models.DayAvailability{
			Date:      day.Format(dateLayout),
			DayName:   day.Weekday().String(),
			Morning:   true,
			Afternoon: true,
		})
	}
	return available
}

// ServiceInfo returns directory details for one service.
func (s *DefaultBookingService) ServiceInfo(serviceType string) (models.ServiceInfo, bool) {
	info, ok := models.GovernmentServices[serviceType]
	return info, ok
}

// AllServices returns the directory in display order.
func (s *DefaultBookingService) AllServices() []models.ServiceInfo {
	services := make([]models.ServiceInfo, 0, len(models.ServiceTypes))
	for _, t := range models.ServiceTypes {
		services = append(services, models.GovernmentServices[t])
	}
	return services
}

// NextBusinessDay returns the first weekday strictly after today. The
// dialogue flow books appointments for this date by default.
func NextBusinessDay(from time.Time) time.Time {
	day := truncateToDay(from).AddDate(0, 0, 1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func newBookingID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
