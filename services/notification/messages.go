package notification

import (
	"fmt"

	"github.com/Kerubo0/Rafiki/models"
)

// BookingConfirmationMessage composes the SMS sent right after a booking is
// created.
func BookingConfirmationMessage(b *models.Booking) string {
	return fmt.Sprintf(
		"eCitizen Booking Confirmed!\n\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Booking ID: %s\n\n"+
			"Please arrive 15 minutes early with required documents.\n"+
			"Thank you for using eCitizen services.",
		models.ServiceDisplayName(b.ServiceType), b.AppointmentDate, b.TimeSlot, b.ID)
}

// ReminderMessage composes the day-before appointment reminder.
func ReminderMessage(serviceType, date, timeSlot string) string {
	return fmt.Sprintf(
		"Reminder: You have a %s appointment on %s at %s.\n\n"+
			"Required documents:\n"+
			"- National ID\n"+
			"- Passport photos\n\n"+
			"Please arrive 15 minutes early.",
		models.ServiceDisplayName(serviceType), date, timeSlot)
}

// CancellationMessage composes the SMS sent when a booking is cancelled.
func CancellationMessage(b *models.Booking) string {
	return fmt.Sprintf(
		"Your %s booking (ID: %s) has been cancelled.\n\n"+
			"If you did not request this cancellation, please contact support.\n"+
			"You can book a new appointment anytime through eCitizen.",
		models.ServiceDisplayName(b.ServiceType), b.ID)
}
