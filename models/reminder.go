package models

// ReminderPayload is the asynq task body for a scheduled appointment reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	PhoneNumber string `json:"phoneNumber"`
	ServiceType string `json:"serviceType"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
}
