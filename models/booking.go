package models

import "time"

// BookingStatus tracks the lifecycle of an appointment.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// TimeSlot is one of the two bookable windows every department offers.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "08:00-12:00"
	SlotAfternoon TimeSlot = "14:00-17:00"
)

// Booking represents an appointment for a government service.
type Booking struct {
	ID               string        `bson:"id" json:"booking_id"`
	ServiceType      string        `bson:"service_type" json:"service_type"`
	UserName         string        `bson:"user_name" json:"user_name"`
	PhoneNumber      string        `bson:"phone_number" json:"phone_number"`
	TimeSlot         TimeSlot      `bson:"time_slot" json:"time_slot"`
	AppointmentDate  string        `bson:"appointment_date" json:"appointment_date"` // "YYYY-MM-DD"
	AdditionalNotes  string        `bson:"additional_notes,omitempty" json:"additional_notes,omitempty"`
	Status           BookingStatus `bson:"status" json:"status"`
	ConfirmationSent bool          `bson:"confirmation_sent" json:"confirmation_sent"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingResult is what the booking service hands back to callers; Message is
// the speakable confirmation the assistant relays to the user.
type BookingResult struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking,omitempty"`
	SMSSent bool     `json:"sms_sent"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// DayAvailability describes the open slots on a single date.
type DayAvailability struct {
	Date      string `json:"date"`
	DayName   string `json:"day_name"`
	Morning   bool   `json:"morning"`
	Afternoon bool   `json:"afternoon"`
}
