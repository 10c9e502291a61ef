package models

// Context is the named state a conversation is in. It is the sole driver of
// which extraction rules the dialogue engine applies on the next turn.
type Context string

const (
	ContextWelcome          Context = "welcome"
	ContextServiceSelection Context = "booking_service_selection"
	ContextBookingName      Context = "booking_name"
	ContextBookingPhone     Context = "booking_phone"
	ContextBookingTime      Context = "booking_time"
	ContextBookingConfirm   Context = "booking_confirm"
	ContextBookingComplete  Context = "booking_complete"
	ContextHelp             Context = "help"
	ContextServicesList     Context = "service_selection"
	ContextFallback         Context = "fallback"
	ContextEnd              Context = "end"
)

// Contexts lists every valid conversation context.
var Contexts = []Context{
	ContextWelcome,
	ContextServiceSelection,
	ContextBookingName,
	ContextBookingPhone,
	ContextBookingTime,
	ContextBookingConfirm,
	ContextBookingComplete,
	ContextHelp,
	ContextServicesList,
	ContextFallback,
	ContextEnd,
}

// ValidContext reports whether c is one of the known conversation contexts.
func ValidContext(c Context) bool {
	for _, known := range Contexts {
		if c == known {
			return true
		}
	}
	return false
}

// ActionCompleteBooking marks a turn whose resolution requires the
// orchestrator to finalize the accumulated booking.
const ActionCompleteBooking = "complete_booking"

// Entity slot keys accumulated across a booking flow.
const (
	EntityServiceType = "service_type"
	EntityUserName    = "user_name"
	EntityPhoneNumber = "phone_number"
	EntityTimeSlot    = "time_slot"
	EntityConfirm     = "confirmation"
)

// TurnResult is the dialogue engine's decision for a single user turn.
type TurnResult struct {
	Intent        string         `json:"intent"`
	Confidence    float64        `json:"confidence"`
	Response      string         `json:"response"`
	Entities      map[string]any `json:"entities"`
	Context       Context        `json:"context"`
	RequiresInput bool           `json:"requires_input"`
	Action        string         `json:"action,omitempty"`
}
