package dialogue

import (
	"github.com/Kerubo0/Rafiki/models"
)

// TotalBookingSteps is the number of steps a booking walks through, from
// service selection to completion.
const TotalBookingSteps = 6

type stepInfo struct {
	number int
	label  string
	next   string
}

var bookingSteps = map[models.Context]stepInfo{
	models.ContextWelcome:          {0, "Start", "Select a service"},
	models.ContextServiceSelection: {1, "Service Selection", "Provide your name"},
	models.ContextBookingName:      {2, "Your Name", "Provide phone number"},
	models.ContextBookingPhone:     {3, "Phone Number", "Select time slot"},
	models.ContextBookingTime:      {4, "Time Slot", "Confirm booking"},
	models.ContextBookingConfirm:   {5, "Confirmation", "Complete"},
	models.ContextBookingComplete:  {6, "Complete", ""},
}

// requiredSlots must all be present before a booking can be finalized.
var requiredSlots = []string{
	models.EntityServiceType,
	models.EntityUserName,
	models.EntityPhoneNumber,
	models.EntityTimeSlot,
}

// ConversationState derives UI progress feedback from a context and the
// accumulated entities: the numbered step, what comes next, and which of the
// required slots are still missing.
func ConversationState(ctx models.Context, entities map[string]any) *models.ConversationState {
	step, ok := bookingSteps[ctx]
	if !ok {
		step = bookingSteps[models.ContextWelcome]
	}

	var missing []string
	for _, slot := range requiredSlots {
		if v, ok := entities[slot]; !ok || v == nil || v == "" {
			missing = append(missing, slot)
		}
	}

	return &models.ConversationState{
		Context:    ctx,
		StepNumber: step.number,
		StepLabel:  step.label,
		NextAction: step.next,
		TotalSteps: TotalBookingSteps,
		CollectedInfo: map[string]any{
			"service":   entities[models.EntityServiceType],
			"name":      entities[models.EntityUserName],
			"phone":     entities[models.EntityPhoneNumber],
			"time_slot": entities[models.EntityTimeSlot],
		},
		MissingSlots: missing,
	}
}
