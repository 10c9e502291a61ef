package dialogue

import (
	"github.com/Kerubo0/Rafiki/models"
)

// Intent is one entry in the static catalog: trigger substrings, canned
// response templates, the context the conversation moves into on a match, and
// optional entity effects.
type Intent struct {
	Name          string
	Patterns      []string
	Responses     []string
	Context       models.Context
	SetsEntity    map[string]any
	ClearEntities bool
}

// Catalog is the immutable intent table. Declaration order matters: when two
// patterns score the same, the earlier intent wins.
type Catalog struct {
	intents map[string]Intent
	order   []Intent
}

// FallbackIntent is the catch-all selected when nothing scores above zero.
const FallbackIntent = "fallback"

// NewCatalog builds the intent table. Built once at startup and shared
// read-only between all conversations.
func NewCatalog() *Catalog {
	defs := []Intent{
		{
			Name:     "greeting",
			Patterns: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "greetings"},
			Responses: []string{
				"Hello! I'm Rafiki, your eCitizen booking assistant. How can I help you today?",
				"Hi there! I'm here to help you access government services. What would you like to do?",
			},
			Context: models.ContextWelcome,
		},
		{
			Name:     "book_appointment",
			Patterns: []string{"book", "appointment", "schedule", "reserve", "booking"},
			Responses: []string{
				"I can help you book an appointment. Which service do you need? " +
					"Options are: Passport, National ID, Driving License, or Certificate of Good Conduct.",
			},
			Context: models.ContextServiceSelection,
		},
		{
			Name:     "service_passport",
			Patterns: []string{"passport"},
			Responses: []string{
				"Great! You want to book a passport appointment. May I have your full name please?",
			},
			Context:    models.ContextBookingName,
			SetsEntity: map[string]any{models.EntityServiceType: models.ServicePassport},
		},
		{
			Name:     "service_national_id",
			Patterns: []string{"national id", "id card", "identity card", "id"},
			Responses: []string{
				"Great! You want to book an appointment for National ID. May I have your full name please?",
			},
			Context:    models.ContextBookingName,
			SetsEntity: map[string]any{models.EntityServiceType: models.ServiceNationalID},
		},
		{
			Name:     "service_driving_license",
			Patterns: []string{"driving license", "driver's license", "driving licence", "license"},
			Responses: []string{
				"Great! You want to book a driving license appointment. May I have your full name please?",
			},
			Context:    models.ContextBookingName,
			SetsEntity: map[string]any{models.EntityServiceType: models.ServiceDrivingLicense},
		},
		{
			Name:     "service_good_conduct",
			Patterns: []string{"good conduct", "police clearance", "certificate of good conduct", "conduct"},
			Responses: []string{
				"Great! You want to book an appointment for Certificate of Good Conduct. May I have your full name please?",
			},
			Context:    models.ContextBookingName,
			SetsEntity: map[string]any{models.EntityServiceType: models.ServiceGoodConduct},
		},
		{
			Name:     "provide_name",
			Patterns: []string{"my name is", "i am", "call me", "name is"},
			Context:  models.ContextBookingPhone,
		},
		{
			Name:     "provide_phone",
			Patterns: []string{"phone", "number", "07", "+254", "254"},
			Context:  models.ContextBookingTime,
		},
		{
			Name:       "time_morning",
			Patterns:   []string{"morning", "8 to 12", "8-12", "8am", "before noon"},
			Context:    models.ContextBookingConfirm,
			SetsEntity: map[string]any{models.EntityTimeSlot: string(models.SlotMorning)},
		},
		{
			Name:       "time_afternoon",
			Patterns:   []string{"afternoon", "2 to 5", "2-5", "2pm", "after noon"},
			Context:    models.ContextBookingConfirm,
			SetsEntity: map[string]any{models.EntityTimeSlot: string(models.SlotAfternoon)},
		},
		{
			Name:     "confirm_yes",
			Patterns: []string{"yes", "confirm", "correct", "right", "okay", "sure", "proceed"},
			Responses: []string{
				"Your appointment has been confirmed. You will receive an SMS shortly.",
			},
			Context:    models.ContextBookingComplete,
			SetsEntity: map[string]any{models.EntityConfirm: true},
		},
		{
			Name:     "confirm_no",
			Patterns: []string{"no", "cancel", "wrong", "incorrect", "stop"},
			Responses: []string{
				"No problem. Would you like to start over?",
			},
			Context:       models.ContextWelcome,
			ClearEntities: true,
		},
		{
			Name:     "help",
			Patterns: []string{"help", "assist", "support", "what can you do", "options"},
			Responses: []string{
				"I can help you with: " +
					"1. Booking appointments for Passport, National ID, Driving License, or Good Conduct certificate. " +
					"2. Checking service requirements. " +
					"3. Navigating the eCitizen portal. " +
					"Just tell me what you need!",
			},
			Context: models.ContextHelp,
		},
		{
			Name:     "services_list",
			Patterns: []string{"services", "what services", "available services", "list services"},
			Responses: []string{
				"Available services are: " +
					"1. Passport Application, " +
					"2. National ID Card, " +
					"3. Driving License, " +
					"4. Certificate of Good Conduct. " +
					"Which one would you like?",
			},
			Context: models.ContextServicesList,
		},
		{
			Name:     "thank_you",
			Patterns: []string{"thank", "thanks", "appreciate"},
			Responses: []string{
				"You're welcome! Is there anything else I can help you with?",
				"My pleasure! Feel free to ask if you need anything else.",
			},
			Context: models.ContextWelcome,
		},
		{
			Name:     "goodbye",
			Patterns: []string{"bye", "goodbye", "see you", "exit", "quit"},
			Responses: []string{
				"Goodbye! Thank you for using eCitizen services. Have a great day!",
				"Take care! Come back anytime you need help with government services.",
			},
			Context: models.ContextEnd,
		},
		{
			Name:     FallbackIntent,
			Patterns: nil,
			Responses: []string{
				"I'm sorry, I didn't quite understand that. Could you please rephrase?",
				"I'm not sure what you mean. You can say 'help' to see what I can do.",
			},
			Context: models.ContextFallback,
		},
	}

	intents := make(map[string]Intent, len(defs))
	for _, def := range defs {
		intents[def.Name] = def
	}
	return &Catalog{intents: intents, order: defs}
}

// Get returns the intent definition for a name.
func (c *Catalog) Get(name string) (Intent, bool) {
	intent, ok := c.intents[name]
	return intent, ok
}

// Ordered returns the intents in declaration order.
func (c *Catalog) Ordered() []Intent {
	return c.order
}
