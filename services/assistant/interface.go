package assistant

import (
	"context"

	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/booking"
	"github.com/Kerubo0/Rafiki/services/dialogue"
	"github.com/Kerubo0/Rafiki/services/intelligence"
	"github.com/Kerubo0/Rafiki/services/session"
)

// AssistantService runs one conversation turn end to end: intent
// resolution, booking side effects, and session persistence.
type AssistantService interface {
	ProcessMessage(ctx context.Context, sessionID, text, language string) (*models.AssistantTurn, error)
}

// DefaultAssistantService implements AssistantService. Detector and
// Responder are optional; without them the rule-based engine carries
// every turn on its own.
type DefaultAssistantService struct {
	Engine    *dialogue.Engine
	Sessions  session.Store
	Bookings  booking.BookingService
	Detector  intelligence.IntentDetector // optional
	Responder intelligence.Responder      // optional
}
