package assistant

import (
	"context"
	"time"

	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/booking"
	"github.com/Kerubo0/Rafiki/services/dialogue"
	"github.com/Kerubo0/Rafiki/services/intelligence"
	"github.com/Kerubo0/Rafiki/services/session"
	"github.com/Kerubo0/Rafiki/utils"

	"go.uber.org/zap"
)

const (
	// maxHistoryEntries bounds the rolling conversation history kept per
	// session.
	maxHistoryEntries = 10

	// nluConfidenceFloor is the minimum Dialogflow confidence we accept
	// before preferring its resolution over the rule-based engine.
	nluConfidenceFloor = 0.6
)

// ProcessMessage resolves one user turn. The external NLU provider gets
// first shot outside the booking slot-filling contexts; the rule-based
// engine owns those so free-text extraction stays deterministic. All
// external calls happen before the session write, which is a single
// atomic update.
func (s *DefaultAssistantService) ProcessMessage(ctx context.Context, sessionID, text, language string) (*models.AssistantTurn, error) {
	logger := utils.GetLogger()

	sess, err := s.loadOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := s.resolveTurn(ctx, sess, text, language)

	if result.Action == models.ActionCompleteBooking {
		s.completeBooking(ctx, sess.SessionID, &result)
	}

	if result.Intent == dialogue.FallbackIntent && s.Responder != nil {
		reply, err := s.Responder.GenerateReply(ctx, intelligence.ReplyRequest{
			Text:       text,
			LastIntent: sess.LastIntent,
			Entities:   sess.Entities,
			History:    sess.History,
		})
		if err != nil {
			logger.Warn("gemini fallback failed, keeping canned response",
				zap.String("sessionId", sess.SessionID), zap.Error(err))
		} else {
			result.Response = reply
		}
	}

	updated, err := s.Sessions.Update(ctx, sess.SessionID, func(stored *models.Session) {
		stored.Context = result.Context
		stored.Entities = result.Entities
		stored.LastIntent = result.Intent
		if len(stored.History) >= maxHistoryEntries {
			stored.History = stored.History[len(stored.History)-maxHistoryEntries+2:]
		}
		stored.History = append(stored.History,
			models.HistoryEntry{Role: "user", Content: text},
			models.HistoryEntry{Role: "assistant", Content: result.Response},
		)
	})
	if err != nil {
		return nil, err
	}

	return &models.AssistantTurn{
		Text:          result.Response,
		SessionID:     updated.SessionID,
		Intent:        result.Intent,
		Confidence:    result.Confidence,
		Entities:      result.Entities,
		RequiresInput: result.RequiresInput,
		State:         dialogue.ConversationState(result.Context, result.Entities),
	}, nil
}

// loadOrCreateSession fetches the session, minting a fresh one when the
// ID is empty or expired. The caller learns the effective ID from the
// returned turn.
func (s *DefaultAssistantService) loadOrCreateSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return s.Sessions.Create(ctx)
	}
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err == session.ErrNotFound {
		return s.Sessions.Create(ctx)
	}
	return sess, err
}

// resolveTurn picks between the external NLU provider and the rule-based
// engine. Slot-filling contexts always go to the engine; elsewhere a
// confident NLU hit wins, and anything less degrades silently.
func (s *DefaultAssistantService) resolveTurn(ctx context.Context, sess *models.Session, text, language string) models.TurnResult {
	if s.Detector != nil && !slotFillingContext(sess.Context) {
		nlu, err := s.Detector.DetectIntent(ctx, sess.SessionID, text, language)
		if err != nil {
			utils.GetLogger().Warn("intent detection failed, using rule-based engine",
				zap.String("sessionId", sess.SessionID), zap.Error(err))
		} else if usable(nlu) {
			return s.nluTurn(sess, nlu)
		}
	}
	return s.Engine.Decide(text, sess.Context, sess.Entities)
}

func slotFillingContext(ctx models.Context) bool {
	switch ctx {
	case models.ContextBookingName, models.ContextBookingPhone,
		models.ContextBookingTime, models.ContextBookingConfirm:
		return true
	}
	return false
}

func usable(nlu *intelligence.NLUResult) bool {
	return nlu.Intent != "" && nlu.FulfillmentText != "" && nlu.Confidence >= nluConfidenceFloor
}

// nluTurn maps a provider resolution onto the conversation state machine.
// The agent's intents mirror the local catalog, so a matching catalog
// entry supplies the context transition; unknown intents keep the
// current context.
func (s *DefaultAssistantService) nluTurn(sess *models.Session, nlu *intelligence.NLUResult) models.TurnResult {
	entities := make(map[string]any, len(sess.Entities)+len(nlu.Entities))
	for k, v := range sess.Entities {
		entities[k] = v
	}
	for k, v := range nlu.Entities {
		entities[k] = v
	}

	next := sess.Context
	if intent, ok := s.Engine.Catalog().Get(nlu.Intent); ok && intent.Context != "" {
		next = intent.Context
	}

	return models.TurnResult{
		Intent:        nlu.Intent,
		Confidence:    nlu.Confidence,
		Response:      nlu.FulfillmentText,
		Entities:      entities,
		Context:       next,
		RequiresInput: true,
	}
}

// completeBooking finalizes the accumulated slots into a real booking.
// Success replaces the canned confirmation with the message carrying the
// booking ID; failure keeps the conversation going with the engine's
// response.
func (s *DefaultAssistantService) completeBooking(ctx context.Context, sessionID string, result *models.TurnResult) {
	logger := utils.GetLogger()

	serviceType, _ := result.Entities[models.EntityServiceType].(string)
	userName, _ := result.Entities[models.EntityUserName].(string)
	phone, _ := result.Entities[models.EntityPhoneNumber].(string)
	slot, _ := result.Entities[models.EntityTimeSlot].(string)

	br := s.Bookings.Create(ctx, booking.CreateBookingRequest{
		ServiceType:     serviceType,
		UserName:        userName,
		PhoneNumber:     phone,
		TimeSlot:        models.TimeSlot(slot),
		AppointmentDate: booking.NextBusinessDay(time.Now()).Format("2006-01-02"),
		SendSMS:         true,
	})
	if !br.Success {
		logger.Warn("booking completion failed",
			zap.String("sessionId", sessionID), zap.String("error", br.Error))
		return
	}

	result.Response = br.Message + " Is there anything else I can help you with?"
	logger.Info("booking completed from conversation",
		zap.String("sessionId", sessionID), zap.String("bookingId", br.Booking.ID))
}
