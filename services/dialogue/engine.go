package dialogue

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Kerubo0/Rafiki/models"
)

// Engine is the rule-based conversation state machine. Decide is a pure
// function of (text, context, entities); the engine itself holds only the
// immutable catalog and an injected picker for response templates, so it is
// safe for any number of concurrent callers.
type Engine struct {
	catalog *Catalog
	pick    func(n int) int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPicker overrides the random template chooser; tests use this to pin
// response selection.
func WithPicker(pick func(n int) int) Option {
	return func(e *Engine) { e.pick = pick }
}

// NewEngine builds an engine over the given catalog.
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		pick:    rand.Intn,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog exposes the intent catalog the engine was built over.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

const defaultAcknowledgement = "I understand. How can I help you?"

// Decide resolves one user turn: specialized extraction for the slot-filling
// contexts first, then generic pattern scoring, then the fallback intent.
// The returned entity map is always a fresh copy; the caller's snapshot is
// never mutated.
func (e *Engine) Decide(text string, current models.Context, entities map[string]any) models.TurnResult {
	textLower := strings.ToLower(strings.TrimSpace(text))
	ents := cloneEntities(entities)

	// Free-text slots cannot be expressed as fixed triggers, so the current
	// context gets first claim on the input. A miss falls through to generic
	// matching so "help" mid-booking still works.
	switch current {
	case models.ContextBookingName:
		if name, ok := ExtractName(text); ok {
			ents[models.EntityUserName] = name
			return models.TurnResult{
				Intent:        "provide_name",
				Confidence:    0.8,
				Response:      fmt.Sprintf("Thank you, %s. Now, please provide your phone number for SMS confirmation.", name),
				Entities:      ents,
				Context:       models.ContextBookingPhone,
				RequiresInput: true,
			}
		}

	case models.ContextBookingPhone:
		if phone, ok := ExtractPhone(text); ok {
			ents[models.EntityPhoneNumber] = phone
			return models.TurnResult{
				Intent:        "provide_phone",
				Confidence:    0.8,
				Response:      "Great! Which time works better for you? Morning (8 AM to 12 PM) or Afternoon (2 PM to 5 PM)?",
				Entities:      ents,
				Context:       models.ContextBookingTime,
				RequiresInput: true,
			}
		}

	case models.ContextBookingTime:
		if result, ok := e.matchTimeSlot(textLower, ents); ok {
			return result
		}

	case models.ContextBookingConfirm:
		if result, ok := e.matchConfirmation(textLower, ents); ok {
			return result
		}
	}

	return e.matchGeneric(textLower, current, ents)
}

// matchTimeSlot checks only the two time-slot intents, morning first.
func (e *Engine) matchTimeSlot(textLower string, ents map[string]any) (models.TurnResult, bool) {
	for _, name := range []string{"time_morning", "time_afternoon"} {
		intent, _ := e.catalog.Get(name)
		if !anyPatternMatches(intent.Patterns, textLower) {
			continue
		}
		for k, v := range intent.SetsEntity {
			ents[k] = v
		}

		serviceName := models.ServiceDisplayName(stringEntity(ents, models.EntityServiceType))
		timeDisplay := "afternoon (2 PM to 5 PM)"
		if name == "time_morning" {
			timeDisplay = "morning (8 AM to 12 PM)"
		}
		userName := stringEntity(ents, models.EntityUserName)
		if userName == "" {
			userName = "you"
		}
		phone := stringEntity(ents, models.EntityPhoneNumber)
		if phone == "" {
			phone = "your phone"
		}

		return models.TurnResult{
			Intent:     name,
			Confidence: 0.9,
			Response: fmt.Sprintf(
				"Let me confirm: You want to book a %s appointment for %s in the %s. "+
					"Your confirmation SMS will be sent to %s. Is this correct?",
				serviceName, userName, timeDisplay, phone),
			Entities:      ents,
			Context:       models.ContextBookingConfirm,
			RequiresInput: true,
		}, true
	}
	return models.TurnResult{}, false
}

// matchConfirmation resolves yes/no while a booking summary is on the table.
// A yes flags the completion action for the orchestrator; a no discards the
// accumulated slots and restarts from welcome.
func (e *Engine) matchConfirmation(textLower string, ents map[string]any) (models.TurnResult, bool) {
	yes, _ := e.catalog.Get("confirm_yes")
	if anyPatternMatches(yes.Patterns, textLower) {
		ents[models.EntityConfirm] = true
		return models.TurnResult{
			Intent:        "confirm_booking",
			Confidence:    0.95,
			Response:      "Your appointment has been confirmed! You will receive an SMS confirmation shortly. Is there anything else I can help you with?",
			Entities:      ents,
			Context:       models.ContextWelcome,
			RequiresInput: true,
			Action:        models.ActionCompleteBooking,
		}, true
	}

	no, _ := e.catalog.Get("confirm_no")
	if anyPatternMatches(no.Patterns, textLower) {
		return models.TurnResult{
			Intent:        "cancel_booking",
			Confidence:    0.9,
			Response:      "No problem, the booking has been cancelled. Would you like to start over or try a different service?",
			Entities:      map[string]any{},
			Context:       models.ContextWelcome,
			RequiresInput: true,
		}, true
	}

	return models.TurnResult{}, false
}

// matchGeneric scores every catalog pattern as substring-length over
// input-length and takes the single best hit; declaration order breaks ties.
func (e *Engine) matchGeneric(textLower string, current models.Context, ents map[string]any) models.TurnResult {
	var best Intent
	bestScore := 0.0

	if textLower != "" {
		for _, intent := range e.catalog.Ordered() {
			if intent.Name == FallbackIntent {
				continue
			}
			for _, pattern := range intent.Patterns {
				if !strings.Contains(textLower, pattern) {
					continue
				}
				score := float64(len(pattern)) / float64(len(textLower))
				if score > bestScore {
					bestScore = score
					best = intent
				}
			}
		}
	}

	if bestScore > 0 {
		if best.ClearEntities {
			ents = map[string]any{}
		}
		for k, v := range best.SetsEntity {
			ents[k] = v
		}

		response := defaultAcknowledgement
		if len(best.Responses) > 0 {
			response = best.Responses[e.pick(len(best.Responses))]
		}

		next := best.Context
		if next == "" {
			next = current
		}

		confidence := bestScore + 0.3
		if confidence > 0.9 {
			confidence = 0.9
		}

		return models.TurnResult{
			Intent:        best.Name,
			Confidence:    confidence,
			Response:      response,
			Entities:      ents,
			Context:       next,
			RequiresInput: true,
		}
	}

	fallback, _ := e.catalog.Get(FallbackIntent)
	return models.TurnResult{
		Intent:        FallbackIntent,
		Confidence:    0.0,
		Response:      fallback.Responses[e.pick(len(fallback.Responses))],
		Entities:      ents,
		Context:       current,
		RequiresInput: true,
	}
}

func anyPatternMatches(patterns []string, textLower string) bool {
	for _, p := range patterns {
		if strings.Contains(textLower, p) {
			return true
		}
	}
	return false
}

func stringEntity(ents map[string]any, key string) string {
	if v, ok := ents[key].(string); ok {
		return v
	}
	return ""
}

func cloneEntities(entities map[string]any) map[string]any {
	out := make(map[string]any, len(entities))
	for k, v := range entities {
		out[k] = v
	}
	return out
}
