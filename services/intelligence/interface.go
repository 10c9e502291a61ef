package intelligence

import (
	"context"

	"github.com/Kerubo0/Rafiki/models"
)

// NLUResult is what an external NLU provider resolved from one utterance.
type NLUResult struct {
	Intent          string
	Confidence      float64
	FulfillmentText string
	Entities        map[string]any
}

// IntentDetector resolves intents through an external NLU provider.
// The dialogue engine is the fallback when detection fails or is not
// configured.
type IntentDetector interface {
	DetectIntent(ctx context.Context, sessionID, text, languageCode string) (*NLUResult, error)
}

// ReplyRequest carries the conversational context a generative responder
// needs to produce a grounded answer.
type ReplyRequest struct {
	Text       string
	LastIntent string
	Entities   map[string]any
	History    []models.HistoryEntry
}

// Responder generates a free-form reply for utterances the scripted
// dialogue could not handle.
type Responder interface {
	GenerateReply(ctx context.Context, req ReplyRequest) (string, error)
}
