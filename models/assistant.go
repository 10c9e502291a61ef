package models

// AssistantRequest is the payload posted to /api/assistant/message.
type AssistantRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text" binding:"required"`
	Language  string `json:"language,omitempty"` // e.g. "en-KE", "sw-KE"
}

// ConversationState is derived UI feedback: where the booking flow stands and
// which slots are still missing.
type ConversationState struct {
	Context       Context        `json:"current_context"`
	StepNumber    int            `json:"step_number"`
	StepLabel     string         `json:"step_label"`
	NextAction    string         `json:"next_action,omitempty"`
	TotalSteps    int            `json:"total_steps"`
	CollectedInfo map[string]any `json:"collected_info"`
	MissingSlots  []string       `json:"missing_slots"`
}

// AssistantTurn is the structured response for one exchange.
type AssistantTurn struct {
	Text          string             `json:"text"`
	SessionID     string             `json:"session_id"`
	Intent        string             `json:"intent"`
	Confidence    float64            `json:"confidence"`
	Entities      map[string]any     `json:"entities"`
	RequiresInput bool               `json:"requires_input"`
	State         *ConversationState `json:"conversation_state,omitempty"`
}
