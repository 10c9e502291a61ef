package models

import "time"

// HistoryEntry is one side of a user/assistant exchange kept in the session's
// rolling history.
type HistoryEntry struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Session carries the conversation state between turns. The dialogue engine
// itself is stateless; everything it needs from previous turns lives here.
type Session struct {
	SessionID    string         `json:"session_id"`
	Context      Context        `json:"context"`
	Entities     map[string]any `json:"entities"`
	History      []HistoryEntry `json:"history"`
	LastIntent   string         `json:"last_intent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActivity time.Time      `json:"last_activity"`
}
