package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// systemInstruction sets the assistant persona. Replies must stay short
// and speakable because most users hear them through TTS.
const systemInstruction = `You are Rafiki, a friendly and helpful voice assistant designed to help visually impaired users access Kenyan government services through the eCitizen portal.

You help citizens book appointments for passport applications, national ID registration, driving licence services and certificates of good conduct.

Keep responses short, clear and easy to understand when spoken aloud. Do not use markdown, bullet points or emoji. If the user asks for something outside government services, gently guide them back.`

// historyWindow limits how many prior turns are included in the prompt.
const historyWindow = 5

// GeminiResponder generates free-form replies via the Gemini API.
type GeminiResponder struct {
	model *genai.GenerativeModel
}

// NewGeminiResponder builds a responder over the Gemini API.
func NewGeminiResponder(ctx context.Context, apiKey, modelName string) (*GeminiResponder, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.9)
	model.SetTopK(40)
	model.SetMaxOutputTokens(500)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &GeminiResponder{model: model}, nil
}

// GenerateReply produces a spoken-style answer for one user message,
// grounded in the current booking state and recent conversation.
func (g *GeminiResponder) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("gemini returned an empty reply")
	}
	return reply, nil
}

func buildPrompt(req ReplyRequest) string {
	var parts []string

	if len(req.Entities) > 0 {
		if state, err := json.Marshal(req.Entities); err == nil {
			parts = append(parts, fmt.Sprintf("Current booking state:\n%s", state))
		}
	}
	if req.LastIntent != "" {
		parts = append(parts, fmt.Sprintf("Previous intent: %s", req.LastIntent))
	}

	history := req.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		var sb strings.Builder
		sb.WriteString("Recent conversation:\n")
		for _, entry := range history {
			fmt.Fprintf(&sb, "%s: %s\n", entry.Role, entry.Content)
		}
		parts = append(parts, strings.TrimRight(sb.String(), "\n"))
	}

	parts = append(parts, fmt.Sprintf("User: %s", req.Text))
	parts = append(parts, "Respond as Rafiki in one or two short sentences suitable for text-to-speech.")

	return strings.Join(parts, "\n\n")
}
