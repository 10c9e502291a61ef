package intelligence

import (
	"context"
	"fmt"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"google.golang.org/api/option"
)

// DialogflowDetector resolves intents through a Dialogflow ES agent.
type DialogflowDetector struct {
	client       *dialogflow.SessionsClient
	projectID    string
	languageCode string
}

// NewDialogflowDetector connects to the Dialogflow agent of the given
// project. credentialsFile may be empty, in which case application
// default credentials are used.
func NewDialogflowDetector(ctx context.Context, projectID, languageCode, credentialsFile string) (*DialogflowDetector, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := dialogflow.NewSessionsClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Dialogflow sessions client: %w", err)
	}
	return &DialogflowDetector{
		client:       client,
		projectID:    projectID,
		languageCode: languageCode,
	}, nil
}

// DetectIntent sends one utterance to the agent and maps the query
// result into an NLUResult.
func (d *DialogflowDetector) DetectIntent(ctx context.Context, sessionID, text, languageCode string) (*NLUResult, error) {
	if languageCode == "" {
		languageCode = d.languageCode
	}

	req := &dialogflowpb.DetectIntentRequest{
		Session: fmt.Sprintf("projects/%s/agent/sessions/%s", d.projectID, sessionID),
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_Text{
				Text: &dialogflowpb.TextInput{
					Text:         text,
					LanguageCode: languageCode,
				},
			},
		},
	}

	resp, err := d.client.DetectIntent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("dialogflow detect intent: %w", err)
	}

	qr := resp.GetQueryResult()
	result := &NLUResult{
		Confidence:      float64(qr.GetIntentDetectionConfidence()),
		FulfillmentText: qr.GetFulfillmentText(),
		Entities:        map[string]any{},
	}
	if intent := qr.GetIntent(); intent != nil {
		result.Intent = intent.GetDisplayName()
	}
	if params := qr.GetParameters(); params != nil {
		for key, value := range params.AsMap() {
			// Dialogflow sends empty strings for unset parameters.
			if s, ok := value.(string); ok && s == "" {
				continue
			}
			result.Entities[key] = value
		}
	}
	return result, nil
}

// Close releases the underlying gRPC connection.
func (d *DialogflowDetector) Close() error {
	return d.client.Close()
}
