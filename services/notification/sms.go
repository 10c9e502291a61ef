package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kerubo0/Rafiki/utils"

	"go.uber.org/zap"
)

const africasTalkingEndpoint = "https://api.africastalking.com/version1/messaging"

// Package-level HTTP client for the SMS gateway.
var smsHTTPClient = &http.Client{Timeout: 10 * time.Second}

// AfricasTalkingSender sends SMS through the Africa's Talking messaging API.
type AfricasTalkingSender struct {
	username string
	apiKey   string
	senderID string
	endpoint string
}

// NewAfricasTalkingSender builds a gateway-backed sender.
func NewAfricasTalkingSender(username, apiKey, senderID string) *AfricasTalkingSender {
	return &AfricasTalkingSender{
		username: username,
		apiKey:   apiKey,
		senderID: senderID,
		endpoint: africasTalkingEndpoint,
	}
}

type atRecipient struct {
	Status string `json:"status"`
	Number string `json:"number"`
}

type atResponse struct {
	SMSMessageData struct {
		Message    string        `json:"Message"`
		Recipients []atRecipient `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SendSMS posts one message to the gateway and treats any recipient-level
// success as delivery.
func (s *AfricasTalkingSender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	logger := utils.GetLogger()

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", phoneNumber)
	form.Set("message", message)
	if s.senderID != "" {
		form.Set("from", s.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := smsHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("call SMS gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	var parsed atResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode SMS gateway response: %w", err)
	}

	for _, r := range parsed.SMSMessageData.Recipients {
		if r.Status == "Success" {
			logger.Sugar().Infof("Sent SMS to %s", phoneNumber)
			return nil
		}
	}
	return fmt.Errorf("SMS not accepted for %s: %s", phoneNumber, parsed.SMSMessageData.Message)
}

// NoopSender logs outgoing messages instead of delivering them. Used when the
// gateway is not configured so booking flows still complete.
type NoopSender struct{}

func (NoopSender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	utils.GetLogger().Info("SMS gateway not configured, dropping message",
		zap.String("to", phoneNumber), zap.String("message", message))
	return nil
}
