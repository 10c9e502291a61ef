package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kerubo0/Rafiki/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewaySender(url string) *AfricasTalkingSender {
	return &AfricasTalkingSender{
		username: "sandbox",
		apiKey:   "test-key",
		senderID: "RAFIKI",
		endpoint: url,
	}
}

func TestSendSMSSuccess(t *testing.T) {
	var gotForm map[string]string
	var gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"username": r.PostFormValue("username"),
			"to":       r.PostFormValue("to"),
			"message":  r.PostFormValue("message"),
			"from":     r.PostFormValue("from"),
		}
		gotAPIKey = r.Header.Get("apiKey")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"SMSMessageData":{"Message":"Sent to 1/1","Recipients":[{"status":"Success","number":"+254712345678"}]}}`))
	}))
	defer server.Close()

	sender := newGatewaySender(server.URL)
	err := sender.SendSMS(context.Background(), "+254712345678", "Your booking is confirmed")
	require.NoError(t, err)

	assert.Equal(t, "sandbox", gotForm["username"])
	assert.Equal(t, "+254712345678", gotForm["to"])
	assert.Equal(t, "Your booking is confirmed", gotForm["message"])
	assert.Equal(t, "RAFIKI", gotForm["from"])
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestSendSMSRecipientRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SMSMessageData":{"Message":"InvalidPhoneNumber","Recipients":[{"status":"InvalidPhoneNumber","number":"+254000"}]}}`))
	}))
	defer server.Close()

	err := newGatewaySender(server.URL).SendSMS(context.Background(), "+254000", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidPhoneNumber")
}

func TestSendSMSGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := newGatewaySender(server.URL).SendSMS(context.Background(), "+254712345678", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestBookingMessagesIncludeKeyDetails(t *testing.T) {
	b := &models.Booking{
		ID:              "AB12CD34",
		ServiceType:     models.ServicePassport,
		AppointmentDate: "2026-09-01",
		TimeSlot:        models.SlotMorning,
	}

	confirmation := BookingConfirmationMessage(b)
	assert.Contains(t, confirmation, "AB12CD34")
	assert.Contains(t, confirmation, "Passport Application")
	assert.Contains(t, confirmation, "2026-09-01")

	reminder := ReminderMessage(b.ServiceType, b.AppointmentDate, string(b.TimeSlot))
	assert.Contains(t, reminder, "Reminder")
	assert.Contains(t, reminder, "Passport Application")

	cancellation := CancellationMessage(b)
	assert.Contains(t, cancellation, "cancelled")
	assert.Contains(t, cancellation, "AB12CD34")
}
