package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/booking"
	"github.com/Kerubo0/Rafiki/services/dialogue"
	"github.com/Kerubo0/Rafiki/services/intelligence"
	"github.com/Kerubo0/Rafiki/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingService struct {
	createCalls []booking.CreateBookingRequest
	failCreate  bool
}

func (f *fakeBookingService) Create(ctx context.Context, req booking.CreateBookingRequest) *models.BookingResult {
	f.createCalls = append(f.createCalls, req)
	if f.failCreate {
		return &models.BookingResult{Success: false, Error: "downstream rejected"}
	}
	return &models.BookingResult{
		Success: true,
		Booking: &models.Booking{ID: "AB12CD34"},
		Message: "Your appointment for Passport Application has been booked. Booking ID: AB12CD34",
	}
}

func (f *fakeBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) ListByPhone(ctx context.Context, phone string, status models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) Cancel(ctx context.Context, id string, sendSMS bool) *models.BookingResult {
	return &models.BookingResult{Success: false}
}

func (f *fakeBookingService) Update(ctx context.Context, id string, req booking.UpdateBookingRequest) *models.BookingResult {
	return &models.BookingResult{Success: false}
}

func (f *fakeBookingService) AvailableDates(serviceType string, daysAhead int) []models.DayAvailability {
	return nil
}

func (f *fakeBookingService) ServiceInfo(serviceType string) (models.ServiceInfo, bool) {
	info, ok := models.GovernmentServices[serviceType]
	return info, ok
}

func (f *fakeBookingService) AllServices() []models.ServiceInfo { return nil }

type fakeDetector struct {
	result *intelligence.NLUResult
	err    error
	calls  int
}

func (f *fakeDetector) DetectIntent(ctx context.Context, sessionID, text, languageCode string) (*intelligence.NLUResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeResponder struct {
	reply string
	err   error
	calls int
}

func (f *fakeResponder) GenerateReply(ctx context.Context, req intelligence.ReplyRequest) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestAssistant(bookings *fakeBookingService) (*DefaultAssistantService, *session.MemoryStore) {
	store := session.NewMemoryStore(time.Minute)
	svc := &DefaultAssistantService{
		Engine:   dialogue.NewEngine(dialogue.NewCatalog(), dialogue.WithPicker(func(n int) int { return 0 })),
		Sessions: store,
		Bookings: bookings,
	}
	return svc, store
}

func TestProcessMessageCreatesSessionWhenAbsent(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()

	turn, err := svc.ProcessMessage(context.Background(), "", "hello", "")
	require.NoError(t, err)

	assert.NotEmpty(t, turn.SessionID)
	assert.Equal(t, "greeting", turn.Intent)
	assert.Contains(t, turn.Text, "Rafiki")
	require.NotNil(t, turn.State)
	assert.Equal(t, 0, turn.State.StepNumber)

	stored, err := store.Get(context.Background(), turn.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "greeting", stored.LastIntent)
	assert.Len(t, stored.History, 2)
}

func TestProcessMessageFullBookingFlow(t *testing.T) {
	bookings := &fakeBookingService{}
	svc, store := newTestAssistant(bookings)
	defer store.Close()
	ctx := context.Background()

	sessionID := ""
	var turn *models.AssistantTurn
	var err error
	for _, text := range []string{"book a passport", "John Mwangi", "0712345678", "morning", "yes"} {
		turn, err = svc.ProcessMessage(ctx, sessionID, text, "")
		require.NoError(t, err)
		sessionID = turn.SessionID
	}

	require.Len(t, bookings.createCalls, 1)
	req := bookings.createCalls[0]
	assert.Equal(t, models.ServicePassport, req.ServiceType)
	assert.Equal(t, "John Mwangi", req.UserName)
	assert.Equal(t, "+254712345678", req.PhoneNumber)
	assert.Equal(t, models.SlotMorning, req.TimeSlot)
	assert.True(t, req.SendSMS)
	assert.Equal(t, booking.NextBusinessDay(time.Now()).Format("2006-01-02"), req.AppointmentDate)

	assert.Contains(t, turn.Text, "AB12CD34")
	assert.Equal(t, "confirm_booking", turn.Intent)

	stored, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.ContextWelcome, stored.Context)
	assert.Equal(t, string(models.SlotMorning), stored.Entities[models.EntityTimeSlot])
}

func TestProcessMessageBookingFailureKeepsEngineResponse(t *testing.T) {
	bookings := &fakeBookingService{failCreate: true}
	svc, store := newTestAssistant(bookings)
	defer store.Close()
	ctx := context.Background()

	sessionID := ""
	var turn *models.AssistantTurn
	var err error
	for _, text := range []string{"book a passport", "John Mwangi", "0712345678", "morning", "yes"} {
		turn, err = svc.ProcessMessage(ctx, sessionID, text, "")
		require.NoError(t, err)
		sessionID = turn.SessionID
	}

	require.Len(t, bookings.createCalls, 1)
	assert.NotContains(t, turn.Text, "AB12CD34")
	assert.Contains(t, turn.Text, "confirmed")
}

func TestProcessMessageNLUFailureDegradesToEngine(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()
	detector := &fakeDetector{err: errors.New("agent unreachable")}
	svc.Detector = detector

	turn, err := svc.ProcessMessage(context.Background(), "", "hello", "")
	require.NoError(t, err)

	assert.Equal(t, 1, detector.calls)
	assert.Equal(t, "greeting", turn.Intent)
}

func TestProcessMessageConfidentNLUWins(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()
	svc.Detector = &fakeDetector{result: &intelligence.NLUResult{
		Intent:          "services_list",
		Confidence:      0.92,
		FulfillmentText: "Here are the services I can book for you.",
	}}

	turn, err := svc.ProcessMessage(context.Background(), "", "what do you offer", "")
	require.NoError(t, err)

	assert.Equal(t, "services_list", turn.Intent)
	assert.Equal(t, 0.92, turn.Confidence)
	assert.Equal(t, "Here are the services I can book for you.", turn.Text)

	stored, err := store.Get(context.Background(), turn.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.ContextServicesList, stored.Context)
}

func TestProcessMessageNLUSkippedMidBooking(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()
	// Below the confidence floor, so the engine resolves the first turn
	// and moves the session into slot filling.
	detector := &fakeDetector{result: &intelligence.NLUResult{
		Intent: "greeting", Confidence: 0.3, FulfillmentText: "Hello!",
	}}
	svc.Detector = detector
	ctx := context.Background()

	turn, err := svc.ProcessMessage(ctx, "", "book a passport", "")
	require.NoError(t, err)
	callsAfterFirst := detector.calls

	// The session is now slot-filling; the detector must not be consulted.
	turn, err = svc.ProcessMessage(ctx, turn.SessionID, "John Mwangi", "")
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, detector.calls)
	assert.Equal(t, "provide_name", turn.Intent)
}

func TestProcessMessageFallbackUsesResponder(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()
	responder := &fakeResponder{reply: "The eCitizen portal is Kenya's online services gateway."}
	svc.Responder = responder

	turn, err := svc.ProcessMessage(context.Background(), "", "zzqq xkcd", "")
	require.NoError(t, err)

	assert.Equal(t, 1, responder.calls)
	assert.Equal(t, dialogue.FallbackIntent, turn.Intent)
	assert.Equal(t, responder.reply, turn.Text)
}

func TestProcessMessageResponderFailureKeepsCannedFallback(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()
	svc.Responder = &fakeResponder{err: errors.New("quota exhausted")}

	turn, err := svc.ProcessMessage(context.Background(), "", "zzqq xkcd", "")
	require.NoError(t, err)

	assert.Equal(t, dialogue.FallbackIntent, turn.Intent)
	assert.Contains(t, turn.Text, "didn't quite understand")
}

func TestProcessMessageHistoryIsCapped(t *testing.T) {
	svc, store := newTestAssistant(&fakeBookingService{})
	defer store.Close()
	ctx := context.Background()

	sessionID := ""
	for i := 0; i < 15; i++ {
		turn, err := svc.ProcessMessage(ctx, sessionID, fmt.Sprintf("hello %d", i), "")
		require.NoError(t, err)
		sessionID = turn.SessionID
	}

	stored, err := store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(stored.History), maxHistoryEntries)
	assert.Equal(t, "hello 14", stored.History[len(stored.History)-2].Content)
}
