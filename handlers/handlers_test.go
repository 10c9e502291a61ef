package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "github.com/Kerubo0/Rafiki/database/repository/booking"
	"github.com/Kerubo0/Rafiki/models"
	"github.com/Kerubo0/Rafiki/services/assistant"
	"github.com/Kerubo0/Rafiki/services/booking"
	"github.com/Kerubo0/Rafiki/services/dialogue"
	"github.com/Kerubo0/Rafiki/services/notification"
	"github.com/Kerubo0/Rafiki/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)

	bookingService := &booking.DefaultBookingService{
		Repo: bookingRepo.NewMemoryBookingRepo(),
		SMS:  notification.NoopSender{},
	}
	assistantService := &assistant.DefaultAssistantService{
		Engine:   dialogue.NewEngine(dialogue.NewCatalog()),
		Sessions: store,
		Bookings: bookingService,
	}

	r := gin.New()
	r.POST("/api/assistant/message", ProcessMessageHandler(assistantService))
	r.POST("/api/sessions", CreateSessionHandler(store))
	r.GET("/api/sessions/:id", GetSessionHandler(store))
	r.DELETE("/api/sessions/:id", DeleteSessionHandler(store))
	r.POST("/api/bookings", CreateBookingHandler(bookingService))
	r.GET("/api/bookings/:id", GetBookingHandler(bookingService))
	r.GET("/api/bookings", ListBookingsHandler(bookingService))
	r.GET("/api/services", ListServicesHandler(bookingService))
	r.GET("/api/services/:type", GetServiceHandler(bookingService))
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcessMessageEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/assistant/message", gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	var turn models.AssistantTurn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.NotEmpty(t, turn.SessionID)
	assert.Equal(t, "greeting", turn.Intent)
	assert.NotEmpty(t, turn.Text)

	// Second turn continues the same session.
	w = doJSON(r, http.MethodPost, "/api/assistant/message", gin.H{
		"session_id": turn.SessionID, "text": "book a passport",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var second models.AssistantTurn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, turn.SessionID, second.SessionID)
	assert.Equal(t, "service_passport", second.Intent)
}

func TestProcessMessageEndpointRejectsMissingText(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/assistant/message", gin.H{"session_id": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)

	w = doJSON(r, http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingEndpoints(t *testing.T) {
	r := newTestRouter(t)
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	w := doJSON(r, http.MethodPost, "/api/bookings", gin.H{
		"service_type":     "passport",
		"user_name":        "John Mwangi",
		"phone_number":     "+254712345678",
		"time_slot":        "08:00-12:00",
		"appointment_date": date,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result models.BookingResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Booking)

	w = doJSON(r, http.MethodGet, "/api/bookings/"+result.Booking.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookings?phone=%2B254712345678", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookings/NOPE1234", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing required fields.
	w = doJSON(r, http.MethodPost, "/api/bookings", gin.H{"service_type": "passport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Services []models.ServiceInfo `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Services, 4)

	w = doJSON(r, http.MethodGet, "/api/services/passport", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/services/land_title", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
