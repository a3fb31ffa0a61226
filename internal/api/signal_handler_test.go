package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mindcredit/mindcredit-api/internal/events"
	"github.com/mindcredit/mindcredit-api/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []*events.SignalEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, e *events.SignalEvent) error {
	h.events = append(h.events, e)
	return h.err
}

func newSignalRouter(handler events.EventHandler) http.Handler {
	h := NewSignalHandler(events.NewInMemoryEventEmitter(nil, handler), nil)
	r := chi.NewRouter()
	r.Post("/api/brain-data/{type}", h.Publish)
	return r
}

func TestPublishEmotion(t *testing.T) {
	t.Parallel()

	rec := &recordingHandler{}
	router := newSignalRouter(rec)
	userID := uuid.New()

	body := `{"user_id":"` + userID.String() + `","emotion_type":"anxious","intensity":8,"created_at":1709296200000}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/brain-data/emotion", strings.NewReader(body)))

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, rec.events, 1)

	event := rec.events[0]
	assert.Equal(t, ingest.SignalTypeEmotion, event.Type)

	var resp SignalAcceptedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, event.ID, resp.EventID)

	published, err := ingest.ParseEmotion(event.Payload)
	require.NoError(t, err)
	assert.Equal(t, userID, published.UserID)
	assert.NotEqual(t, uuid.Nil, published.ID)
	assert.Equal(t, "2024-03-01T12:30:00Z", published.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
}

func TestPublishThought(t *testing.T) {
	t.Parallel()

	rec := &recordingHandler{}
	router := newSignalRouter(rec)

	body := `{"user_id":"` + uuid.NewString() + `","content":"skipped takeout","sentiment":"positive"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/brain-data/thought", strings.NewReader(body)))

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, rec.events, 1)
	assert.Equal(t, ingest.SignalTypeThought, rec.events[0].Type)
}

func TestPublishRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"unknown type", "/api/brain-data/dream", `{}`, http.StatusBadRequest},
		{"missing user", "/api/brain-data/emotion", `{"emotion_type":"sad","intensity":2}`, http.StatusBadRequest},
		{"intensity out of range", "/api/brain-data/emotion",
			`{"user_id":"` + uuid.NewString() + `","emotion_type":"sad","intensity":12}`, http.StatusBadRequest},
		{"malformed", "/api/brain-data/thought", `{"content":`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingHandler{}
			w := httptest.NewRecorder()
			newSignalRouter(rec).ServeHTTP(w, httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Empty(t, rec.events)
		})
	}
}

func TestPublishEmitterFailure(t *testing.T) {
	t.Parallel()

	router := newSignalRouter(&recordingHandler{err: errors.New("broker unreachable")})

	body := `{"user_id":"` + uuid.NewString() + `","content":"ok","sentiment":"neutral"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/brain-data/thought", strings.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to publish signal")
}
