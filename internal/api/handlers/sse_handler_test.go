package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/domain/entities"
	"github.com/havenlink/communitymatch/internal/domain/providers"
)

type stubEventBus struct {
	subscribed []string
	events     chan *entities.RecommendationEvent
}

func newStubEventBus() *stubEventBus {
	return &stubEventBus{events: make(chan *entities.RecommendationEvent, 10)}
}

func (s *stubEventBus) Publish(ctx context.Context, channel string, event *entities.RecommendationEvent) error {
	s.events <- event
	return nil
}

func (s *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.RecommendationEvent, error) {
	s.subscribed = append(s.subscribed, channel)
	return s.events, nil
}

func (s *stubEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (s *stubEventBus) Close() error { return nil }

func TestStreamPatientUpdates_ForwardsRunEvents(t *testing.T) {
	bus := newStubEventBus()
	handler := handlers.NewSSEHandler(bus)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/stream/patients/p1", nil).WithContext(ctx)
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()

	go func() {
		bus.events <- &entities.RecommendationEvent{
			ID:        "evt-1",
			Type:      entities.EventRunCompleted,
			PatientID: "p1",
			RunID:     "run-1",
		}
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	handler.StreamPatientUpdates(rec, req)

	require.Equal(t, []string{providers.GetPatientChannel("p1")}, bus.subscribed)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: run_completed")
	assert.Contains(t, body, `"run_id":"run-1"`)
}

func TestStreamPatientUpdates_MissingPatientID(t *testing.T) {
	handler := handlers.NewSSEHandler(newStubEventBus())

	req := httptest.NewRequest(http.MethodGet, "/api/stream/patients/", nil)
	rec := httptest.NewRecorder()

	handler.StreamPatientUpdates(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
