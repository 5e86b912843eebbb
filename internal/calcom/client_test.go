package calcom

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := NewClient("test-key", logger)
	client.apiURL = server.URL
	return client
}

func TestBookEarliestSlot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /slots", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersionHeader, r.Header.Get("cal-api-version"))
		assert.Equal(t, "30min", r.URL.Query().Get("eventTypeSlug"))
		assert.Equal(t, "gretta-ai", r.URL.Query().Get("username"))
		assert.Equal(t, "UTC", r.URL.Query().Get("timeZone"))

		_ = json.NewEncoder(w).Encode(slotsResponse{Data: map[string][]Slot{
			"2026-09-02": {{Start: "2026-09-02T09:00:00Z"}, {Start: "2026-09-02T10:00:00Z"}},
			"2026-09-01": {},
			"2026-09-03": {{Start: "2026-09-03T09:00:00Z"}},
		}})
	})
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Первый слот первого непустого дня
		assert.Equal(t, "2026-09-02T09:00:00Z", req.Start)
		assert.Equal(t, "30min", req.EventTypeSlug)
		assert.Equal(t, "gretta-ai", req.Username)
		assert.Equal(t, Attendee{Name: "Jane Doe", Email: "jane@example.com", TimeZone: "UTC"}, req.Attendee)
		assert.Equal(t, "gretta-ai-website", req.Metadata["source"])

		_ = json.NewEncoder(w).Encode(bookingResponse{Data: Booking{
			ID:    42,
			UID:   "bk-42",
			Start: req.Start,
		}})
	})

	client := newTestClient(t, mux)
	booking, err := client.BookEarliestSlot(context.Background(), "Jane Doe", "jane@example.com", "30min", "gretta-ai")

	require.NoError(t, err)
	assert.Equal(t, "bk-42", booking.UID)
	assert.Equal(t, "2026-09-02T09:00:00Z", booking.Start)
}

func TestBookEarliestSlot_NoSlots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /slots", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(slotsResponse{Data: map[string][]Slot{
			"2026-09-01": {},
		}})
	})

	client := newTestClient(t, mux)
	_, err := client.BookEarliestSlot(context.Background(), "Jane", "jane@example.com", "30min", "gretta-ai")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSlots))
}

func TestBookEarliestSlot_SlotsQueryFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, mux)
	_, err := client.BookEarliestSlot(context.Background(), "Jane", "jane@example.com", "30min", "gretta-ai")
	require.Error(t, err)
}

func TestBookEarliestSlot_BookingFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /slots", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(slotsResponse{Data: map[string][]Slot{
			"2026-09-02": {{Start: "2026-09-02T09:00:00Z"}},
		}})
	})
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	client := newTestClient(t, mux)
	_, err := client.BookEarliestSlot(context.Background(), "Jane", "jane@example.com", "30min", "gretta-ai")
	require.Error(t, err)
}

func TestBookEarliestSlot_NotConfigured(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := NewClient("", logger)

	_, err := client.BookEarliestSlot(context.Background(), "Jane", "jane@example.com", "30min", "gretta-ai")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
