package alert

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAlerter struct {
	sent []Alert
	err  error
}

func (c *countingAlerter) Send(_ context.Context, a Alert) error {
	c.sent = append(c.sent, a)
	return c.err
}

func TestMultiAlerter_FansOutToAllChannels(t *testing.T) {
	a1 := &countingAlerter{}
	a2 := &countingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), a1, a2)

	err := m.Send(context.Background(), Alert{Type: TypeDecisionVoided, Title: "voided"})
	require.NoError(t, err)
	assert.Len(t, a1.sent, 1)
	assert.Len(t, a2.sent, 1)
}

func TestMultiAlerter_CooldownSuppressesRepeats(t *testing.T) {
	a := &countingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), a)

	require.NoError(t, m.Send(context.Background(), Alert{Type: TypeDecisionVoided}))
	require.NoError(t, m.Send(context.Background(), Alert{Type: TypeDecisionVoided}))
	assert.Len(t, a.sent, 1)
}

func TestMultiAlerter_CooldownIsPerType(t *testing.T) {
	a := &countingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), a)

	require.NoError(t, m.Send(context.Background(), Alert{Type: TypeDecisionVoided}))
	require.NoError(t, m.Send(context.Background(), Alert{Type: TypeOriginationFailed}))
	assert.Len(t, a.sent, 2)
}

func TestMultiAlerter_ReturnsFirstChannelError(t *testing.T) {
	failing := &countingAlerter{err: errors.New("channel down")}
	ok := &countingAlerter{}
	m := NewMultiAlerter(time.Minute, slog.Default(), failing, ok)

	err := m.Send(context.Background(), Alert{Type: TypeWatcherStalled})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel down")
	// the healthy channel still receives the alert
	assert.Len(t, ok.sent, 1)
}

func TestSlackAlerter_PostsFormattedText(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSlackAlerter(srv.URL)
	err := s.Send(context.Background(), Alert{
		Type:    TypeOriginationFailed,
		Title:   "origination failed",
		Message: "insufficient credit",
		Fields:  map[string]string{"application_id": "abc-123"},
	})
	require.NoError(t, err)
	assert.Contains(t, payload["text"], "ORIGINATION_FAILED")
	assert.Contains(t, payload["text"], "origination failed")
	assert.Contains(t, payload["text"], "abc-123")
}

func TestSlackAlerter_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSlackAlerter(srv.URL)
	err := s.Send(context.Background(), Alert{Type: TypeWatcherStalled})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestWebhookAlerter_PostsJSONPayload(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	wh := NewWebhookAlerter(srv.URL)
	err := wh.Send(context.Background(), Alert{
		Type:    TypeDecisionVoided,
		Title:   "voided",
		Message: "transaction reverted",
	})
	require.NoError(t, err)
	assert.Equal(t, "DECISION_VOIDED", payload["type"])
	assert.Equal(t, "transaction reverted", payload["message"])
	assert.NotEmpty(t, payload["time"])
}

func TestNoopAlerter(t *testing.T) {
	n := &NoopAlerter{}
	assert.NoError(t, n.Send(context.Background(), Alert{Type: TypeRecovery}))
}
