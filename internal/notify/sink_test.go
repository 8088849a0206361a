package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniportal/results-portal-api/internal/models"
)

func TestHTTPSinkPushSuccess(t *testing.T) {
	var received models.Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sink := NewHTTPSink(map[string]string{string(models.ChannelStudents): server.URL}, time.Second)
	err := sink.Push(context.Background(), models.ChannelStudents, models.Notification{
		Title:    "Exam Schedule",
		Message:  "Finals moved to Dec 10, check portal for room assignments.",
		Type:     models.NotificationTypeAnnouncement,
		From:     "Registrar",
		Priority: models.PriorityHigh,
		Audience: models.ChannelStudents,
	})
	require.NoError(t, err)
	assert.Equal(t, "Exam Schedule", received.Title)
	assert.Equal(t, models.ChannelStudents, received.Audience)
}

func TestHTTPSinkPushNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sink := NewHTTPSink(map[string]string{string(models.ChannelStudents): server.URL}, time.Second)
	err := sink.Push(context.Background(), models.ChannelStudents, models.Notification{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestHTTPSinkPushUnknownChannel(t *testing.T) {
	sink := NewHTTPSink(map[string]string{}, time.Second)
	err := sink.Push(context.Background(), models.ChannelStudents, models.Notification{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no endpoint configured")
}

func TestHTTPSinkPushRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only watches for client disconnects (which cancel
		// r.Context()) once the request body has been consumed.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	sink := NewHTTPSink(map[string]string{string(models.ChannelStudents): server.URL}, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := sink.Push(ctx, models.ChannelStudents, models.Notification{})
	require.Error(t, err)
}
