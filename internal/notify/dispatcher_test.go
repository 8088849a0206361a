package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniportal/results-portal-api/internal/models"
)

type sinkFunc func(ctx context.Context, channel models.Channel, notification models.Notification) error

func (f sinkFunc) Push(ctx context.Context, channel models.Channel, notification models.Notification) error {
	return f(ctx, channel, notification)
}

func testAnnouncement() *models.Announcement {
	return &models.Announcement{
		ID:       "ann-1",
		Topic:    "Exam Schedule",
		Message:  "Finals moved to Dec 10, check portal for room assignments.",
		Audience: models.AudienceAll,
		Priority: models.PriorityHigh,
		Author:   "Registrar",
	}
}

func TestDispatchOneOutcomePerChannel(t *testing.T) {
	sink := sinkFunc(func(ctx context.Context, channel models.Channel, notification models.Notification) error {
		return nil
	})
	d := NewDispatcher(sink, time.Second, nil)

	channels := []models.Channel{models.ChannelStudents, models.ChannelExamDivision}
	outcomes := d.Dispatch(context.Background(), testAnnouncement(), channels)

	require.Len(t, outcomes, len(channels))
	for i, outcome := range outcomes {
		assert.Equal(t, channels[i], outcome.Channel)
		assert.True(t, outcome.Success)
		assert.Empty(t, outcome.Error)
	}
}

func TestDispatchBuildsChannelNotification(t *testing.T) {
	var (
		mu       sync.Mutex
		received []models.Notification
	)
	sink := sinkFunc(func(ctx context.Context, channel models.Channel, notification models.Notification) error {
		mu.Lock()
		received = append(received, notification)
		mu.Unlock()
		return nil
	})
	d := NewDispatcher(sink, time.Second, nil)

	d.Dispatch(context.Background(), testAnnouncement(), []models.Channel{models.ChannelStudents, models.ChannelExamDivision})

	require.Len(t, received, 2)
	audiences := map[models.Channel]bool{}
	for _, notification := range received {
		assert.Equal(t, "Exam Schedule", notification.Title)
		assert.Equal(t, models.NotificationTypeAnnouncement, notification.Type)
		assert.Equal(t, "Registrar", notification.From)
		assert.Equal(t, models.PriorityHigh, notification.Priority)
		assert.False(t, notification.Read)
		audiences[notification.Audience] = true
	}
	assert.True(t, audiences[models.ChannelStudents])
	assert.True(t, audiences[models.ChannelExamDivision])
}

func TestDispatchIsolatesChannelFailures(t *testing.T) {
	sink := sinkFunc(func(ctx context.Context, channel models.Channel, notification models.Notification) error {
		if channel == models.ChannelStudents {
			return errors.New("endpoint returned 503")
		}
		return nil
	})
	d := NewDispatcher(sink, time.Second, nil)

	outcomes := d.Dispatch(context.Background(), testAnnouncement(), []models.Channel{models.ChannelStudents, models.ChannelExamDivision})

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Success)
	assert.Contains(t, outcomes[0].Error, "503")
	assert.True(t, outcomes[1].Success)
}

func TestDispatchSlowChannelDoesNotBlockOthers(t *testing.T) {
	sink := sinkFunc(func(ctx context.Context, channel models.Channel, notification models.Notification) error {
		if channel == models.ChannelStudents {
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	})
	d := NewDispatcher(sink, 50*time.Millisecond, nil)

	started := time.Now()
	outcomes := d.Dispatch(context.Background(), testAnnouncement(), []models.Channel{models.ChannelStudents, models.ChannelExamDivision})
	elapsed := time.Since(started)

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Success)
	assert.True(t, outcomes[1].Success)
	assert.Less(t, elapsed, time.Second)
}

func TestDispatchCallerTimeoutMarksUnsettledFailed(t *testing.T) {
	sink := sinkFunc(func(ctx context.Context, channel models.Channel, notification models.Notification) error {
		// Deliberately ignores ctx to simulate a hung endpoint.
		time.Sleep(300 * time.Millisecond)
		return nil
	})
	d := NewDispatcher(sink, time.Minute, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	outcomes := d.Dispatch(ctx, testAnnouncement(), []models.Channel{models.ChannelStudents, models.ChannelExamDivision})

	require.Len(t, outcomes, 2)
	for i, outcome := range outcomes {
		assert.Equal(t, []models.Channel{models.ChannelStudents, models.ChannelExamDivision}[i], outcome.Channel)
		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.Error, "context deadline exceeded")
	}
}

func TestDispatchNoChannels(t *testing.T) {
	d := NewDispatcher(sinkFunc(func(ctx context.Context, channel models.Channel, notification models.Notification) error {
		t.Fatal("sink must not be called")
		return nil
	}), time.Second, nil)

	outcomes := d.Dispatch(context.Background(), testAnnouncement(), nil)
	assert.Empty(t, outcomes)
}
