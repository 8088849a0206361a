package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/uniportal/results-portal-api/internal/models"
)

// Dispatcher fans a persisted announcement out to its resolved channels.
// Sends run concurrently; each goroutine builds its own Notification and
// settles exactly one outcome slot, so no locking is needed.
type Dispatcher struct {
	sink        Sink
	sendTimeout time.Duration
	logger      *zap.Logger
}

// NewDispatcher constructs the dispatcher.
func NewDispatcher(sink Sink, sendTimeout time.Duration, logger *zap.Logger) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sink: sink, sendTimeout: sendTimeout, logger: logger}
}

type settledOutcome struct {
	idx     int
	outcome models.DispatchOutcome
}

// Dispatch sends one notification per channel and returns one outcome per
// channel, in channel order, only after every send has settled. One slow or
// failing channel never blocks or fails another. If ctx expires before all
// sends settle, the remaining channels are reported failed with the context
// error.
func (d *Dispatcher) Dispatch(ctx context.Context, announcement *models.Announcement, channels []models.Channel) []models.DispatchOutcome {
	outcomes := make([]models.DispatchOutcome, len(channels))
	if len(channels) == 0 {
		return outcomes
	}

	// Buffered so a send that settles after the barrier gave up on it can
	// still complete without leaking a blocked goroutine.
	done := make(chan settledOutcome, len(channels))

	for i, channel := range channels {
		go func(i int, channel models.Channel) {
			notification := models.Notification{
				Title:    announcement.Topic,
				Message:  announcement.Message,
				Type:     models.NotificationTypeAnnouncement,
				From:     announcement.Author,
				Priority: announcement.Priority,
				Read:     false,
				Audience: channel,
			}

			sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
			defer cancel()

			outcome := models.DispatchOutcome{Channel: channel, Success: true}
			if err := d.sink.Push(sendCtx, channel, notification); err != nil {
				outcome.Success = false
				outcome.Error = err.Error()
				d.logger.Warn("channel dispatch failed",
					zap.String("channel", string(channel)),
					zap.String("announcement_id", announcement.ID),
					zap.Error(err))
			}
			done <- settledOutcome{idx: i, outcome: outcome}
		}(i, channel)
	}

	pending := len(channels)
	for pending > 0 {
		select {
		case s := <-done:
			outcomes[s.idx] = s.outcome
			pending--
		case <-ctx.Done():
			for i := range outcomes {
				if outcomes[i].Channel == "" {
					outcomes[i] = models.DispatchOutcome{
						Channel: channels[i],
						Success: false,
						Error:   ctx.Err().Error(),
					}
				}
			}
			return outcomes
		}
	}
	return outcomes
}
