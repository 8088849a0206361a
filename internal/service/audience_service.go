package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniportal/results-portal-api/internal/models"
	"github.com/uniportal/results-portal-api/internal/repository"
	appErrors "github.com/uniportal/results-portal-api/pkg/errors"
)

// RecipientDirectory estimates audience sizes for the activity trail.
// Estimates are advisory, not delivery guarantees.
type RecipientDirectory interface {
	Count(ctx context.Context, audience models.AnnouncementAudience) (int, error)
}

// StaticRecipientDirectory serves the built-in estimate table.
type StaticRecipientDirectory struct{}

// Count returns the static estimate for an audience.
func (StaticRecipientDirectory) Count(_ context.Context, audience models.AnnouncementAudience) (int, error) {
	return repository.StaticRecipientCount(audience), nil
}

// audienceChannels is the selector -> channel table. Adding an audience or
// channel is a data change here, not a control-flow change.
var audienceChannels = map[models.AnnouncementAudience][]models.Channel{
	models.AudienceStudents: {models.ChannelStudents},
	models.AudienceExam:     {models.ChannelExamDivision},
	models.AudienceAll:      {models.ChannelStudents, models.ChannelExamDivision},
}

// AudienceResolution is the concrete channel set for a selector plus the
// estimated recipient count.
type AudienceResolution struct {
	Channels            []models.Channel
	EstimatedRecipients int
}

// AudienceService maps audience selectors to notification channels.
type AudienceService struct {
	directory RecipientDirectory
	logger    *zap.Logger
}

// NewAudienceService constructs the resolver. A nil directory falls back to
// the static estimate table.
func NewAudienceService(directory RecipientDirectory, logger *zap.Logger) *AudienceService {
	if directory == nil {
		directory = StaticRecipientDirectory{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudienceService{directory: directory, logger: logger}
}

// Resolve expands a selector into its channel set, each channel exactly
// once even when the selector covers overlapping segments.
func (s *AudienceService) Resolve(ctx context.Context, audience models.AnnouncementAudience) (*AudienceResolution, error) {
	mapped, ok := audienceChannels[audience]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown audience %q", audience))
	}

	seen := make(map[models.Channel]struct{}, len(mapped))
	channels := make([]models.Channel, 0, len(mapped))
	for _, channel := range mapped {
		if _, dup := seen[channel]; dup {
			continue
		}
		seen[channel] = struct{}{}
		channels = append(channels, channel)
	}

	count, err := s.directory.Count(ctx, audience)
	if err != nil {
		s.logger.Warn("recipient estimate lookup failed, using static count",
			zap.String("audience", string(audience)), zap.Error(err))
		count = repository.StaticRecipientCount(audience)
	}

	return &AudienceResolution{Channels: channels, EstimatedRecipients: count}, nil
}
