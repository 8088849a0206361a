package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/uniportal/results-portal-api/internal/models"
)

type activityRepository interface {
	Create(ctx context.Context, record *models.ActivityRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.ActivityRecord, error)
}

// ActivityService writes the auditable trail of distribution operations.
// Writes are best-effort: a failure is reported as an operator warning and
// never alters the pipeline's result.
type ActivityService struct {
	repo   activityRepository
	logger *zap.Logger
}

// NewActivityService constructs the service.
func NewActivityService(repo activityRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, logger: logger}
}

// RecordDistribution writes one activity record summarizing a completed
// distribution.
func (s *ActivityService) RecordDistribution(ctx context.Context, announcement *models.Announcement, estimatedRecipients, notificationsSent int) {
	record := &models.ActivityRecord{
		Type: models.ActivityTypeAnnouncement,
		Description: fmt.Sprintf("Announcement %q published to %s",
			announcement.Topic, models.AudienceLabel(announcement.Audience)),
		Actor: announcement.Author,
		Metadata: models.ActivityMetadata{
			AnnouncementID: announcement.ID,
			Audience:       announcement.Audience,
			RecipientCount: estimatedRecipients,
		},
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Warn("activity record write failed",
			zap.String("announcement_id", announcement.ID),
			zap.Int("notifications_sent", notificationsSent),
			zap.Error(err))
		return
	}
	s.logger.Info("activity recorded",
		zap.String("announcement_id", announcement.ID),
		zap.String("audience", string(announcement.Audience)),
		zap.Int("estimated_recipients", estimatedRecipients),
		zap.Int("notifications_sent", notificationsSent))
}

// Recent returns the latest activity records for operator review.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityRecord, error) {
	return s.repo.ListRecent(ctx, limit)
}
