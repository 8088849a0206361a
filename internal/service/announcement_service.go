package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uniportal/results-portal-api/internal/models"
	appErrors "github.com/uniportal/results-portal-api/pkg/errors"
)

type announcementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
}

type audienceResolver interface {
	Resolve(ctx context.Context, audience models.AnnouncementAudience) (*AudienceResolution, error)
}

type channelDispatcher interface {
	Dispatch(ctx context.Context, announcement *models.Announcement, channels []models.Channel) []models.DispatchOutcome
}

type distributionRecorder interface {
	RecordDistribution(ctx context.Context, announcement *models.Announcement, estimatedRecipients, notificationsSent int)
}

// AnnouncementService orchestrates announcement distribution: validate the
// draft, persist it, resolve the audience, fan out to every channel, record
// the activity trail and aggregate the result. Each call is independent;
// the service holds no per-call state.
type AnnouncementService struct {
	repo            announcementRepository
	validator       *DraftValidator
	audiences       audienceResolver
	dispatcher      channelDispatcher
	activity        distributionRecorder
	metrics         *MetricsService
	logger          *zap.Logger
	dispatchTimeout time.Duration
}

// NewAnnouncementService constructs the service. A nil metrics service
// disables instrumentation.
func NewAnnouncementService(
	repo announcementRepository,
	validator *DraftValidator,
	audiences audienceResolver,
	dispatcher channelDispatcher,
	activity distributionRecorder,
	metrics *MetricsService,
	logger *zap.Logger,
	dispatchTimeout time.Duration,
) *AnnouncementService {
	if validator == nil {
		validator = NewDraftValidator(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatchTimeout <= 0 {
		dispatchTimeout = 15 * time.Second
	}
	return &AnnouncementService{
		repo:            repo,
		validator:       validator,
		audiences:       audiences,
		dispatcher:      dispatcher,
		activity:        activity,
		metrics:         metrics,
		logger:          logger,
		dispatchTimeout: dispatchTimeout,
	}
}

// Distribute runs the full pipeline for one draft. Validation or
// persistence failures abort the call; channel failures after persistence
// are itemized in the result, never escalated. Persistence is the commit
// point: the result reports success even if every channel send failed.
func (s *AnnouncementService) Distribute(ctx context.Context, req SubmitAnnouncementRequest) (*models.DistributionResult, error) {
	validation := s.validator.Validate(req)
	if !validation.Valid {
		return nil, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, "announcement draft is invalid"),
			validation.Errors,
		)
	}

	announcement := &models.Announcement{
		Topic:    req.Topic,
		Message:  req.Message,
		Audience: models.AnnouncementAudience(strings.ToLower(req.Audience)),
		Priority: models.AnnouncementPriority(strings.ToLower(req.Priority)),
		Author:   req.Author,
	}
	if announcement.Author == "" {
		announcement.Author = "system"
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to persist announcement")
	}
	s.metrics.RecordAnnouncementPublished()

	resolution, err := s.audiences.Resolve(ctx, announcement.Audience)
	if err != nil {
		// Validation already vetted the selector, so a miss here is a
		// configuration bug, not caller input.
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve audience")
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	started := time.Now()
	outcomes := s.dispatcher.Dispatch(dispatchCtx, announcement, resolution.Channels)
	s.metrics.ObserveDispatchDuration(time.Since(started))

	sent := 0
	failed := make([]string, 0)
	for _, outcome := range outcomes {
		s.metrics.RecordDispatchOutcome(outcome.Channel, outcome.Success)
		if outcome.Success {
			sent++
		} else {
			failed = append(failed, string(outcome.Channel))
		}
	}

	s.activity.RecordDistribution(ctx, announcement, resolution.EstimatedRecipients, sent)

	s.logger.Info("announcement distributed",
		zap.String("announcement_id", announcement.ID),
		zap.String("audience", string(announcement.Audience)),
		zap.Int("channels", len(resolution.Channels)),
		zap.Int("notifications_sent", sent),
		zap.Strings("failed_channels", failed))

	return &models.DistributionResult{
		Success:           true,
		AnnouncementID:    announcement.ID,
		NotificationsSent: sent,
		FailedChannels:    failed,
	}, nil
}

// Get returns an announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get announcement")
	}
	return announcement, nil
}

// AnnouncementListRequest describes filters for listing announcements.
type AnnouncementListRequest struct {
	Audience string `json:"audience"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// List returns announcements with pagination.
func (s *AnnouncementService) List(ctx context.Context, req AnnouncementListRequest) ([]models.Announcement, *models.Pagination, error) {
	filter := models.AnnouncementFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Audience != "" {
		audience := models.AnnouncementAudience(strings.ToLower(req.Audience))
		filter.Audience = &audience
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return rows, pagination, nil
}
