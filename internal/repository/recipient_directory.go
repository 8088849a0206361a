package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/uniportal/results-portal-api/internal/models"
)

// Static recipient estimates. These are advisory counts for the activity
// trail, not delivery guarantees; a live directory should replace them.
var staticRecipientCounts = map[models.AnnouncementAudience]int{
	models.AudienceStudents: 1000,
	models.AudienceExam:     25,
	models.AudienceAll:      1250,
}

// StaticRecipientCount returns the built-in estimate for an audience.
func StaticRecipientCount(audience models.AnnouncementAudience) int {
	return staticRecipientCounts[audience]
}

// RedisRecipientDirectory reads per-audience recipient counts maintained by
// the user directory sync under `recipients:<audience>`. Missing keys and
// Redis failures fall back to the static table so estimates stay available.
type RedisRecipientDirectory struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRecipientDirectory creates the directory lookup.
func NewRedisRecipientDirectory(client *redis.Client, logger *zap.Logger) *RedisRecipientDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRecipientDirectory{client: client, logger: logger}
}

// Count returns the estimated recipient count for an audience selector.
func (d *RedisRecipientDirectory) Count(ctx context.Context, audience models.AnnouncementAudience) (int, error) {
	key := fmt.Sprintf("recipients:%s", audience)
	count, err := d.client.Get(ctx, key).Int()
	if err != nil {
		if err != redis.Nil {
			d.logger.Warn("recipient count lookup failed, using static estimate",
				zap.String("audience", string(audience)), zap.Error(err))
		}
		return StaticRecipientCount(audience), nil
	}
	return count, nil
}
