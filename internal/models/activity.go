package models

import "time"

// ActivityTypeAnnouncement is the activity trail entry type for
// announcement distributions.
const ActivityTypeAnnouncement = "announcement"

// ActivityMetadata is stored alongside the record as jsonb.
type ActivityMetadata struct {
	AnnouncementID string               `json:"announcementId"`
	Audience       AnnouncementAudience `json:"audience"`
	RecipientCount int                  `json:"recipientCount"`
}

// ActivityRecord summarizes one distribution operation for the audit trail.
type ActivityRecord struct {
	ID          string           `db:"id" json:"id"`
	Type        string           `db:"type" json:"type"`
	Description string           `db:"description" json:"description"`
	Actor       string           `db:"actor" json:"actor"`
	Metadata    ActivityMetadata `db:"-" json:"metadata"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}
