package models

import "time"

// SystemMetrics is a lightweight snapshot of pipeline activity.
type SystemMetrics struct {
	AnnouncementsPublished uint64    `json:"announcements_published"`
	NotificationsSent      uint64    `json:"notifications_sent"`
	NotificationsFailed    uint64    `json:"notifications_failed"`
	Goroutines             int       `json:"goroutines"`
	GeneratedAt            time.Time `json:"generated_at"`
}
