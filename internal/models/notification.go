package models

// NotificationTypeAnnouncement marks notifications originating from the
// announcement pipeline.
const NotificationTypeAnnouncement = "announcement"

// Notification is the per-channel projection of a persisted announcement.
// One Notification is built per target channel; Audience carries the
// resolved channel, not the original selector.
type Notification struct {
	Title    string               `json:"title"`
	Message  string               `json:"message"`
	Type     string               `json:"type"`
	From     string               `json:"from"`
	Priority AnnouncementPriority `json:"priority"`
	Read     bool                 `json:"read"`
	Audience Channel              `json:"audience"`
}

// DispatchOutcome is the per-channel result of a fan-out. A failed outcome
// never fails the overall operation on its own.
type DispatchOutcome struct {
	Channel Channel `json:"channel"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// DistributionResult is the aggregated response returned to the caller
// after an announcement has been persisted and fanned out. Success is
// committed by persistence; failed channels are itemized, not escalated.
type DistributionResult struct {
	Success           bool     `json:"success"`
	AnnouncementID    string   `json:"announcement_id"`
	NotificationsSent int      `json:"notifications_sent"`
	FailedChannels    []string `json:"failed_channels"`
}
