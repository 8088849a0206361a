package models

import "time"

// AnnouncementAudience is the caller-chosen selector indicating intended
// recipients of an announcement.
type AnnouncementAudience string

const (
	AudienceAll      AnnouncementAudience = "all"
	AudienceStudents AnnouncementAudience = "students"
	AudienceExam     AnnouncementAudience = "exam"
)

// AnnouncementPriority defines display urgency for announcements.
type AnnouncementPriority string

const (
	PriorityLow      AnnouncementPriority = "low"
	PriorityMedium   AnnouncementPriority = "medium"
	PriorityHigh     AnnouncementPriority = "high"
	PriorityCritical AnnouncementPriority = "critical"
)

// Channel is a named notification destination for one audience segment.
type Channel string

const (
	ChannelStudents     Channel = "student-channel"
	ChannelExamDivision Channel = "exam-division-channel"
)

// Announcement represents a persisted announcement row. Announcements are
// immutable once created; there is no update or delete path.
type Announcement struct {
	ID        string               `db:"id" json:"id"`
	Topic     string               `db:"topic" json:"topic"`
	Message   string               `db:"message" json:"message"`
	Audience  AnnouncementAudience `db:"audience" json:"audience"`
	Priority  AnnouncementPriority `db:"priority" json:"priority"`
	Author    string               `db:"author" json:"author"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
}

// AnnouncementFilter allows listing announcements.
type AnnouncementFilter struct {
	Audience *AnnouncementAudience
	Page     int
	PageSize int
}

// AudienceLabel returns the human-readable label used in activity
// descriptions.
func AudienceLabel(audience AnnouncementAudience) string {
	switch audience {
	case AudienceStudents:
		return "Students"
	case AudienceExam:
		return "Exam Division"
	default:
		return "All Users"
	}
}
