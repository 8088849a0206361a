package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/uniportal/results-portal-api/internal/models"
)

func newAnnouncementRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAnnouncementRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()

	repo := NewAnnouncementRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO announcements")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	announcement := &models.Announcement{
		Topic:    "Exam Schedule",
		Message:  "Finals moved to Dec 10, check portal for room assignments.",
		Audience: models.AudienceAll,
		Priority: models.PriorityHigh,
		Author:   "Registrar",
	}
	require.NoError(t, repo.Create(context.Background(), announcement))
	require.NotEmpty(t, announcement.ID)
	require.False(t, announcement.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryCreateError(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()

	repo := NewAnnouncementRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO announcements")).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &models.Announcement{
		Topic:    "Exam Schedule",
		Message:  "Finals moved to Dec 10.",
		Audience: models.AudienceStudents,
		Priority: models.PriorityMedium,
		Author:   "Registrar",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()

	repo := NewAnnouncementRepository(db)
	rows := sqlmock.NewRows([]string{"id", "topic", "message", "audience", "priority", "author", "created_at"}).
		AddRow("ann-1", "Exam Schedule", "Finals moved to Dec 10.", "all", "high", "Registrar", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, topic, message, audience, priority, author, created_at")).
		WithArgs("ann-1").
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), "ann-1")
	require.NoError(t, err)
	require.Equal(t, "ann-1", found.ID)
	require.Equal(t, models.AudienceAll, found.Audience)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()

	repo := NewAnnouncementRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, topic, message, audience, priority, author, created_at")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryListWithAudienceFilter(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()

	repo := NewAnnouncementRepository(db)
	rows := sqlmock.NewRows([]string{"id", "topic", "message", "audience", "priority", "author", "created_at"}).
		AddRow("ann-1", "Exam Schedule", "Finals moved to Dec 10.", "students", "high", "Registrar", time.Now()).
		AddRow("ann-2", "Library Hours", "Library closes early during exams.", "students", "low", "system", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, topic, message, audience, priority, author, created_at")).
		WithArgs("students").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM announcements")).
		WithArgs("students").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	audience := models.AudienceStudents
	announcements, total, err := repo.List(context.Background(), models.AnnouncementFilter{
		Audience: &audience,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, announcements, 2)
	require.Equal(t, 2, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
