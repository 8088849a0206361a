package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/uniportal/results-portal-api/internal/models"
)

// ActivityRepository persists the audit trail of distribution operations.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts one activity record. Metadata is stored as jsonb.
func (r *ActivityRepository) Create(ctx context.Context, record *models.ActivityRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("marshal activity metadata: %w", err)
	}
	const query = `INSERT INTO activity_log (id, type, description, actor, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.Type, record.Description, record.Actor, metadata, record.CreatedAt); err != nil {
		return fmt.Errorf("create activity record: %w", err)
	}
	return nil
}

// ListRecent returns the most recent activity records for operator review.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT id, type, description, actor, metadata, created_at
FROM activity_log ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activity records: %w", err)
	}
	defer rows.Close()

	var records []models.ActivityRecord
	for rows.Next() {
		var (
			record   models.ActivityRecord
			metadata []byte
		)
		if err := rows.Scan(&record.ID, &record.Type, &record.Description, &record.Actor, &metadata, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity record: %w", err)
		}
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &record.Metadata)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
