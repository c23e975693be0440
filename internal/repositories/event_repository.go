package repository

import (
	"context"
	"database/sql"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/utils"
	"github.com/google/uuid"
)

type EventRepository interface {
	InsertEvent(ctx context.Context, event *models.SystemEvent) error
}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepo(db *sql.DB) EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) InsertEvent(ctx context.Context, event *models.SystemEvent) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO system_events (kind, slug, business_id, message, ip, user_agent, referrer)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at
	`

	var businessID uuid.NullUUID
	if event.BusinessID != nil {
		businessID = uuid.NullUUID{UUID: *event.BusinessID, Valid: true}
	}

	return r.DB.QueryRowContext(dbCtx, query,
		event.Kind,
		event.Slug,
		businessID,
		event.Message,
		event.IP,
		event.UserAgent,
		event.Referrer,
	).Scan(&event.ID, &event.CreatedAt)
}
