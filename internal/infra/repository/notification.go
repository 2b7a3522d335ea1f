package repository

import (
	"context"
	"time"

	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationRepository enqueues outbox jobs in the same transaction as the
// state change they announce, so a committed mutation never loses its
// notification.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) shared.NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
