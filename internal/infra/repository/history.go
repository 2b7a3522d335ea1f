package repository

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/shared"
)

type HistoryRepository struct {
	db db.DBTX
}

func NewHistoryRepository(dbtx db.DBTX) shared.HistoryRepository {
	return &HistoryRepository{db: dbtx}
}

func (r *HistoryRepository) Append(ctx context.Context, rec *booking.HistoryRecord) error {
	const query = `
		INSERT INTO booking_history (id, booking_id, action, actor_id)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, rec.ID, rec.BookingID, string(rec.Action), rec.ActorID)
	if err != nil {
		return infra.WrapRepoErr("failed to append history record", err)
	}
	return nil
}
