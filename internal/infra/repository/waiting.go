package repository

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

type WaitingRepository struct {
	db db.DBTX
}

func NewWaitingRepository(dbtx db.DBTX) shared.WaitingRepository {
	return &WaitingRepository{db: dbtx}
}

func (r *WaitingRepository) Create(ctx context.Context, entry *booking.WaitingEntry) error {
	const query = `
		INSERT INTO waiting_entries (id, booking_id, status)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, entry.ID, entry.BookingID, string(entry.Status))
	if err != nil {
		return infra.WrapRepoErr("failed to create waiting entry", err)
	}
	return nil
}

func (r *WaitingRepository) MarkConverted(ctx context.Context, bookingID uuid.UUID) error {
	const query = `
		UPDATE waiting_entries
		SET status = 'converted'
		WHERE booking_id = $1 AND status = 'pending'`

	tag, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark waiting entry converted", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("waiting entry not found", nil, infra.KindNotFound)
	}
	return nil
}
