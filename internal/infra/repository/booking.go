package repository

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, room_id, user_id, title, start_time, end_time, status, recurrence_rule_id, created_at, updated_at`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) shared.BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, room_id, user_id, title, start_time, end_time, status, recurrence_rule_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.RoomID(), b.UserID(), b.Title(),
		b.Slot().Start(), b.Slot().End(), string(b.Status()),
		pgconv.UUIDPtrToPgtype(b.RecurrenceRuleID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET title = $2, start_time = $3, end_time = $4, status = $5, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		b.ID(), b.Title(), b.Slot().Start(), b.Slot().End(), string(b.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

// Half-open overlap: an existing row conflicts when it starts before the slot
// ends and ends after the slot starts. Every non-cancelled row counts,
// pending ones included; only cancelled rows free their range.
func (r *BookingRepository) FindConflicting(ctx context.Context, roomID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY start_time, id
		LIMIT 1`

	b, err := scanBooking(r.db.QueryRow(ctx, query,
		roomID, slot.Start(), slot.End(), pgconv.UUIDPtrToPgtype(excludeID),
	))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find conflicting booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindEarliestPending(ctx context.Context, roomID uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND status = 'pending'
		ORDER BY start_time, created_at, id
		LIMIT 1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, roomID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find pending booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindPendingBySlot(ctx context.Context, roomID uuid.UUID, slot booking.TimeSlot) (*booking.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND status = 'pending' AND start_time = $2 AND end_time = $3
		ORDER BY created_at, id
		LIMIT 1`

	b, err := scanBooking(r.db.QueryRow(ctx, query, roomID, slot.Start(), slot.End()))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find pending booking by slot", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, roomID, userID   uuid.UUID
		title, status        string
		start, end           time.Time
		ruleID               pgtype.UUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &roomID, &userID, &title, &start, &end, &status, &ruleID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		id, roomID, userID, title, slot,
		booking.Status(status),
		pgconv.UUIDPtrFromPgtype(ruleID),
		createdAt, updatedAt,
	), nil
}
