package readstore

import (
	"context"
	"time"

	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.room_id, r.name, b.user_id, u.name, b.title,
		       b.start_time, b.end_time, b.status, b.recurrence_rule_id,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1`

	var (
		view   queries.BookingView
		ruleID pgtype.UUID
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.UserID, &view.UserName,
		&view.Title, &view.StartTime, &view.EndTime, &view.Status, &ruleID,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	view.RecurrenceRuleID = pgconv.UUIDPtrFromPgtype(ruleID)
	return &view, nil
}

func (s *BookingReadStore) ListNonCancelled(ctx context.Context) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.room_id, r.name, b.title, b.start_time, b.end_time, b.status
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status <> 'cancelled'
		ORDER BY b.start_time, b.id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.RoomID, &item.RoomName, &item.Title,
			&item.StartTime, &item.EndTime, &item.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

func (s *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.room_id, r.name, b.title, b.start_time, b.end_time, b.status
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.user_id = $1
		ORDER BY b.start_time, b.id`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.RoomID, &item.RoomName, &item.Title,
			&item.StartTime, &item.EndTime, &item.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

func (s *BookingReadStore) FindBusy(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]queries.BusyInterval, error) {
	const query = `
		SELECT start_time, end_time
		FROM bookings
		WHERE room_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`

	rows, err := s.db.Query(ctx, query, roomID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load busy intervals", err)
	}
	defer rows.Close()

	busy := make([]queries.BusyInterval, 0)
	for rows.Next() {
		var b queries.BusyInterval
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy interval", err)
		}
		busy = append(busy, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate busy intervals", err)
	}
	return busy, nil
}
