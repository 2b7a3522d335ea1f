package readstore

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	const query = `
		SELECT id, name, capacity, amenities, created_at
		FROM rooms
		WHERE id = $1`

	var view queries.RoomView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Capacity, &view.Amenities, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return &view, nil
}

func (s *RoomReadStore) List(ctx context.Context) ([]*queries.RoomView, error) {
	const query = `
		SELECT id, name, capacity, amenities, created_at
		FROM rooms
		ORDER BY name, id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	views := make([]*queries.RoomView, 0)
	for rows.Next() {
		var view queries.RoomView
		if err := rows.Scan(&view.ID, &view.Name, &view.Capacity, &view.Amenities, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return views, nil
}
