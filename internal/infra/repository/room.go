package repository

import (
	"context"
	"errors"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(dbtx db.DBTX) shared.RoomRepository {
	return &RoomRepository{db: dbtx}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	const query = `
		INSERT INTO rooms (id, name, capacity, amenities)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, rm.ID(), rm.Name(), rm.Capacity(), rm.Amenities())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("room already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create room", err)
	}
	return nil
}
