package commands

import (
	"context"
	"errors"

	"roombook/internal/domain/room"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/shared"
)

var ErrInvalidRoom = errs.New("invalid room")

type CreateRoomParams struct {
	Name      string
	Capacity  int
	Amenities []string
}

type RoomCommands interface {
	Create(ctx context.Context, p CreateRoomParams) (*room.Room, error)
}

type roomCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewRoomCommands(uow shared.UnitOfWork) RoomCommands {
	return &roomCommandsImpl{uow: uow}
}

func (c *roomCommandsImpl) Create(ctx context.Context, p CreateRoomParams) (*room.Room, error) {
	entity, err := room.NewRoom(p.Name, p.Capacity, p.Amenities)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoom)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Create(ctx, entity)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRoom) {
			return nil, err
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	return entity, nil
}
