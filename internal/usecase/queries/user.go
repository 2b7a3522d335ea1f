package queries

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type UserQueries interface {
	List(ctx context.Context) ([]*UserView, error)
	// Bookings returns the user's bookings ordered by start time, including
	// cancelled ones.
	Bookings(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
}

type userQueriesImpl struct {
	users    UserViewRepo
	bookings BookingViewRepo
}

func NewUserQueries(users UserViewRepo, bookings BookingViewRepo) UserQueries {
	return &userQueriesImpl{
		users:    users,
		bookings: bookings,
	}
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	users, err := q.users.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list users")
	}
	return users, nil
}

func (q *userQueriesImpl) Bookings(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}

	items, err := q.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list user bookings")
	}
	return items, nil
}
