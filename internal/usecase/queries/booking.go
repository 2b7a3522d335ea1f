package queries

import (
	"context"
	"time"

	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrRoomNotFound    = errs.New("room not found")
	ErrUserNotFound    = errs.New("user not found")
)

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListNonCancelled returns every booking except cancelled ones, ordered
	// by start time.
	ListNonCancelled(ctx context.Context) ([]*BookingListItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	// FindBusy returns the non-cancelled intervals for the room intersecting
	// [from, to), ordered by start time.
	FindBusy(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]BusyInterval, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	if id == uuid.Nil {
		return nil, ErrBookingNotFound
	}
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context) ([]*BookingListItem, error) {
	items, err := q.repo.ListNonCancelled(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings")
	}
	return items, nil
}
