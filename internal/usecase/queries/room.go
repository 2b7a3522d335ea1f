package queries

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context) ([]*RoomView, error)
}

type RoomQueries interface {
	List(ctx context.Context) ([]*RoomView, error)
	// Availability reports the free slots of a room on a calendar day,
	// computed by subtracting non-cancelled bookings from the working-hours
	// window.
	Availability(ctx context.Context, roomID uuid.UUID, day time.Time) (*AvailabilityReport, error)
}

type roomQueriesImpl struct {
	rooms    RoomViewRepo
	bookings BookingViewRepo
	policy   booking.Policy
}

func NewRoomQueries(rooms RoomViewRepo, bookings BookingViewRepo, policy booking.Policy) RoomQueries {
	return &roomQueriesImpl{
		rooms:    rooms,
		bookings: bookings,
		policy:   policy,
	}
}

func (q *roomQueriesImpl) List(ctx context.Context) ([]*RoomView, error) {
	rooms, err := q.rooms.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list rooms")
	}
	return rooms, nil
}

func (q *roomQueriesImpl) Availability(ctx context.Context, roomID uuid.UUID, day time.Time) (*AvailabilityReport, error) {
	if _, err := q.rooms.FindByID(ctx, roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to find room")
	}

	workStart, workEnd := q.policy.WindowOn(day)
	busy, err := q.bookings.FindBusy(ctx, roomID, workStart, workEnd)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load busy intervals")
	}

	return &AvailabilityReport{
		RoomID:       roomID,
		Date:         day.Format("2006-01-02"),
		Availability: subtractBusy(workStart, workEnd, busy),
	}, nil
}

// subtractBusy sweeps a cursor across the window, emitting the gaps between
// busy intervals. Busy intervals must be sorted by start and may overlap the
// window edges or each other.
func subtractBusy(windowStart, windowEnd time.Time, busy []BusyInterval) []FreeSlot {
	free := make([]FreeSlot, 0)
	cursor := windowStart

	for _, b := range busy {
		if b.Start.After(cursor) {
			slotEnd := b.Start
			if slotEnd.After(windowEnd) {
				slotEnd = windowEnd
			}
			if cursor.Before(slotEnd) {
				free = append(free, FreeSlot{Start: cursor, End: slotEnd})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(windowEnd) {
			break
		}
	}

	if cursor.Before(windowEnd) {
		free = append(free, FreeSlot{Start: cursor, End: windowEnd})
	}
	return free
}
