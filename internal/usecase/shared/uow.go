package shared

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"

	"github.com/google/uuid"
)

// UnitOfWork scopes every multi-record mutation to one atomic transaction.
// Within runs fn inside a serializable transaction and retries serialization
// aborts; partial application is never observable.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation lookups that may run outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Waiting() WaitingRepository
	History() HistoryRepository
	Recurrences() RecurrenceRepository
	Notifications() NotificationRepository
	Rooms() RoomRepository
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

// Minimal snapshots for command-side validation reads
type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
}

type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	// FindByID returns a NOT_FOUND kinded error when the booking does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindConflicting returns the first non-cancelled booking for the room
	// overlapping slot, excluding excludeID when non-nil. Pending bookings
	// count as candidates too. Ordering is earliest start then id so conflict
	// responses stay reproducible. Returns nil when the slot is free.
	FindConflicting(ctx context.Context, roomID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (*booking.Booking, error)
	// FindEarliestPending returns the pending booking with the earliest start
	// for the room, ties broken by creation order. Returns nil when none wait.
	FindEarliestPending(ctx context.Context, roomID uuid.UUID) (*booking.Booking, error)
	// FindPendingBySlot returns the earliest-created pending booking whose
	// desired range equals slot exactly. Returns nil when none match.
	FindPendingBySlot(ctx context.Context, roomID uuid.UUID, slot booking.TimeSlot) (*booking.Booking, error)
}

type WaitingRepository interface {
	Create(ctx context.Context, entry *booking.WaitingEntry) error
	MarkConverted(ctx context.Context, bookingID uuid.UUID) error
}

type HistoryRepository interface {
	// Append writes one audit record; the store assigns the timestamp.
	Append(ctx context.Context, rec *booking.HistoryRecord) error
}

type RecurrenceRepository interface {
	Create(ctx context.Context, rule *booking.Rule) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Rule, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
}
