package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyTerminal = errors.New("booking is already in a terminal state")
	ErrNotPending      = errors.New("booking is not pending")
)

// Booking is the aggregate root. WaitingEntry and HistoryRecord rows are
// lifetime-bound to it; the recurrence rule is shared across the occurrence
// chain it generates.
type Booking struct {
	id               uuid.UUID
	roomID           uuid.UUID
	userID           uuid.UUID
	title            string
	slot             TimeSlot
	status           Status
	recurrenceRuleID *uuid.UUID
	createdAt        time.Time
	updatedAt        time.Time
}

// NewBooking creates a booking in pending or active state depending on the
// conflict outcome at creation time.
func NewBooking(roomID, userID uuid.UUID, title string, slot TimeSlot, status Status, ruleID *uuid.UUID) *Booking {
	return &Booking{
		id:               uuid.New(),
		roomID:           roomID,
		userID:           userID,
		title:            title,
		slot:             slot,
		status:           status,
		recurrenceRuleID: ruleID,
	}
}

func ReconstructBooking(
	id, roomID, userID uuid.UUID,
	title string,
	slot TimeSlot,
	status Status,
	ruleID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		roomID:           roomID,
		userID:           userID,
		title:            title,
		slot:             slot,
		status:           status,
		recurrenceRuleID: ruleID,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) RoomID() uuid.UUID            { return b.roomID }
func (b *Booking) UserID() uuid.UUID            { return b.userID }
func (b *Booking) Title() string                { return b.title }
func (b *Booking) Slot() TimeSlot               { return b.slot }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) RecurrenceRuleID() *uuid.UUID { return b.recurrenceRuleID }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) IsPending() bool {
	return b.status == StatusPending
}

// Promote transitions a queued booking to active after its blocker is removed.
func (b *Booking) Promote() error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusActive
	return nil
}

// Reschedule moves the booking onto a new slot. The booking becomes active:
// a pending booking rescheduled into a free slot no longer represents queued
// demand for its old one.
func (b *Booking) Reschedule(title string, slot TimeSlot) error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.title = title
	b.slot = slot
	b.status = StatusActive
	return nil
}

func (b *Booking) Cancel() error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) Complete() error {
	if b.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	b.status = StatusComplete
	return nil
}

// WaitingEntry queues a pending booking for promotion. One-to-one with its
// booking; flipped to converted exactly once, never deleted.
type WaitingEntry struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Status    WaitingStatus
	CreatedAt time.Time
}

func NewWaitingEntry(bookingID uuid.UUID) *WaitingEntry {
	return &WaitingEntry{
		ID:        uuid.New(),
		BookingID: bookingID,
		Status:    WaitingPending,
	}
}

// HistoryRecord is one append-only audit-trail entry. The timestamp is
// assigned by the store at write time.
type HistoryRecord struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Action    HistoryAction
	ActorID   uuid.UUID
	CreatedAt time.Time
}

func NewHistoryRecord(bookingID uuid.UUID, action HistoryAction, actorID uuid.UUID) *HistoryRecord {
	return &HistoryRecord{
		ID:        uuid.New(),
		BookingID: bookingID,
		Action:    action,
		ActorID:   actorID,
	}
}
