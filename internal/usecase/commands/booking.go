package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/patch"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidID          = errs.New("invalid id")
	ErrBookingNotFound    = errs.New("booking not found")
	ErrRoomNotFound       = errs.New("room not found")
	ErrUserNotFound       = errs.New("user not found")
	ErrBookingConflict    = errs.New("booking conflict")
	ErrAlreadyTerminal    = errs.New("booking already in terminal state")
	ErrInvalidStatusValue = errs.New("status can only be changed to complete")
	ErrInvalidRecurrence  = errs.New("invalid recurrence rule")
	ErrStoreFailure       = errs.New("store operation failed")
)

type CreateBookingParams struct {
	RoomID     uuid.UUID
	UserID     uuid.UUID
	Title      string
	StartTime  time.Time
	EndTime    time.Time
	Recurrence *RecurrenceParams
}

type RecurrenceParams struct {
	Frequency booking.Frequency
	Interval  int
	EndDate   *time.Time
}

type RescheduleParams struct {
	Title     *string
	StartTime time.Time
	EndTime   time.Time
}

// ConflictDetail summarizes the blocking booking reported back to the caller.
type ConflictDetail struct {
	ID        uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// CreateBookingResult carries either an active booking (free slot) or a
// queued pending booking plus the conflict that blocked it.
type CreateBookingResult struct {
	Booking  *booking.Booking
	Conflict *ConflictDetail
	Waiting  *booking.WaitingEntry
}

type RescheduleResult struct {
	Booking  *booking.Booking
	Promoted *booking.Booking
}

type CompleteResult struct {
	Booking   *booking.Booking
	Successor *booking.Booking
}

type CancelResult struct {
	Booking   *booking.Booking
	Promoted  *booking.Booking
	Successor *booking.Booking
}

// BookingCommands is the booking lifecycle engine. Each operation runs as one
// atomic unit of work; inputs are assumed already shape- and policy-validated
// by the transport layer.
type BookingCommands interface {
	Create(ctx context.Context, p CreateBookingParams) (*CreateBookingResult, error)
	Reschedule(ctx context.Context, id uuid.UUID, p RescheduleParams) (*RescheduleResult, error)
	Complete(ctx context.Context, id uuid.UUID) (*CompleteResult, error)
	// ChangeStatus handles the bare-status form of an update. Complete is the
	// only status a caller may set directly; everything else has a dedicated
	// transition.
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*CompleteResult, error)
	Cancel(ctx context.Context, id uuid.UUID) (*CancelResult, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, p CreateBookingParams) (*CreateBookingResult, error) {
	if p.RoomID == uuid.Nil || p.UserID == uuid.Nil {
		return nil, ErrInvalidID
	}
	slot, err := booking.NewTimeSlot(p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}

	// Room and user lookups happen before any mutation is attempted.
	reads := c.uow.CommandReads()
	if _, err := reads.RoomByID(ctx, p.RoomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}
	if _, err := reads.UserByID(ctx, p.UserID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	var result CreateBookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		conflict, err := tx.Bookings().FindConflicting(ctx, p.RoomID, slot, nil)
		if err != nil {
			return err
		}

		ruleID, err := c.createRule(ctx, tx, p.Recurrence, slot)
		if err != nil {
			return err
		}

		if conflict != nil {
			// Queued demand: the pending booking may overlap freely.
			queued := booking.NewBooking(p.RoomID, p.UserID, p.Title, slot, booking.StatusPending, ruleID)
			if err := tx.Bookings().Create(ctx, queued); err != nil {
				return err
			}
			entry := booking.NewWaitingEntry(queued.ID())
			if err := tx.Waiting().Create(ctx, entry); err != nil {
				return err
			}
			if err := tx.History().Append(ctx, booking.NewHistoryRecord(queued.ID(), booking.ActionCreatedPending, p.UserID)); err != nil {
				return err
			}
			if err := c.notify(ctx, tx, "booking_queued", queued); err != nil {
				return err
			}
			result = CreateBookingResult{
				Booking:  queued,
				Conflict: conflictDetail(conflict),
				Waiting:  entry,
			}
			return nil
		}

		created := booking.NewBooking(p.RoomID, p.UserID, p.Title, slot, booking.StatusActive, ruleID)
		if err := tx.Bookings().Create(ctx, created); err != nil {
			return err
		}
		if err := tx.History().Append(ctx, booking.NewHistoryRecord(created.ID(), booking.ActionCreated, p.UserID)); err != nil {
			return err
		}
		if err := c.notify(ctx, tx, "booking_created", created); err != nil {
			return err
		}
		result = CreateBookingResult{Booking: created}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &result, nil
}

func (c *bookingCommandsImpl) Reschedule(ctx context.Context, id uuid.UUID, p RescheduleParams) (*RescheduleResult, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}
	slot, err := booking.NewTimeSlot(p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}

	var result RescheduleResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		// Unlike Create, rescheduling into an occupied slot is rejected
		// outright rather than queued.
		conflict, err := tx.Bookings().FindConflicting(ctx, b.RoomID(), slot, &id)
		if err != nil {
			return err
		}
		if conflict != nil {
			return ErrBookingConflict
		}

		oldSlot := b.Slot()
		title := patch.Coalesce(p.Title, b.Title())
		if err := b.Reschedule(title, slot); err != nil {
			return errs.Mark(err, ErrAlreadyTerminal)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.History().Append(ctx, booking.NewHistoryRecord(b.ID(), booking.ActionUpdated, b.UserID())); err != nil {
			return err
		}

		// The freed range may promote a pending booking, but only one whose
		// desired slot matches it exactly.
		promoted, err := c.promoteMatching(ctx, tx, b.RoomID(), oldSlot)
		if err != nil {
			return err
		}

		result = RescheduleResult{Booking: b, Promoted: promoted}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &result, nil
}

func (c *bookingCommandsImpl) Complete(ctx context.Context, id uuid.UUID) (*CompleteResult, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	var result CompleteResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := b.Complete(); err != nil {
			return errs.Mark(err, ErrAlreadyTerminal)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.History().Append(ctx, booking.NewHistoryRecord(b.ID(), booking.ActionCompleted, b.UserID())); err != nil {
			return err
		}

		successor, err := c.spawnSuccessor(ctx, tx, b)
		if err != nil {
			return err
		}

		result = CompleteResult{Booking: b, Successor: successor}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &result, nil
}

func (c *bookingCommandsImpl) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*CompleteResult, error) {
	if status != string(booking.StatusComplete) {
		return nil, ErrInvalidStatusValue
	}
	return c.Complete(ctx, id)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (*CancelResult, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidID
	}

	var result CancelResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := b.Cancel(); err != nil {
			return errs.Mark(err, ErrAlreadyTerminal)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		if err := tx.History().Append(ctx, booking.NewHistoryRecord(b.ID(), booking.ActionCancelled, b.UserID())); err != nil {
			return err
		}
		if err := c.notify(ctx, tx, "booking_cancelled", b); err != nil {
			return err
		}

		promoted, err := c.promoteNext(ctx, tx, b.RoomID())
		if err != nil {
			return err
		}
		successor, err := c.spawnSuccessor(ctx, tx, b)
		if err != nil {
			return err
		}

		result = CancelResult{Booking: b, Promoted: promoted, Successor: successor}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &result, nil
}

func (c *bookingCommandsImpl) createRule(ctx context.Context, tx shared.Tx, p *RecurrenceParams, slot booking.TimeSlot) (*uuid.UUID, error) {
	if p == nil {
		return nil, nil
	}
	if !p.Frequency.IsValid() || p.Interval <= 0 {
		return nil, ErrInvalidRecurrence
	}
	rule := booking.NewRule(p.Frequency, p.Interval, slot.Start(), p.EndDate)
	if err := tx.Recurrences().Create(ctx, rule); err != nil {
		return nil, err
	}
	id := rule.ID
	return &id, nil
}

// spawnSuccessor creates the next occurrence of a recurring booking, if the
// rule produces one. The successor starts active on the same room/user/title
// and links back to the shared rule.
func (c *bookingCommandsImpl) spawnSuccessor(ctx context.Context, tx shared.Tx, b *booking.Booking) (*booking.Booking, error) {
	ruleID := b.RecurrenceRuleID()
	if ruleID == nil {
		return nil, nil
	}
	rule, err := tx.Recurrences().FindByID(ctx, *ruleID)
	if err != nil {
		return nil, err
	}

	nextStart, nextEnd, ok := booking.NextOccurrence(*rule, b.Slot().Start(), b.Slot().End())
	if !ok {
		return nil, nil
	}
	slot, err := booking.NewTimeSlot(nextStart, nextEnd)
	if err != nil {
		return nil, err
	}

	successor := booking.NewBooking(b.RoomID(), b.UserID(), b.Title(), slot, booking.StatusActive, ruleID)
	if err := tx.Bookings().Create(ctx, successor); err != nil {
		return nil, err
	}
	if err := tx.History().Append(ctx, booking.NewHistoryRecord(successor.ID(), booking.ActionFromRecurrence, b.UserID())); err != nil {
		return nil, err
	}
	return successor, nil
}

func (c *bookingCommandsImpl) notify(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": b.ID(),
		"room_id":    b.RoomID(),
		"user_id":    b.UserID(),
		"start_time": b.Slot().Start(),
		"end_time":   b.Slot().End(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", topic, payload, c.clock.Now())
}

func conflictDetail(b *booking.Booking) *ConflictDetail {
	return &ConflictDetail{
		ID:        b.ID(),
		Title:     b.Title(),
		StartTime: b.Slot().Start(),
		EndTime:   b.Slot().End(),
	}
}

// classify separates expected business rejections from store faults: anything
// not in the taxonomy is a failed unit of work.
func classify(err error) error {
	for _, sentinel := range []error{
		ErrInvalidID,
		ErrBookingNotFound,
		ErrRoomNotFound,
		ErrUserNotFound,
		ErrBookingConflict,
		ErrAlreadyTerminal,
		ErrInvalidStatusValue,
		ErrInvalidRecurrence,
		booking.ErrInvalidTimeSlot,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return errs.Mark(err, ErrStoreFailure)
}
