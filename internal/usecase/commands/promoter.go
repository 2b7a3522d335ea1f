package commands

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

// promoteNext promotes the earliest-start pending booking for the room after
// a cancellation freed it. Promotion is unconditional: the blocker is gone and
// no overlap re-check runs against the remaining active bookings.
func (c *bookingCommandsImpl) promoteNext(ctx context.Context, tx shared.Tx, roomID uuid.UUID) (*booking.Booking, error) {
	pending, err := tx.Bookings().FindEarliestPending(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, nil
	}
	return c.promote(ctx, tx, pending)
}

// promoteMatching promotes only a pending booking whose desired range equals
// the freed slot bit-for-bit. If no pending booking wanted exactly that range
// nothing is promoted, even though the room is now free at a different time.
func (c *bookingCommandsImpl) promoteMatching(ctx context.Context, tx shared.Tx, roomID uuid.UUID, freed booking.TimeSlot) (*booking.Booking, error) {
	pending, err := tx.Bookings().FindPendingBySlot(ctx, roomID, freed)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, nil
	}
	return c.promote(ctx, tx, pending)
}

func (c *bookingCommandsImpl) promote(ctx context.Context, tx shared.Tx, pending *booking.Booking) (*booking.Booking, error) {
	if err := pending.Promote(); err != nil {
		return nil, err
	}
	if err := tx.Bookings().Update(ctx, pending); err != nil {
		return nil, err
	}
	if err := tx.Waiting().MarkConverted(ctx, pending.ID()); err != nil {
		return nil, err
	}
	rec := booking.NewHistoryRecord(pending.ID(), booking.ActionPromoted, pending.UserID())
	if err := tx.History().Append(ctx, rec); err != nil {
		return nil, err
	}
	if err := c.notify(ctx, tx, "booking_promoted", pending); err != nil {
		return nil, err
	}
	return pending, nil
}
