//go:build unit

package booking_test

import (
	"testing"

	"roombook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()
	return booking.NewBooking(uuid.New(), uuid.New(), "standup", mustSlot(t, 10, 11), status, nil)
}

func TestBookingTransitions(t *testing.T) {
	t.Run("promote pending", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		require.NoError(t, b.Promote())
		assert.Equal(t, booking.StatusActive, b.Status())
	})

	t.Run("promote non-pending", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusActive, booking.StatusCancelled, booking.StatusComplete} {
			b := newTestBooking(t, status)
			require.ErrorIs(t, b.Promote(), booking.ErrNotPending)
			assert.Equal(t, status, b.Status(), "failed promote must not change status")
		}
	})

	t.Run("cancel and complete from live states", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusPending, booking.StatusActive} {
			b := newTestBooking(t, status)
			require.NoError(t, b.Cancel())
			assert.Equal(t, booking.StatusCancelled, b.Status())

			b = newTestBooking(t, status)
			require.NoError(t, b.Complete())
			assert.Equal(t, booking.StatusComplete, b.Status())
		}
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		for _, status := range []booking.Status{booking.StatusCancelled, booking.StatusComplete} {
			b := newTestBooking(t, status)
			assert.ErrorIs(t, b.Cancel(), booking.ErrAlreadyTerminal)
			assert.ErrorIs(t, b.Complete(), booking.ErrAlreadyTerminal)
			assert.ErrorIs(t, b.Reschedule("new title", mustSlot(t, 12, 13)), booking.ErrAlreadyTerminal)
			assert.Equal(t, status, b.Status())
		}
	})

	t.Run("reschedule activates a pending booking", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		newSlot := mustSlot(t, 14, 15)
		require.NoError(t, b.Reschedule("moved", newSlot))
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.Equal(t, "moved", b.Title())
		assert.True(t, b.Slot().Equal(newSlot))
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusComplete.IsTerminal())
	assert.False(t, booking.StatusPending.IsTerminal())
	assert.False(t, booking.StatusActive.IsTerminal())

	assert.True(t, booking.Status("active").IsValid())
	assert.False(t, booking.Status("archived").IsValid())
}
