//go:build unit

package queries_test

import (
	"context"
	"testing"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBookingQueriesGetByID(t *testing.T) {
	q := queries.NewBookingQueries(&fakeBookingViews{})

	t.Run("nil id", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), uuid.Nil)
		require.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), uuid.New())
		require.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestUserQueriesBookings(t *testing.T) {
	users := &fakeUserViews{}
	q := queries.NewUserQueries(users, &fakeBookingViews{})

	_, err := q.Bookings(context.Background(), uuid.New())
	require.ErrorIs(t, err, queries.ErrUserNotFound)
}
