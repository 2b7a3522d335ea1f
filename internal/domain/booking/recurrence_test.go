//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	t.Run("daily advances by interval days", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1, StartDate: start}

		nextStart, nextEnd, ok := booking.NextOccurrence(rule, start, end)
		require.True(t, ok)
		assert.Equal(t, start.AddDate(0, 0, 1), nextStart)
		assert.Equal(t, end.AddDate(0, 0, 1), nextEnd)
	})

	t.Run("daily with larger interval", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 3, StartDate: start}

		nextStart, _, ok := booking.NextOccurrence(rule, start, end)
		require.True(t, ok)
		assert.Equal(t, start.AddDate(0, 0, 3), nextStart)
	})

	t.Run("weekly advances by interval weeks", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyWeekly, Interval: 2, StartDate: start}

		nextStart, nextEnd, ok := booking.NextOccurrence(rule, start, end)
		require.True(t, ok)
		assert.Equal(t, start.AddDate(0, 0, 14), nextStart)
		assert.Equal(t, 90*time.Minute, nextEnd.Sub(nextStart), "duration must be preserved")
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		endDate := start.AddDate(0, 0, 1)
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1, StartDate: start, EndDate: &endDate}

		nextStart, _, ok := booking.NextOccurrence(rule, start, end)
		require.True(t, ok, "next start exactly on the end date still occurs")
		assert.Equal(t, endDate, nextStart)

		_, _, ok = booking.NextOccurrence(rule, nextStart, nextStart.Add(90*time.Minute))
		assert.False(t, ok, "rule is exhausted past the end date")
	})

	t.Run("no end date never exhausts", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.FrequencyDaily, Interval: 1, StartDate: start}

		cur, curEnd := start, end
		for i := 0; i < 100; i++ {
			var ok bool
			cur, curEnd, ok = booking.NextOccurrence(rule, cur, curEnd)
			require.True(t, ok)
		}
		assert.Equal(t, start.AddDate(0, 0, 100), cur)
	})

	t.Run("unknown frequency is a silent no-op", func(t *testing.T) {
		rule := booking.Rule{Frequency: booking.Frequency("monthly"), Interval: 1, StartDate: start}

		_, _, ok := booking.NextOccurrence(rule, start, end)
		assert.False(t, ok)
	})
}
