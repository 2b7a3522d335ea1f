//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped serialization failure", errors.Join(errors.New("tx"), &pgconn.PgError{Code: "40001"}), true},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, isRetryableError(c.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt < 4; attempt++ {
		expected := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)

		assert.GreaterOrEqual(t, got, expected, "attempt %d", attempt)
		assert.Less(t, got, expected+expected/5+time.Millisecond, "attempt %d jitter bound", attempt)
	}
}

func TestShouldRetry(t *testing.T) {
	retryable := &pgconn.PgError{Code: "40001"}

	assert.True(t, shouldRetry(retryable, 0, 3))
	assert.True(t, shouldRetry(retryable, 2, 3))
	assert.False(t, shouldRetry(retryable, 3, 3), "max attempts exhausted")
	assert.False(t, shouldRetry(errors.New("boom"), 0, 3))
}
