//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/handler/api"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingCommands struct {
	createResult     *commands.CreateBookingResult
	createErr        error
	rescheduleResult *commands.RescheduleResult
	rescheduleErr    error
	completeResult   *commands.CompleteResult
	completeErr      error
	cancelResult     *commands.CancelResult
	cancelErr        error

	statusSeen string
}

func (s *stubBookingCommands) Create(_ context.Context, _ commands.CreateBookingParams) (*commands.CreateBookingResult, error) {
	return s.createResult, s.createErr
}

func (s *stubBookingCommands) Reschedule(_ context.Context, _ uuid.UUID, _ commands.RescheduleParams) (*commands.RescheduleResult, error) {
	return s.rescheduleResult, s.rescheduleErr
}

func (s *stubBookingCommands) Complete(_ context.Context, _ uuid.UUID) (*commands.CompleteResult, error) {
	return s.completeResult, s.completeErr
}

func (s *stubBookingCommands) ChangeStatus(_ context.Context, _ uuid.UUID, status string) (*commands.CompleteResult, error) {
	s.statusSeen = status
	return s.completeResult, s.completeErr
}

func (s *stubBookingCommands) Cancel(_ context.Context, _ uuid.UUID) (*commands.CancelResult, error) {
	return s.cancelResult, s.cancelErr
}

type stubBookingQueries struct {
	view    *queries.BookingView
	viewErr error
}

func (s *stubBookingQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.viewErr
}

func (s *stubBookingQueries) List(_ context.Context) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func newBookingRouter(t *testing.T, cmds commands.BookingCommands, qs queries.BookingQueries) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	policy, err := booking.NewPolicy("09:00", "17:00", 30, 240)
	require.NoError(t, err)

	h := api.NewBookingHandler(cmds, qs, policy)
	router := gin.New()
	router.POST("/bookings", h.CreateBooking)
	router.GET("/bookings/:id", h.GetBooking)
	router.PATCH("/bookings/:id", h.UpdateBooking)
	router.DELETE("/bookings/:id", h.CancelBooking)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validCreateBody(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"room_id":    uuid.New(),
		"user_id":    uuid.New(),
		"title":      "standup",
		"start_time": time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		"end_time":   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return string(body)
}

func TestCreateBookingHandler(t *testing.T) {
	newResult := func(status booking.Status) *commands.CreateBookingResult {
		slot, _ := booking.NewTimeSlot(
			time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		)
		return &commands.CreateBookingResult{
			Booking: booking.NewBooking(uuid.New(), uuid.New(), "standup", slot, status, nil),
		}
	}

	t.Run("created", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{createResult: newResult(booking.StatusActive)}, &stubBookingQueries{})

		rec := doJSON(router, http.MethodPost, "/bookings", validCreateBody(t))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"active"`)
	})

	t.Run("queued on conflict still returns 201", func(t *testing.T) {
		result := newResult(booking.StatusPending)
		result.Conflict = &commands.ConflictDetail{ID: uuid.New(), Title: "blocker"}
		router := newBookingRouter(t, &stubBookingCommands{createResult: result}, &stubBookingQueries{})

		rec := doJSON(router, http.MethodPost, "/bookings", validCreateBody(t))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"conflict"`)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	})

	t.Run("malformed json", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodPost, "/bookings", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("policy violation", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{}, &stubBookingQueries{})
		body, err := json.Marshal(map[string]any{
			"room_id":    uuid.New(),
			"user_id":    uuid.New(),
			"title":      "late meeting",
			"start_time": time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
			"end_time":   time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		rec := doJSON(router, http.MethodPost, "/bookings", string(body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("room not found", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{createErr: commands.ErrRoomNotFound}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodPost, "/bookings", validCreateBody(t))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":{"message":"Room not found"}`)
	})
}

func TestHandlerErrorsReachMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	policy, err := booking.NewPolicy("09:00", "17:00", 30, 240)
	require.NoError(t, err)

	h := api.NewBookingHandler(&stubBookingCommands{createErr: commands.ErrRoomNotFound}, &stubBookingQueries{}, policy)

	var captured []*gin.Error
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		captured = c.Errors
	})
	router.POST("/bookings", h.CreateBooking)

	rec := doJSON(router, http.MethodPost, "/bookings", validCreateBody(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The original error rides the context so the logging and error
	// middleware see it, not just the rendered response.
	require.Len(t, captured, 1)
	assert.ErrorIs(t, captured[0].Err, commands.ErrRoomNotFound)
	assert.True(t, captured[0].IsType(gin.ErrorTypePublic))
}

func TestUpdateBookingHandler(t *testing.T) {
	id := uuid.New().String()

	t.Run("status change routes to the status command", func(t *testing.T) {
		slot, _ := booking.NewTimeSlot(
			time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		)
		stub := &stubBookingCommands{completeResult: &commands.CompleteResult{
			Booking: booking.NewBooking(uuid.New(), uuid.New(), "standup", slot, booking.StatusComplete, nil),
		}}
		router := newBookingRouter(t, stub, &stubBookingQueries{})

		rec := doJSON(router, http.MethodPatch, "/bookings/"+id, `{"status":"complete"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "complete", stub.statusSeen)
	})

	t.Run("rejected status value maps to 400", func(t *testing.T) {
		stub := &stubBookingCommands{completeErr: commands.ErrInvalidStatusValue}
		router := newBookingRouter(t, stub, &stubBookingQueries{})

		rec := doJSON(router, http.MethodPatch, "/bookings/"+id, `{"status":"cancelled"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "cancelled", stub.statusSeen)
		assert.Contains(t, rec.Body.String(), `"message":"Status can only be changed to complete"`)
	})

	t.Run("reschedule requires both times", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodPatch, "/bookings/"+id, `{"start_time":"2026-03-02T10:00:00Z"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflicting reschedule", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{rescheduleErr: commands.ErrBookingConflict}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodPatch, "/bookings/"+id,
			`{"start_time":"2026-03-02T10:00:00Z","end_time":"2026-03-02T11:00:00Z"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid id format", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodPatch, "/bookings/not-a-uuid", `{"status":"complete"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelBookingHandler(t *testing.T) {
	id := uuid.New().String()

	t.Run("terminal booking", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{cancelErr: commands.ErrAlreadyTerminal}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodDelete, "/bookings/"+id, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{cancelErr: commands.ErrBookingNotFound}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodDelete, "/bookings/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetBookingHandler(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{}, &stubBookingQueries{viewErr: queries.ErrBookingNotFound})
		rec := doJSON(router, http.MethodGet, "/bookings/"+uuid.New().String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id format", func(t *testing.T) {
		router := newBookingRouter(t, &stubBookingCommands{}, &stubBookingQueries{})
		rec := doJSON(router, http.MethodGet, "/bookings/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
