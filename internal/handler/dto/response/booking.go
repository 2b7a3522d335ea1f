package response

import (
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	RoomID           uuid.UUID  `json:"roomId"`
	RoomName         string     `json:"roomName,omitempty"`
	UserID           uuid.UUID  `json:"userId"`
	UserName         string     `json:"userName,omitempty"`
	Title            string     `json:"title"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          time.Time  `json:"endTime"`
	Status           string     `json:"status"`
	RecurrenceRuleID *uuid.UUID `json:"recurrenceRuleId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	RoomName  string    `json:"roomName"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type ConflictResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type WaitingResponse struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"bookingId"`
	Status    string    `json:"status"`
}

// CreateBookingResponse reports either a confirmed booking or a queued one
// together with the conflict that blocked it.
type CreateBookingResponse struct {
	Booking  *BookingResponse  `json:"booking"`
	Conflict *ConflictResponse `json:"conflict,omitempty"`
	Waiting  *WaitingResponse  `json:"waiting,omitempty"`
}

type UpdateBookingResponse struct {
	Booking   *BookingResponse `json:"booking"`
	Promoted  *BookingResponse `json:"promoted,omitempty"`
	Successor *BookingResponse `json:"successor,omitempty"`
}

type CancelBookingResponse struct {
	Booking   *BookingResponse `json:"booking"`
	Promoted  *BookingResponse `json:"promoted,omitempty"`
	Successor *BookingResponse `json:"successor,omitempty"`
}

func FromBookingEntity(b *booking.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	return &BookingResponse{
		ID:               b.ID(),
		RoomID:           b.RoomID(),
		UserID:           b.UserID(),
		Title:            b.Title(),
		StartTime:        b.Slot().Start(),
		EndTime:          b.Slot().End(),
		Status:           string(b.Status()),
		RecurrenceRuleID: b.RecurrenceRuleID(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:               rm.ID,
		RoomID:           rm.RoomID,
		RoomName:         rm.RoomName,
		UserID:           rm.UserID,
		UserName:         rm.UserName,
		Title:            rm.Title,
		StartTime:        rm.StartTime,
		EndTime:          rm.EndTime,
		Status:           rm.Status,
		RecurrenceRuleID: rm.RecurrenceRuleID,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:        rm.ID,
		RoomID:    rm.RoomID,
		RoomName:  rm.RoomName,
		Title:     rm.Title,
		StartTime: rm.StartTime,
		EndTime:   rm.EndTime,
		Status:    rm.Status,
	}
}

func FromCreateResult(res *commands.CreateBookingResult) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Booking: FromBookingEntity(res.Booking),
	}
	if res.Conflict != nil {
		out.Conflict = &ConflictResponse{
			ID:        res.Conflict.ID,
			Title:     res.Conflict.Title,
			StartTime: res.Conflict.StartTime,
			EndTime:   res.Conflict.EndTime,
		}
	}
	if res.Waiting != nil {
		out.Waiting = &WaitingResponse{
			ID:        res.Waiting.ID,
			BookingID: res.Waiting.BookingID,
			Status:    string(res.Waiting.Status),
		}
	}
	return out
}

func FromRescheduleResult(res *commands.RescheduleResult) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Booking:  FromBookingEntity(res.Booking),
		Promoted: FromBookingEntity(res.Promoted),
	}
}

func FromCompleteResult(res *commands.CompleteResult) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Booking:   FromBookingEntity(res.Booking),
		Successor: FromBookingEntity(res.Successor),
	}
}

func FromCancelResult(res *commands.CancelResult) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:   FromBookingEntity(res.Booking),
		Promoted:  FromBookingEntity(res.Promoted),
		Successor: FromBookingEntity(res.Successor),
	}
}
