package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	RoomID           uuid.UUID  `json:"room_id"`
	RoomName         string     `json:"room_name"`
	UserID           uuid.UUID  `json:"user_id"`
	UserName         string     `json:"user_name"`
	Title            string     `json:"title"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	Status           string     `json:"status"`
	RecurrenceRuleID *uuid.UUID `json:"recurrence_rule_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int32     `json:"capacity"`
	Amenities []string  `json:"amenities"`
	CreatedAt time.Time `json:"created_at"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BusyInterval is an occupied range used by the availability report.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

type FreeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityReport struct {
	RoomID       uuid.UUID  `json:"room_id"`
	Date         string     `json:"date"`
	Availability []FreeSlot `json:"availability"`
}
