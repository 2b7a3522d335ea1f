package request

import (
	"errors"
	"strings"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrSlotRequired  = errors.New("start_time and end_time are required together")
)

type RecurrenceRequest struct {
	Frequency string     `json:"frequency" binding:"required"`
	Interval  int        `json:"interval" binding:"required"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type CreateBookingRequest struct {
	RoomID     uuid.UUID          `json:"room_id" binding:"required"`
	UserID     uuid.UUID          `json:"user_id" binding:"required"`
	Title      string             `json:"title" binding:"required"`
	StartTime  time.Time          `json:"start_time" binding:"required"`
	EndTime    time.Time          `json:"end_time" binding:"required"`
	Recurrence *RecurrenceRequest `json:"recurrence,omitempty"`
}

// Validate runs the pre-engine checks: slot shape plus working-hours and
// duration policy. The lifecycle engine trusts slots that pass here.
func (r CreateBookingRequest) Validate(policy booking.Policy) error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	slot, err := booking.NewTimeSlot(r.StartTime, r.EndTime)
	if err != nil {
		return err
	}
	return policy.ValidateSlot(slot)
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	p := commands.CreateBookingParams{
		RoomID:    r.RoomID,
		UserID:    r.UserID,
		Title:     strings.TrimSpace(r.Title),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
	if r.Recurrence != nil {
		p.Recurrence = &commands.RecurrenceParams{
			Frequency: booking.Frequency(r.Recurrence.Frequency),
			Interval:  r.Recurrence.Interval,
			EndDate:   r.Recurrence.EndDate,
		}
	}
	return p
}

// UpdateBookingRequest covers both PATCH shapes: a status change (complete
// only) or a reschedule onto a new slot. Sending status together with a slot
// is a status change; the slot fields are ignored.
type UpdateBookingRequest struct {
	Title     *string    `json:"title,omitempty"`
	Status    *string    `json:"status,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

func (r UpdateBookingRequest) IsStatusChange() bool {
	return r.Status != nil
}

// ValidateReschedule checks the new slot the same way Create does.
func (r UpdateBookingRequest) ValidateReschedule(policy booking.Policy) error {
	if r.StartTime == nil || r.EndTime == nil {
		return ErrSlotRequired
	}
	slot, err := booking.NewTimeSlot(*r.StartTime, *r.EndTime)
	if err != nil {
		return err
	}
	return policy.ValidateSlot(slot)
}

func (r UpdateBookingRequest) ToRescheduleParams() commands.RescheduleParams {
	return commands.RescheduleParams{
		Title:     r.Title,
		StartTime: *r.StartTime,
		EndTime:   *r.EndTime,
	}
}
