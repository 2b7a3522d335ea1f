package response

import (
	"time"

	"roombook/internal/domain/room"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Amenities []string  `json:"amenities"`
	CreatedAt time.Time `json:"createdAt"`
}

type FreeSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	RoomID       uuid.UUID          `json:"roomId"`
	Date         string             `json:"date"`
	Availability []FreeSlotResponse `json:"availability"`
}

func FromRoomEntity(r *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:        r.ID(),
		Name:      r.Name(),
		Capacity:  r.Capacity(),
		Amenities: r.Amenities(),
		CreatedAt: r.CreatedAt(),
	}
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:        rm.ID,
		Name:      rm.Name,
		Capacity:  int(rm.Capacity),
		Amenities: rm.Amenities,
		CreatedAt: rm.CreatedAt,
	}
}

func FromAvailabilityReport(rm *queries.AvailabilityReport) *AvailabilityResponse {
	slots := make([]FreeSlotResponse, len(rm.Availability))
	for i, s := range rm.Availability {
		slots[i] = FreeSlotResponse{Start: s.Start, End: s.End}
	}
	return &AvailabilityResponse{
		RoomID:       rm.RoomID,
		Date:         rm.Date,
		Availability: slots,
	}
}
