package request

import (
	"strings"

	"roombook/internal/usecase/commands"
)

type CreateRoomRequest struct {
	Name      string   `json:"name" binding:"required"`
	Capacity  int      `json:"capacity" binding:"required"`
	Amenities []string `json:"amenities,omitempty"`
}

func (r CreateRoomRequest) ToParams() commands.CreateRoomParams {
	return commands.CreateRoomParams{
		Name:      strings.TrimSpace(r.Name),
		Capacity:  r.Capacity,
		Amenities: r.Amenities,
	}
}
