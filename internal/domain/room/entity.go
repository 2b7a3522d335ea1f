package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("room name cannot be empty")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
)

type Room struct {
	id        uuid.UUID
	name      string
	capacity  int
	amenities []string
	createdAt time.Time
}

func NewRoom(name string, capacity int, amenities []string) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Room{
		id:        uuid.New(),
		name:      name,
		capacity:  capacity,
		amenities: amenities,
	}, nil
}

func ReconstructRoom(id uuid.UUID, name string, capacity int, amenities []string, createdAt time.Time) *Room {
	return &Room{
		id:        id,
		name:      name,
		capacity:  capacity,
		amenities: amenities,
		createdAt: createdAt,
	}
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Amenities() []string  { return r.amenities }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
