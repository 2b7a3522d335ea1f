//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the postgres unit of work. It keeps
// the same observable contract as the real repositories: entities are stored
// as copies, so mutations only persist through Update.
type fakeStore struct {
	rooms map[uuid.UUID]*shared.RoomSnapshot
	users map[uuid.UUID]*shared.UserSnapshot

	bookings map[uuid.UUID]*booking.Booking
	seq      map[uuid.UUID]int
	nextSeq  int

	waiting map[uuid.UUID]*booking.WaitingEntry // keyed by booking id
	history []*booking.HistoryRecord
	rules   map[uuid.UUID]*booking.Rule
	jobs    []fakeJob
}

type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:    make(map[uuid.UUID]*shared.RoomSnapshot),
		users:    make(map[uuid.UUID]*shared.UserSnapshot),
		bookings: make(map[uuid.UUID]*booking.Booking),
		seq:      make(map[uuid.UUID]int),
		waiting:  make(map[uuid.UUID]*booking.WaitingEntry),
		rules:    make(map[uuid.UUID]*booking.Rule),
	}
}

func (s *fakeStore) addRoom() uuid.UUID {
	id := uuid.New()
	s.rooms[id] = &shared.RoomSnapshot{ID: id, Name: "Room A", Capacity: 8}
	return id
}

func (s *fakeStore) addUser() uuid.UUID {
	id := uuid.New()
	s.users[id] = &shared.UserSnapshot{ID: id, Name: "Alice", Email: "alice@example.com"}
	return id
}

func (s *fakeStore) topics() []string {
	out := make([]string, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = j.Topic
	}
	return out
}

func (s *fakeStore) actions() []booking.HistoryAction {
	out := make([]booking.HistoryAction, len(s.history))
	for i, h := range s.history {
		out[i] = h.Action
	}
	return out
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.RoomID(), b.UserID(), b.Title(), b.Slot(), b.Status(),
		b.RecurrenceRuleID(), b.CreatedAt(), b.UpdatedAt(),
	)
}

type fakeUoW struct {
	s *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{s: u.s})
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{s: u.s}
}

type fakeReads struct {
	s *fakeStore
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	if snap, ok := r.s.rooms[id]; ok {
		return snap, nil
	}
	return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	if snap, ok := r.s.users[id]; ok {
		return snap, nil
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

type fakeTx struct {
	s *fakeStore
}

func (t *fakeTx) Bookings() shared.BookingRepository           { return &fakeBookings{s: t.s} }
func (t *fakeTx) Waiting() shared.WaitingRepository            { return &fakeWaiting{s: t.s} }
func (t *fakeTx) History() shared.HistoryRepository            { return &fakeHistory{s: t.s} }
func (t *fakeTx) Recurrences() shared.RecurrenceRepository     { return &fakeRules{s: t.s} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeJobs{s: t.s} }
func (t *fakeTx) Rooms() shared.RoomRepository                 { return &fakeRooms{s: t.s} }

type fakeBookings struct {
	s *fakeStore
}

func (r *fakeBookings) Create(_ context.Context, b *booking.Booking) error {
	r.s.bookings[b.ID()] = cloneBooking(b)
	r.s.seq[b.ID()] = r.s.nextSeq
	r.s.nextSeq++
	return nil
}

func (r *fakeBookings) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.s.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.s.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookings) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if b, ok := r.s.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *fakeBookings) FindConflicting(_ context.Context, roomID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (*booking.Booking, error) {
	candidates := r.selectSorted(roomID, booking.StatusPending, booking.StatusActive, booking.StatusComplete)
	for _, b := range candidates {
		if excludeID != nil && b.ID() == *excludeID {
			continue
		}
		if b.Slot().Overlaps(slot) {
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

func (r *fakeBookings) FindEarliestPending(_ context.Context, roomID uuid.UUID) (*booking.Booking, error) {
	candidates := r.selectSorted(roomID, booking.StatusPending)
	if len(candidates) == 0 {
		return nil, nil
	}
	return cloneBooking(candidates[0]), nil
}

func (r *fakeBookings) FindPendingBySlot(_ context.Context, roomID uuid.UUID, slot booking.TimeSlot) (*booking.Booking, error) {
	candidates := r.selectSorted(roomID, booking.StatusPending)
	sort.SliceStable(candidates, func(i, j int) bool {
		return r.s.seq[candidates[i].ID()] < r.s.seq[candidates[j].ID()]
	})
	for _, b := range candidates {
		if b.Slot().Equal(slot) {
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

// selectSorted mimics ORDER BY start_time, creation order.
func (r *fakeBookings) selectSorted(roomID uuid.UUID, statuses ...booking.Status) []*booking.Booking {
	var out []*booking.Booking
	for _, b := range r.s.bookings {
		if b.RoomID() != roomID {
			continue
		}
		for _, st := range statuses {
			if b.Status() == st {
				out = append(out, b)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Slot().Start().Equal(out[j].Slot().Start()) {
			return out[i].Slot().Start().Before(out[j].Slot().Start())
		}
		return r.s.seq[out[i].ID()] < r.s.seq[out[j].ID()]
	})
	return out
}

type fakeWaiting struct {
	s *fakeStore
}

func (r *fakeWaiting) Create(_ context.Context, entry *booking.WaitingEntry) error {
	cp := *entry
	r.s.waiting[entry.BookingID] = &cp
	return nil
}

func (r *fakeWaiting) MarkConverted(_ context.Context, bookingID uuid.UUID) error {
	entry, ok := r.s.waiting[bookingID]
	if !ok || entry.Status != booking.WaitingPending {
		return infra.WrapRepoErr("waiting entry not found", nil, infra.KindNotFound)
	}
	entry.Status = booking.WaitingConverted
	return nil
}

type fakeHistory struct {
	s *fakeStore
}

func (r *fakeHistory) Append(_ context.Context, rec *booking.HistoryRecord) error {
	cp := *rec
	r.s.history = append(r.s.history, &cp)
	return nil
}

type fakeRules struct {
	s *fakeStore
}

func (r *fakeRules) Create(_ context.Context, rule *booking.Rule) error {
	cp := *rule
	r.s.rules[rule.ID] = &cp
	return nil
}

func (r *fakeRules) FindByID(_ context.Context, id uuid.UUID) (*booking.Rule, error) {
	if rule, ok := r.s.rules[id]; ok {
		cp := *rule
		return &cp, nil
	}
	return nil, infra.WrapRepoErr("recurrence rule not found", nil, infra.KindNotFound)
}

type fakeJobs struct {
	s *fakeStore
}

func (r *fakeJobs) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.jobs = append(r.s.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type fakeRooms struct {
	s *fakeStore
}

func (r *fakeRooms) Create(_ context.Context, rm *room.Room) error {
	r.s.rooms[rm.ID()] = &shared.RoomSnapshot{ID: rm.ID(), Name: rm.Name(), Capacity: rm.Capacity()}
	return nil
}
