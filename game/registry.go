package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry owns every room of the process. Rooms are never evicted.
type Registry struct {
	sync.RWMutex
	rooms     map[string]*Room
	validator Validator
	controls  TimeControls
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger
}

type Option func(*Registry)

func WithTimeControls(tc TimeControls) Option {
	return func(r *Registry) { r.controls = tc }
}

// WithNow replaces the wall clock rooms are timed against.
func WithNow(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

func NewRegistry(v Validator, logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		rooms:     make(map[string]*Room),
		validator: v,
		controls:  DefaultTimeControls(),
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// CreateRoom builds a room with a fresh board and a clock seeded from mode,
// and returns its id.
func (r *Registry) CreateRoom(mode Mode) string {
	base, _ := r.controls.Base(mode)
	id := r.newID()
	room := newRoom(id, mode, r.validator.NewPosition(), base, r.now, r.logger)

	r.Lock()
	r.rooms[id] = room
	r.Unlock()

	r.logger.Info("room_create", zap.String("room_id", id), zap.String("mode", string(mode)), zap.Duration("base", base))

	return id
}

// Room looks a room up by id.
func (r *Registry) Room(id string) (*Room, error) {
	r.RLock()
	defer r.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Disconnect releases every seat connID holds and returns the peer_left
// notifications for the rooms it left.
func (r *Registry) Disconnect(connID string) []Notification {
	r.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.RUnlock()

	var notes []Notification
	for _, room := range rooms {
		notes = append(notes, room.Leave(connID)...)
	}
	return notes
}

func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.rooms)
}
