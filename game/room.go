package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Room is one game between at most two seated connections. Every exported
// method takes the room's lock, so operations on a room apply one at a time.
type Room struct {
	ID   string
	Mode Mode

	mu       sync.Mutex
	position Position
	seats    map[string]Color
	clock    *Clock
	history  []string
	now      func() time.Time
	logger   *zap.Logger
}

// RoomState is a point-in-time copy of a room for read-only callers.
type RoomState struct {
	ID      string         `json:"id"`
	Mode    Mode           `json:"mode"`
	Full    bool           `json:"full"`
	Seats   []Color        `json:"seats"`
	Turn    Color          `json:"turn"`
	Clock   *ClockSnapshot `json:"clock"`
	History []string       `json:"history"`
	FEN     string         `json:"fen"`
}

func newRoom(id string, mode Mode, position Position, base time.Duration, now func() time.Time, logger *zap.Logger) *Room {
	r := &Room{
		ID:       id,
		Mode:     mode,
		position: position,
		seats:    make(map[string]Color),
		history:  []string{},
		now:      now,
		logger:   logger.With(zap.String("room_id", id)),
	}
	if base > 0 {
		r.clock = NewClock(base, now())
	}
	return r
}

// Join seats connID on the free color, white first. A third connection gets
// a room_full notice and ErrRoomFull.
func (r *Room) Join(connID string) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if color, ok := r.seats[connID]; ok {
		return []Notification{r.assigned(color)}, nil
	}

	color, ok := r.freeColor()
	if !ok {
		return []Notification{{
			RoomID:   r.ID,
			Kind:     KindRoomFull,
			Audience: ToSender,
			Payload:  RoomFull{RoomID: r.ID, Full: true},
		}}, ErrRoomFull
	}

	r.seats[connID] = color
	if r.clock != nil && len(r.seats) == 2 {
		r.clock.Start(r.now())
	}

	r.logger.Info("seat_assigned", zap.String("conn_id", connID), zap.String("color", string(color)))

	return []Notification{
		r.assigned(color),
		{
			RoomID:   r.ID,
			Kind:     KindPeerJoined,
			Audience: ToRoom,
			Payload:  PeerChange{RoomID: r.ID, Color: color},
		},
	}, nil
}

// Move plays from→to for connID. Moves by unseated connections, out of turn,
// or rejected by the validator return an error and leave the room untouched;
// callers must not tell anyone about them.
func (r *Room) Move(connID string, from, to Square) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	color, ok := r.seats[connID]
	if !ok {
		return nil, ErrNotSeated
	}
	if color != r.position.Turn() {
		return nil, ErrNotYourTurn
	}

	// sampled before validation; charged only if the move is accepted
	now := r.now()

	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("%w: square out of range", ErrIllegalMove)
	}

	promotion := ""
	if to.Rank() == lastRank(color) && r.position.PawnAt(from.Name()) {
		promotion = "q"
	}

	notation, err := r.position.Apply(from.Name(), to.Name(), promotion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	r.history = append(r.history, notation)

	var clock *ClockSnapshot
	if r.clock != nil {
		r.clock.Charge(color, now)
		if r.clock.Expired(color) {
			r.logger.Warn("clock_expired", zap.String("color", string(color)), zap.Duration("remaining", r.clock.Remaining(color)))
		}
		clock = r.clock.Snapshot()
	}

	return []Notification{{
		RoomID:   r.ID,
		Kind:     KindMoveApplied,
		Audience: ToRoom,
		Payload: MoveApplied{
			RoomID:   r.ID,
			From:     from,
			To:       to,
			Notation: notation,
			NextTurn: r.position.Turn(),
			Clock:    clock,
			FEN:      r.position.FEN(),
		},
	}}, nil
}

// Chat labels text with the sender's color, if seated, and broadcasts it as is.
func (r *Room) Chat(connID, sender, text string) []Notification {
	r.mu.Lock()
	color := r.seats[connID]
	r.mu.Unlock()

	return []Notification{{
		RoomID:   r.ID,
		Kind:     KindChat,
		Audience: ToRoom,
		Payload:  ChatMessage{RoomID: r.ID, Color: color, Sender: sender, Message: text},
	}}
}

// Leave frees connID's seat. It is a no-op for a connection without a seat.
func (r *Room) Leave(connID string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	color, ok := r.seats[connID]
	if !ok {
		return nil
	}
	delete(r.seats, connID)

	r.logger.Info("seat_released", zap.String("conn_id", connID), zap.String("color", string(color)))

	return []Notification{{
		RoomID:   r.ID,
		Kind:     KindPeerLeft,
		Audience: ToRoom,
		Payload:  PeerChange{RoomID: r.ID, Color: color},
	}}
}

// SeatOf returns the color connID is seated as.
func (r *Room) SeatOf(connID string) (Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	color, ok := r.seats[connID]
	return color, ok
}

func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats := lo.Values(r.seats)
	sort.Slice(seats, func(i, j int) bool { return seats[i] > seats[j] }) // white, black

	state := RoomState{
		ID:      r.ID,
		Mode:    r.Mode,
		Full:    len(r.seats) == 2,
		Seats:   seats,
		Turn:    r.position.Turn(),
		History: append([]string(nil), r.history...),
		FEN:     r.position.FEN(),
	}
	if r.clock != nil {
		state.Clock = r.clock.Snapshot()
	}
	return state
}

func (r *Room) assigned(color Color) Notification {
	var clock *ClockSnapshot
	if r.clock != nil {
		clock = r.clock.Snapshot()
	}
	return Notification{
		RoomID:   r.ID,
		Kind:     KindPlayerAssigned,
		Audience: ToSender,
		Payload:  PlayerAssigned{RoomID: r.ID, Color: color, Mode: r.Mode, Clock: clock},
	}
}

func (r *Room) freeColor() (Color, bool) {
	taken := lo.Values(r.seats)
	for _, c := range []Color{White, Black} {
		if !lo.Contains(taken, c) {
			return c, true
		}
	}
	return "", false
}

func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
