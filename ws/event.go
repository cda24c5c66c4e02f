package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/judgegodwins/chess-rooms/game"
)

type Event struct {
	Type    string          `json:"type"`
	TraceID string          `json:"trace_id"`
	Payload json.RawMessage `json:"payload"`
}

type EventHandler func(ctx context.Context, evt Event, c *Client) error

// Inbound event types. Outbound room notifications use the game.Kind* names.
const (
	EventJoin         = "join"
	EventChat         = "chat"
	EventMove         = "move"
	EventError        = "error"
	EventRoomNotFound = "room_not_found"
)

type PayloadError struct {
	Message string `json:"message"`
}

type PayloadRoom struct {
	RoomID string `json:"room_id" validate:"required"`
}

type PayloadChat struct {
	RoomID  string `json:"room_id" validate:"required"`
	Message string `json:"message"`
}

// PayloadMove carries zero-based (file, rank) pairs, e.g. {"from": [4, 1], "to": [4, 3]}.
type PayloadMove struct {
	RoomID string      `json:"room_id" validate:"required"`
	From   game.Square `json:"from"`
	To     game.Square `json:"to"`
}

func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)

	if err != nil {
		return Event{}, err
	}

	evt := NewEventStruct(evtType, b, "")

	return evt, nil
}

// NewErrorEvent builds an error_<traceId> event so the client can match the
// error to the request that caused it.
func NewErrorEvent(traceId, message string) (Event, error) {
	payload := PayloadError{Message: message}
	b, err := json.Marshal(payload)

	if err != nil {
		return Event{}, err
	}

	evt := NewEventStruct(fmt.Sprintf("%v_%v", EventError, traceId), b, traceId)

	return evt, nil
}

func NewEventStruct(evtType string, payload []byte, traceId string) Event {
	return Event{
		Type:    evtType,
		TraceID: traceId,
		Payload: payload,
	}
}
