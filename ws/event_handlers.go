package ws

import (
	"context"
	"errors"

	"github.com/judgegodwins/chess-rooms/game"
	"go.uber.org/zap"
)

// JoinRoomHandler seats the client in a room. The client joins the room's
// broadcast group even when the room is full, so it can still watch.
func JoinRoomHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := c.manager.decode(e, &payload); err != nil {
		return err
	}

	room, err := c.manager.registry.Room(payload.RoomID)
	if errors.Is(err, game.ErrRoomNotFound) {
		return c.PushEventToEgress(EventRoomNotFound, payload)
	}
	if err != nil {
		return err
	}

	// a connection sits in at most one room at a time
	for _, other := range c.JoinedRooms() {
		if other != payload.RoomID {
			c.manager.leaveRoom(c, other)
		}
	}

	if !c.Join(payload.RoomID) {
		return nil
	}

	notes, err := room.Join(c.ID)
	if err != nil && !errors.Is(err, game.ErrRoomFull) {
		return err
	}

	c.manager.dispatch(c, notes)

	return nil
}

func ChatHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadChat

	if err := c.manager.decode(e, &payload); err != nil {
		return err
	}

	room, err := c.manager.registry.Room(payload.RoomID)
	if errors.Is(err, game.ErrRoomNotFound) {
		return c.PushEventToEgress(EventRoomNotFound, PayloadRoom{RoomID: payload.RoomID})
	}
	if err != nil {
		return err
	}

	c.manager.dispatch(c, room.Chat(c.ID, c.Username, payload.Message))

	return nil
}

// MoveHandler forwards a move to its room. Rejected moves are dropped
// without telling anyone; clients re-render from the last move_applied.
func MoveHandler(ctx context.Context, e Event, c *Client) error {
	var payload PayloadMove

	if err := c.manager.decode(e, &payload); err != nil {
		return err
	}

	room, err := c.manager.registry.Room(payload.RoomID)
	if errors.Is(err, game.ErrRoomNotFound) {
		return c.PushEventToEgress(EventRoomNotFound, PayloadRoom{RoomID: payload.RoomID})
	}
	if err != nil {
		return err
	}

	notes, err := room.Move(c.ID, payload.From, payload.To)
	if err != nil {
		c.logger.Debug("move_ignored",
			zap.String("room_id", room.ID),
			zap.String("from", payload.From.Name()),
			zap.String("to", payload.To.Name()),
			zap.Error(err),
		)
		return nil
	}

	c.manager.dispatch(c, notes)

	return nil
}
