package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = time.Second
)

const maxMessageSize = 4096

// Client is one websocket connection. Its ID is the connection identifier
// rooms seat; a reconnecting player gets a new one.
type Client struct {
	ID          string
	Username    string
	connection  *websocket.Conn
	manager     *Manager
	egress      chan Event
	joinedRooms []string // guarded by manager
	closed      bool     // guarded by manager
	err         chan error
	logger      *zap.Logger
}

func NewClient(conn *websocket.Conn, manager *Manager, username string) *Client {
	id := uuid.NewString()
	return &Client{
		ID:          id,
		Username:    username,
		connection:  conn,
		manager:     manager,
		egress:      make(chan Event, manager.config.EgressBuffer),
		joinedRooms: []string{},
		err:         make(chan error, 2),
		logger:      manager.logger.With(zap.String("conn_id", id), zap.String("username", username)),
	}
}

// Reads incoming messages from the clients websocket connection
func (c *Client) readMessages(ctx context.Context) {
	c.connection.SetReadLimit(maxMessageSize)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, payload, err := c.connection.ReadMessage()

			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
					c.logger.Warn("unexpected_close", zap.Error(err))
				}
				c.handleError(err)
				return
			}

			var evt Event

			if err := json.Unmarshal(payload, &evt); err != nil {
				c.pushError("", "cannot unmarshal json payload")
				continue
			}

			c.logger.Debug("event_in", zap.String("type", evt.Type), zap.String("trace_id", evt.TraceID))

			// errors returned from event handlers are emitted to the client
			// using the trace id
			if err := c.manager.routeEvent(ctx, evt, c); err != nil {
				c.logger.Info("event_error", zap.String("type", evt.Type), zap.Error(err))
				c.pushError(evt.TraceID, err.Error())
			}
		}
	}
}

// writes messages pushed to the client's egress channel
func (c *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case message := <-c.egress:
			data, err := json.Marshal(message)

			if err != nil {
				c.logger.Error("event_marshal", zap.String("type", message.Type), zap.Error(err))
				continue
			}

			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			if err := c.connection.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

// Sets a new read deadline when a pong is received for a ping message.
func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// Push error to client error channel. ServeWS waits on the channel and tears
// the connection down on the first error; later errors are dropped.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

// Returns the error channel
func (c *Client) Err() <-chan error {
	return c.err
}

func (c *Client) pushError(traceID, message string) {
	errEvent, err := NewErrorEvent(traceID, message)
	if err != nil {
		c.logger.Error("error_event", zap.Error(err))
		return
	}
	c.PushToEgress(errEvent)
}

// Creates an event and pushes to client's egress
func (c *Client) PushEventToEgress(evtType string, payload any) error {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return err
	}
	c.PushToEgress(evt)
	return nil
}

// PushToEgress queues evt for delivery without blocking. A client whose
// buffer is full misses the event; no other client waits on it.
func (c *Client) PushToEgress(evt Event) bool {
	select {
	case c.egress <- evt:
		return true
	default:
		c.logger.Warn("egress_full", zap.String("type", evt.Type))
		return false
	}
}

// Join adds the client to a room's broadcast group. It reports false once the
// client has been removed from the manager.
func (c *Client) Join(roomId string) bool {
	c.manager.Lock()
	defer c.manager.Unlock()

	if c.closed {
		return false
	}

	room := c.manager.Rooms[roomId]

	if !slices.Contains(room, c) {
		c.manager.Rooms[roomId] = append(room, c)
	}

	if !slices.Contains(c.joinedRooms, roomId) {
		c.joinedRooms = append(c.joinedRooms, roomId)
	}

	return true
}

// Leave removes the client from a room's broadcast group.
func (c *Client) Leave(roomId string) {
	c.manager.Lock()
	defer c.manager.Unlock()

	c.leaveLocked(roomId)
}

func (c *Client) leaveLocked(roomId string) {
	room, ok := c.manager.Rooms[roomId]

	if ok {
		if index := slices.Index(room, c); index >= 0 {
			room = slices.Delete(room, index, index+1)
		}
		if len(room) == 0 {
			delete(c.manager.Rooms, roomId)
		} else {
			c.manager.Rooms[roomId] = room
		}
	}

	if index := slices.Index(c.joinedRooms, roomId); index >= 0 {
		c.joinedRooms = slices.Delete(c.joinedRooms, index, index+1)
	}
}

// JoinedRooms returns the rooms whose broadcasts the client receives.
func (c *Client) JoinedRooms() []string {
	c.manager.RLock()
	defer c.manager.RUnlock()

	return slices.Clone(c.joinedRooms)
}

func (c *Client) close() {
	err := c.connection.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		c.logger.Debug("close_message", zap.Error(err))
	}
	c.connection.Close()
}
