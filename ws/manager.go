package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/chess-rooms/game"
	"github.com/judgegodwins/chess-rooms/http_utils"
	"github.com/judgegodwins/chess-rooms/tokens"
	"github.com/judgegodwins/chess-rooms/util"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type ClientList map[string]*Client

type wsQuery struct {
	Token string `form:"token" binding:"required"`
}

// Manager is the session gateway: it owns the websocket clients, the
// broadcast group of every room, and turns inbound events into room
// operations on the registry.
type Manager struct {
	clients ClientList
	sync.RWMutex
	handlers   map[string]EventHandler
	Rooms      map[string][]*Client
	config     *util.Config
	registry   *game.Registry
	tokenMaker tokens.Maker
	validate   *validator.Validate
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func NewManager(config *util.Config, registry *game.Registry, maker tokens.Maker, logger *zap.Logger) *Manager {
	m := &Manager{
		clients:    make(ClientList),
		handlers:   make(map[string]EventHandler),
		Rooms:      make(map[string][]*Client),
		config:     config,
		registry:   registry,
		tokenMaker: maker,
		validate:   util.Validate,
		logger:     logger,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     m.checkOrigin,
	}

	m.setupEventHandlers()

	return m
}

func (m *Manager) setupEventHandlers() {
	m.handlers[EventJoin] = JoinRoomHandler
	m.handlers[EventChat] = ChatHandler
	m.handlers[EventMove] = MoveHandler
}

func (m *Manager) routeEvent(ctx context.Context, evt Event, c *Client) error {
	if handler, ok := m.handlers[evt.Type]; ok {
		if err := handler(ctx, evt, c); err != nil {
			return err
		}

		return nil
	}

	return errors.New("there is no such event type")
}

// decode unmarshals and validates an event payload.
func (m *Manager) decode(evt Event, v any) error {
	if err := json.Unmarshal(evt.Payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	if err := m.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid payload: %s", strings.Join(http_utils.FieldErrors(err), "; "))
	}

	return nil
}

// dispatch delivers room notifications: sender-only ones to c, the rest to
// every client in the room's broadcast group.
func (m *Manager) dispatch(c *Client, notes []game.Notification) {
	for _, n := range notes {
		evt, err := NewEvent(n.Kind, n.Payload)
		if err != nil {
			m.logger.Error("notification_marshal", zap.String("kind", n.Kind), zap.Error(err))
			continue
		}

		switch n.Audience {
		case game.ToSender:
			if c != nil {
				c.PushToEgress(evt)
			}
		case game.ToRoom:
			m.EmitToRoom(n.RoomID, evt)
		}
	}
}

// EmitToRoom pushes evt to every client joined to roomID.
func (m *Manager) EmitToRoom(roomID string, evt Event) {
	m.RLock()
	members := slices.Clone(m.Rooms[roomID])
	m.RUnlock()

	for _, client := range members {
		client.PushToEgress(evt)
	}
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client.ID] = client
}

// removeClient drops the client from every broadcast group and releases any
// seat it held. Later joins by the client are refused.
func (m *Manager) removeClient(client *Client) {
	m.Lock()
	client.closed = true
	delete(m.clients, client.ID)
	for _, roomID := range slices.Clone(client.joinedRooms) {
		client.leaveLocked(roomID)
	}
	m.Unlock()

	m.dispatch(nil, m.registry.Disconnect(client.ID))
}

// leaveRoom takes c out of roomID entirely: broadcast group and seat.
func (m *Manager) leaveRoom(c *Client, roomID string) {
	c.Leave(roomID)

	room, err := m.registry.Room(roomID)
	if err != nil {
		return
	}
	m.dispatch(c, room.Leave(c.ID))
}

// ClientCount reports the number of open connections.
func (m *Manager) ClientCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// Websocket connection handler
func (m *Manager) ServeWS(c *gin.Context) {
	var query wsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, http_utils.NewBaseResponse(false, "token not sent"))
		return
	}

	payload, err := m.tokenMaker.VerifyToken(query.Token)

	if err != nil {
		c.JSON(http.StatusUnauthorized, http_utils.NewBaseResponse(false, "unauthorized"))
		return
	}

	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		// the upgrader has already replied to the client
		m.logger.Warn("ws_upgrade", zap.Error(err))
		return
	}

	client := NewClient(conn, m, payload.Username)

	m.addClient(client)
	client.logger.Info("client_connect")

	ctx, cancel := context.WithCancel(c.Request.Context())
	readDone := make(chan struct{})

	go func() {
		defer close(readDone)
		client.readMessages(ctx)
	}()
	go client.writeMessages(ctx)

	err = <-client.Err()

	client.logger.Info("client_disconnect", zap.Error(err))

	// handlers run on the read goroutine; the seat is released only after
	// the last of them has returned
	cancel()
	client.close()
	<-readDone

	m.removeClient(client)
}

func (m *Manager) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// not a browser
		return true
	}
	return lo.Contains(m.config.AllowedOrigins, origin)
}
