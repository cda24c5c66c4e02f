package game

// Audience says who a notification is for.
type Audience int

const (
	// ToSender addresses only the connection that caused the notification.
	ToSender Audience = iota
	// ToRoom addresses every connection joined to the room.
	ToRoom
)

// Notification kinds. They double as the outbound event type on the wire.
const (
	KindPlayerAssigned = "player_assigned"
	KindRoomFull       = "room_full"
	KindPeerJoined     = "peer_joined"
	KindPeerLeft       = "peer_left"
	KindChat           = "chat"
	KindMoveApplied    = "move_applied"
)

// Notification is produced by a room operation and delivered by the gateway
// once the room's lock has been released.
type Notification struct {
	RoomID   string
	Kind     string
	Audience Audience
	Payload  any
}

type PlayerAssigned struct {
	RoomID string         `json:"room_id"`
	Color  Color          `json:"color"`
	Mode   Mode           `json:"mode"`
	Clock  *ClockSnapshot `json:"clock"`
}

type RoomFull struct {
	RoomID string `json:"room_id"`
	Full   bool   `json:"full"`
}

// PeerChange is the payload of peer_joined and peer_left.
type PeerChange struct {
	RoomID string `json:"room_id"`
	Color  Color  `json:"color"`
}

type ChatMessage struct {
	RoomID  string `json:"room_id"`
	Color   Color  `json:"color,omitempty"`
	Sender  string `json:"sender,omitempty"`
	Message string `json:"message"`
}

type MoveApplied struct {
	RoomID   string         `json:"room_id"`
	From     Square         `json:"from"`
	To       Square         `json:"to"`
	Notation string         `json:"notation"`
	NextTurn Color          `json:"next_turn"`
	Clock    *ClockSnapshot `json:"clock"`
	FEN      string         `json:"fen"`
}
