package game

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrUnknownMode  = errors.New("unknown game mode")

	// Move rejections. These never reach another participant.
	ErrNotSeated   = errors.New("connection holds no seat in this room")
	ErrNotYourTurn = errors.New("not this color's turn")
	ErrIllegalMove = errors.New("illegal move")
)
