package game

import (
	"fmt"
	"strings"
)

// Color is a side of the board.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Mode is the time control a room was created with.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeBlitz     Mode = "blitz"
	ModeRapid     Mode = "rapid"
	ModeStopwatch Mode = "stopwatch"
	ModeAnalyse   Mode = "analyse"
)

var modes = []Mode{ModeNormal, ModeBlitz, ModeRapid, ModeStopwatch, ModeAnalyse}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Square is a zero-based (file, rank) pair as sent by clients, so [4, 1] is e2.
type Square [2]int

func (s Square) File() int { return s[0] }
func (s Square) Rank() int { return s[1] }

func (s Square) Valid() bool {
	return s[0] >= 0 && s[0] < 8 && s[1] >= 0 && s[1] < 8
}

// Name returns the algebraic name of the square ("a1".."h8").
func (s Square) Name() string {
	return fmt.Sprintf("%c%d", 'a'+rune(s[0]), s[1]+1)
}

// Position is a game in progress, owned by exactly one Room.
type Position interface {
	// Turn reports the side to move.
	Turn() Color
	// PawnAt reports whether a pawn stands on the named square.
	PawnAt(square string) bool
	// Apply plays from→to with an optional promotion piece ("q", "r", "b", "n").
	// It returns the move in standard algebraic notation, or an error if the
	// move is illegal, in which case the position is unchanged.
	Apply(from, to, promotion string) (string, error)
	// FEN describes the current position.
	FEN() string
}

// Validator hands out fresh positions. It stands in for the rules of the game.
type Validator interface {
	NewPosition() Position
}
