// Package board adapts github.com/corentings/chess to the position contract
// rooms play against: legality, side to move and move notation.
package board

import (
	"errors"
	"fmt"

	nchess "github.com/corentings/chess/v2"
	"github.com/judgegodwins/chess-rooms/game"
)

var errBadSquare = errors.New("bad square")

// Validator creates standard chess games from the initial position.
type Validator struct{}

func NewValidator() Validator {
	return Validator{}
}

func (Validator) NewPosition() game.Position {
	return &Position{game: nchess.NewGame()}
}

// Position is a chess game in progress.
type Position struct {
	game *nchess.Game
}

// FromFEN starts a game from an arbitrary position.
func FromFEN(fen string) (*Position, error) {
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	return &Position{game: nchess.NewGame(opt)}, nil
}

func (p *Position) Turn() game.Color {
	if p.game.Position().Turn() == nchess.White {
		return game.White
	}
	return game.Black
}

func (p *Position) PawnAt(square string) bool {
	sq, err := parseSquare(square)
	if err != nil {
		return false
	}
	return p.game.Position().Board().Piece(sq).Type() == nchess.Pawn
}

// Apply plays the move in UCI form and returns it in algebraic notation.
func (p *Position) Apply(from, to, promotion string) (string, error) {
	if _, err := parseSquare(from); err != nil {
		return "", err
	}
	if _, err := parseSquare(to); err != nil {
		return "", err
	}

	before := p.game.Position()
	if err := p.game.PushNotationMove(from+to+promotion, nchess.UCINotation{}, nil); err != nil {
		return "", err
	}

	moves := p.game.Moves()
	if len(moves) == 0 {
		return "", fmt.Errorf("move %s%s not recorded", from, to)
	}
	return nchess.AlgebraicNotation{}.Encode(before, moves[len(moves)-1]), nil
}

func (p *Position) FEN() string {
	return p.game.FEN()
}

func parseSquare(s string) (nchess.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return nchess.NoSquare, fmt.Errorf("%w: %q", errBadSquare, s)
	}
	return nchess.NewSquare(nchess.File(s[0]-'a'), nchess.Rank(s[1]-'1')), nil
}
