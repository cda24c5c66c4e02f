package game

import (
	"errors"
	"sync"
	"time"
)

// fakePosition accepts any move between distinct squares except those listed
// in illegal, and uses the destination square as the notation.
type fakePosition struct {
	turn       Color
	pawns      map[string]bool
	illegal    map[string]bool
	promotions []string
	plies      int
}

func (p *fakePosition) Turn() Color { return p.turn }

func (p *fakePosition) PawnAt(square string) bool { return p.pawns[square] }

func (p *fakePosition) Apply(from, to, promotion string) (string, error) {
	if from == to || p.illegal[from+to] {
		return "", errors.New("illegal")
	}
	p.promotions = append(p.promotions, promotion)
	p.turn = p.turn.Opponent()
	p.plies++
	return to, nil
}

func (p *fakePosition) FEN() string { return "fake" }

type fakeValidator struct {
	mu      sync.Mutex
	pawns   map[string]bool
	illegal map[string]bool
	last    *fakePosition
}

func (v *fakeValidator) NewPosition() Position {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.last = &fakePosition{turn: White, pawns: v.pawns, illegal: v.illegal}
	return v.last
}

// manualClock is a settable wall clock.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
