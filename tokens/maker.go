package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Maker issues and verifies player tokens.
type Maker interface {
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}

// NewMaker returns the maker for kind ("jwt" or "paseto").
func NewMaker(kind, secret string) (Maker, error) {
	switch kind {
	case "jwt":
		return NewJWTMaker(secret)
	case "paseto":
		return NewPasetoMaker(secret)
	default:
		return nil, fmt.Errorf("unknown token kind %q", kind)
	}
}

type Payload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func NewPayload(username string, duration time.Duration) *Payload {
	now := time.Now()
	return &Payload{
		ID:        uuid.NewString(),
		Username:  username,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}
}

func (p *Payload) Valid() error {
	if p.ID == "" || p.Username == "" {
		return ErrInvalidToken
	}
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}
