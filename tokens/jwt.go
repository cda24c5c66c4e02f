package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretSize = 32

type JWTMaker struct {
	secret []byte
}

func NewJWTMaker(secret string) (Maker, error) {
	if len(secret) < minSecretSize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretSize)
	}
	return &JWTMaker{secret: []byte(secret)}, nil
}

func (m *JWTMaker) CreateToken(username string, duration time.Duration) (string, *Payload, error) {
	payload := NewPayload(username, duration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       payload.ID,
		"username": payload.Username,
		"iat":      payload.IssuedAt.Unix(),
		"exp":      payload.ExpiredAt.Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}

	return signed, payload, nil
}

func (m *JWTMaker) VerifyToken(tokenString string) (*Payload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	username, ok1 := claims["username"].(string)
	id, ok2 := claims["id"].(string)

	if !ok1 || !ok2 {
		return nil, ErrInvalidToken
	}

	payload := &Payload{
		ID:       id,
		Username: username,
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		payload.ExpiredAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		payload.IssuedAt = iat.Time
	}

	if err := payload.Valid(); err != nil {
		return nil, err
	}

	return payload, nil
}
