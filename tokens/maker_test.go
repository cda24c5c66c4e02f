package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "YELLOW SUBMARINE, BLACK WIZARDRY"

func TestMakers(t *testing.T) {
	for _, kind := range []string{"jwt", "paseto"} {
		t.Run(kind, func(t *testing.T) {
			maker, err := NewMaker(kind, testSecret)
			require.NoError(t, err)

			t.Run("round trip", func(t *testing.T) {
				token, issued, err := maker.CreateToken("judge", time.Minute)
				require.NoError(t, err)
				require.NotEmpty(t, token)

				payload, err := maker.VerifyToken(token)
				require.NoError(t, err)
				require.Equal(t, issued.ID, payload.ID)
				require.Equal(t, "judge", payload.Username)
				require.WithinDuration(t, issued.ExpiredAt, payload.ExpiredAt, time.Second)
			})

			t.Run("expired", func(t *testing.T) {
				token, _, err := maker.CreateToken("judge", -time.Minute)
				require.NoError(t, err)

				_, err = maker.VerifyToken(token)
				require.ErrorIs(t, err, ErrExpiredToken)
			})

			t.Run("tampered", func(t *testing.T) {
				token, _, err := maker.CreateToken("judge", time.Minute)
				require.NoError(t, err)

				_, err = maker.VerifyToken(token + "hhh")
				require.ErrorIs(t, err, ErrInvalidToken)
			})
		})
	}
}

func TestNewMakerRejectsBadKeys(t *testing.T) {
	_, err := NewMaker("jwt", "short")
	require.Error(t, err)

	_, err = NewMaker("paseto", testSecret+"x")
	require.Error(t, err)

	_, err = NewMaker("opaque", testSecret)
	require.Error(t, err)
}
