package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockCharge(t *testing.T) {
	mc := newManualClock()
	c := NewClock(300*time.Second, mc.Now())
	c.Start(mc.Now())

	mc.Advance(7 * time.Second)
	require.Equal(t, 7*time.Second, c.Elapsed(mc.Now()))

	elapsed := c.Charge(White, mc.Now())
	require.Equal(t, 7*time.Second, elapsed)
	require.Equal(t, 293*time.Second, c.Remaining(White))
	require.Equal(t, 300*time.Second, c.Remaining(Black))

	mc.Advance(2500 * time.Millisecond)
	c.Charge(Black, mc.Now())
	require.Equal(t, 293*time.Second, c.Remaining(White))
	require.Equal(t, 297500*time.Millisecond, c.Remaining(Black))

	require.Equal(t, &ClockSnapshot{White: 293, Black: 297.5}, c.Snapshot())
}

func TestClockStartOnlyOnce(t *testing.T) {
	mc := newManualClock()
	c := NewClock(60*time.Second, mc.Now())

	mc.Advance(10 * time.Second)
	c.Start(mc.Now())

	mc.Advance(5 * time.Second)
	c.Start(mc.Now()) // ignored

	mc.Advance(5 * time.Second)
	c.Charge(White, mc.Now())
	require.Equal(t, 50*time.Second, c.Remaining(White))
}

func TestClockGoesNegative(t *testing.T) {
	mc := newManualClock()
	c := NewClock(time.Second, mc.Now())

	mc.Advance(3 * time.Second)
	c.Charge(White, mc.Now())

	require.True(t, c.Expired(White))
	require.False(t, c.Expired(Black))
	require.Equal(t, -2*time.Second, c.Remaining(White))
}

func TestTimeControls(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tc := DefaultTimeControls()
		for mode, want := range map[Mode]time.Duration{
			ModeBlitz: 300 * time.Second,
			ModeRapid: 600 * time.Second,
		} {
			got, timed := tc.Base(mode)
			require.True(t, timed, mode)
			require.Equal(t, want, got, mode)
		}
		for _, mode := range []Mode{ModeNormal, ModeAnalyse, ModeStopwatch} {
			_, timed := tc.Base(mode)
			require.False(t, timed, mode)
		}
	})

	t.Run("yaml overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("blitz: 180\nNormal: 900\n"), 0o644))

		tc, err := LoadTimeControls(path)
		require.NoError(t, err)

		base, _ := tc.Base(ModeBlitz)
		require.Equal(t, 180*time.Second, base)
		base, _ = tc.Base(ModeRapid)
		require.Equal(t, 600*time.Second, base)
		base, timed := tc.Base(ModeNormal)
		require.True(t, timed)
		require.Equal(t, 900*time.Second, base)
	})

	t.Run("unknown mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bullet: 60\n"), 0o644))

		_, err := LoadTimeControls(path)
		require.ErrorIs(t, err, ErrUnknownMode)
	})

	t.Run("no file", func(t *testing.T) {
		tc, err := LoadTimeControls("")
		require.NoError(t, err)
		require.Equal(t, DefaultTimeControls(), tc)
	})
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Blitz ")
	require.NoError(t, err)
	require.Equal(t, ModeBlitz, m)

	_, err = ParseMode("bullet")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestSquareName(t *testing.T) {
	require.Equal(t, "a1", Square{0, 0}.Name())
	require.Equal(t, "e2", Square{4, 1}.Name())
	require.Equal(t, "h8", Square{7, 7}.Name())
	require.False(t, Square{8, 0}.Valid())
	require.False(t, Square{0, -1}.Valid())
}
