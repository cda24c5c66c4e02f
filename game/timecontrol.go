package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeControls maps a mode to the base time each side starts with.
// A mode with no entry, or a zero entry, is untimed.
type TimeControls map[Mode]time.Duration

// DefaultTimeControls returns blitz at five minutes and rapid at ten.
// Stopwatch rooms have no countdown.
func DefaultTimeControls() TimeControls {
	return TimeControls{
		ModeBlitz: 300 * time.Second,
		ModeRapid: 600 * time.Second,
	}
}

// Base returns the starting time for mode and whether the mode is timed.
func (tc TimeControls) Base(mode Mode) (time.Duration, bool) {
	d, ok := tc[mode]
	return d, ok && d > 0
}

// LoadTimeControls reads a YAML document of mode → seconds, e.g.
//
//	blitz: 180
//	rapid: 900
//
// and layers it over the defaults.
func LoadTimeControls(path string) (TimeControls, error) {
	tc := DefaultTimeControls()
	if path == "" {
		return tc, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read time controls: %w", err)
	}

	var overrides map[string]int
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse time controls: %w", err)
	}

	for name, seconds := range overrides {
		mode, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		if seconds < 0 {
			return nil, fmt.Errorf("time control for %s is negative", mode)
		}
		tc[mode] = time.Duration(seconds) * time.Second
	}

	return tc, nil
}
