package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Square count bounds accepted from the settings input.
const (
	DefaultSquareCount = 9
	MinSquareCount     = 1
	MaxSquareCount     = 100
)

var (
	ErrTimeLabel      = errors.New("unexpected time format")
	ErrInvalidSquares = errors.New("number of squares must be between 1 and 100")
	ErrInvalidTarget  = errors.New("target score must be between 1 and 30000")
	ErrUnknownControl = errors.New("unknown settings control")
)

// OverlayConfig is what an overlay is built from. It is read from the store
// at creation time, so it survives settings UI re-injection.
type OverlayConfig struct {
	SquareCount          int
	RoundDurationSeconds int
}

// ValidSquareCount reports whether n is an accepted square count.
func ValidSquareCount(n int) bool {
	return n >= MinSquareCount && n <= MaxSquareCount
}

// LoadOverlayConfig reads the square count and round time label from s.
// An unparseable label yields 0 seconds, which disables cell removal.
func LoadOverlayConfig(s Store, log *EventLog) OverlayConfig {
	cfg := OverlayConfig{SquareCount: DefaultSquareCount}
	if raw, ok := s.Get(KeySquareCount); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && ValidSquareCount(n) {
			cfg.SquareCount = n
		} else {
			log.Addf("store", "bad_squares", "%q, using %d", raw, DefaultSquareCount)
		}
	}
	raw, ok := s.Get(KeyRoundDurationLabel)
	if !ok || raw == "" {
		log.Add("store", "no_round_time", "no stored round time")
		return cfg
	}
	secs, err := ParseTimeLabel(raw)
	if err != nil {
		log.Add("store", "bad_round_time", err.Error())
	}
	cfg.RoundDurationSeconds = secs
	return cfg
}

// ParseTimeLabel converts an "MM:SS" (or "M:SS") label into seconds.
// Anything without exactly one colon, or with non-numeric parts, is 0.
func ParseTimeLabel(label string) (int, error) {
	label = strings.TrimSpace(label)
	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrTimeLabel, label)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeLabel, label)
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeLabel, label)
	}
	return minutes*60 + seconds, nil
}

// FormatTimeLabel renders seconds the way the time slider shows them.
func FormatTimeLabel(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
