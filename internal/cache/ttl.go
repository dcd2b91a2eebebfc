package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL bounds. Zero disables caching.
const (
	// DefaultTTLSeconds keeps lookup results for a day; vehicle menus change yearly.
	DefaultTTLSeconds = 86400

	// MaxTTLSeconds is the maximum allowed TTL (30 days).
	MaxTTLSeconds = 30 * 86400

	minutesPerHour = 60
	hoursPerDay    = 24
)

// ErrInvalidTTL is returned by ParseTTL for out-of-range values.
var ErrInvalidTTL = fmt.Errorf("TTL must be between 0 and %d seconds", MaxTTLSeconds)

// ParseTTL accepts integer seconds ("3600") or a duration ("1h30m") and
// returns whole seconds.
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format %q: %w", s, durErr)
		}
		seconds = int(d.Seconds())
	}

	if seconds < 0 || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}

// FormatDuration renders d as "30s", "5m", "2h30m" or "3d2h".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < hoursPerDay*time.Hour:
		hours := int(d.Hours())
		if minutes := int(d.Minutes()) % minutesPerHour; minutes != 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	default:
		days := int(d.Hours()) / hoursPerDay
		if hours := int(d.Hours()) % hoursPerDay; hours != 0 {
			return fmt.Sprintf("%dd%dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	}
}
