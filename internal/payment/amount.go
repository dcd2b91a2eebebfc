package payment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minorPerMajor = 100

// ParseAmount parses user input such as "50", "$50", "1,250.5" or "€20.00"
// into minor units. At most two decimals are accepted.
func ParseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "$€£₹ ")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	if _, frac, ok := strings.Cut(clean, "."); ok && len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimals", ErrInvalidAmount, s)
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, s)
	}
	if f > math.MaxInt64/minorPerMajor {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}
	return int64(math.Round(f * minorPerMajor)), nil
}

// FormatAmount renders minor units as "USD 1250.50".
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, minor/minorPerMajor, minor%minorPerMajor)
}
