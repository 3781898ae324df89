package playback

import (
	"errors"
	"fmt"
	"time"
)

// ErrIndexRange reports a queue index outside the valid range.
var ErrIndexRange = errors.New("sequence index out of range")

// HumanizeDuration formats a duration as H:MM:SS. With removeLeadingZero,
// durations under an hour render as MM:SS, and under ten minutes the minute
// keeps a single digit (10s -> "0:10", 130s -> "2:10", 1h -> "1:00:00").
// Negative durations are treated as zero.
func HumanizeDuration(d time.Duration, removeLeadingZero bool) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60

	if removeLeadingZero && h == 0 {
		if m < 10 {
			return fmt.Sprintf("%d:%02d", m, s)
		}
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// NormalizeIndex converts a negative (reverse) index into a standard one.
// Out-of-range indexes in either direction return ErrIndexRange, never a
// clamped value.
func NormalizeIndex[T any](seq []T, index int) (int, error) {
	n := len(seq)
	if index < 0 {
		if -index > n {
			return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexRange, index, n)
		}
		return n + index, nil
	}
	if index > n-1 {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexRange, index, n)
	}
	return index, nil
}
