package playback

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		name              string
		d                 time.Duration
		removeLeadingZero bool
		expected          string
	}{
		{"ten seconds", 10 * time.Second, true, "0:10"},
		{"over two minutes", 130 * time.Second, true, "2:10"},
		{"exactly one hour", 3600 * time.Second, true, "1:00:00"},
		{"ten seconds full form", 10 * time.Second, false, "0:00:10"},
		{"zero", 0, true, "0:00"},
		{"zero full form", 0, false, "0:00:00"},
		{"just under ten minutes", 599 * time.Second, true, "9:59"},
		{"ten minutes keeps two digits", 600 * time.Second, true, "10:00"},
		{"over an hour", 3725 * time.Second, true, "1:02:05"},
		{"negative treated as zero", -5 * time.Second, true, "0:00"},
		{"fractional seconds truncated", 10500 * time.Millisecond, true, "0:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HumanizeDuration(tt.d, tt.removeLeadingZero)
			if result != tt.expected {
				t.Errorf("HumanizeDuration(%v, %v) = %q, want %q",
					tt.d, tt.removeLeadingZero, result, tt.expected)
			}
		})
	}
}

func TestHumanizeDuration_RoundTrips(t *testing.T) {
	// Parsing the full H:MM:SS form back must give the original seconds.
	for _, seconds := range []int{0, 1, 9, 59, 60, 61, 130, 599, 600, 3599, 3600, 3661, 86399} {
		formatted := HumanizeDuration(time.Duration(seconds)*time.Second, false)

		var h, m, s int
		if _, err := fmt.Sscanf(formatted, "%d:%d:%d", &h, &m, &s); err != nil {
			t.Fatalf("HumanizeDuration(%ds) = %q, not parseable: %v", seconds, formatted, err)
		}
		if got := h*3600 + m*60 + s; got != seconds {
			t.Errorf("HumanizeDuration(%ds) = %q, parses back to %ds", seconds, formatted, got)
		}
	}
}

func TestNormalizeIndex(t *testing.T) {
	seq := []string{"a", "b", "c"}

	tests := []struct {
		index    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{-1, 2},
		{-2, 1},
		{-3, 0},
	}

	for _, tt := range tests {
		result, err := NormalizeIndex(seq, tt.index)
		if err != nil {
			t.Errorf("NormalizeIndex(seq, %d) unexpected error: %v", tt.index, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("NormalizeIndex(seq, %d) = %d, want %d", tt.index, result, tt.expected)
		}
	}
}

func TestNormalizeIndex_OutOfRange(t *testing.T) {
	seq := []string{"a", "b", "c"}

	for _, index := range []int{3, 4, -4, -10} {
		_, err := NormalizeIndex(seq, index)
		if !errors.Is(err, ErrIndexRange) {
			t.Errorf("NormalizeIndex(seq, %d) error = %v, want ErrIndexRange", index, err)
		}
	}
}

func TestNormalizeIndex_EmptySequence(t *testing.T) {
	_, err := NormalizeIndex([]string{}, 0)
	if !errors.Is(err, ErrIndexRange) {
		t.Errorf("NormalizeIndex(empty, 0) error = %v, want ErrIndexRange", err)
	}
	_, err = NormalizeIndex([]string{}, -1)
	if !errors.Is(err, ErrIndexRange) {
		t.Errorf("NormalizeIndex(empty, -1) error = %v, want ErrIndexRange", err)
	}
}
