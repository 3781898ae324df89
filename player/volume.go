package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the playback level (0.0 to 1.0). Values outside the range
// are clamped; range validation belongs to the caller.
func (s *Sound) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	s.mu.Lock()
	s.level = level
	vol := s.volume
	s.mu.Unlock()

	if vol != nil {
		speaker.Lock()
		vol.Volume = levelToVolume(level)
		vol.Silent = level <= 0
		speaker.Unlock()
	}
}

// Volume returns the current level (0.0 to 1.0).
func (s *Sound) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale where Volume is in "decibels" with base 2.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
