package playback

import (
	"time"

	"cueplay/player"
)

// Option configures a Player at construction time.
type Option func(*Player)

// WithVolume sets the shared volume applied to every loaded handle,
// clamped to [0, 1].
func WithVolume(level float64) Option {
	return func(p *Player) {
		if level < 0 {
			level = 0
		}
		if level > 1 {
			level = 1
		}
		p.volume = level
	}
}

// WithLoop makes the queue restart from index 0 after walking past either end.
func WithLoop(loop bool) Option {
	return func(p *Player) { p.loop = loop }
}

// WithEstimation enables position estimation with the given tick interval.
// Non-positive intervals fall back to the default.
func WithEstimation(interval time.Duration) Option {
	return func(p *Player) {
		p.estimate = true
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithoutEstimation disables position estimation.
func WithoutEstimation() Option {
	return func(p *Player) { p.estimate = false }
}

// WithLoader substitutes the decode primitive used to resolve references.
func WithLoader(load player.LoadFunc) Option {
	return func(p *Player) {
		if load != nil {
			p.load = load
		}
	}
}

// WithAliases substitutes the alias registry consulted during Load.
func WithAliases(r *Registry) Option {
	return func(p *Player) {
		if r != nil {
			p.aliases = r
		}
	}
}

// WithSeekStep sets the default FastForward/Rewind step.
func WithSeekStep(step time.Duration) Option {
	return func(p *Player) {
		if step > 0 {
			p.seekStep = step
		}
	}
}

// LoadOptions controls a LoadWith call.
type LoadOptions struct {
	// ClearQueue releases and drops everything queued before loading.
	ClearQueue bool
	// IgnoreAliases skips alias resolution for the given references.
	IgnoreAliases bool
}

// SkipOptions controls a NextWith or PreviousWith call.
type SkipOptions struct {
	// Play starts playback on the target track.
	Play bool
	// StopCurrent stops the current track before jumping.
	StopCurrent bool
	// ResetPosition seeks the target track to its beginning.
	ResetPosition bool
}

// DefaultSkipOptions returns the options used by Next and Previous:
// stop the current track, reset the target position, play immediately.
func DefaultSkipOptions() SkipOptions {
	return SkipOptions{Play: true, StopCurrent: true, ResetPosition: true}
}
