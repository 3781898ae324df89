package player

import "time"

// StopCause tells a stop subscriber why playback ended.
//
// The distinction drives the queue's advance protocol: a handle that ran to
// the end of its stream advances the queue, a handle stopped by an explicit
// Stop call does not. The cause travels in the notification payload so no
// shared flag is needed across the callback boundary.
type StopCause int

const (
	CauseStopped StopCause = iota // explicit Stop call
	CauseEnded                    // stream drained to its natural end
)

// String returns the cause name for debugging.
func (c StopCause) String() string {
	switch c {
	case CauseStopped:
		return "stopped"
	case CauseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Handle is a playable audio source obtained from the decode primitive.
//
// A handle is bound to exactly one decoded source and is owned by whoever
// loaded it. Each notification has a single subscriber; registering a new
// callback replaces the previous one.
//
// Implementations must be comparable (a pointer receiver suffices): the queue
// engine uses handle identity for membership checks.
type Handle interface {
	// Play starts or restarts playback of the decoded source.
	Play() error
	// Stop halts playback and delivers the stop notification with
	// CauseStopped. No-op if not playing.
	Stop()
	// Seek moves the playback position, clamped to [0, Length].
	Seek(pos time.Duration) error
	// Position reports the true decoder position.
	Position() time.Duration
	// Length reports the total duration of the source.
	Length() time.Duration
	// Source identifies the underlying resource (typically a file path).
	Source() string

	Volume() float64
	SetVolume(level float64)

	// SetOnPlay registers the play-started subscriber.
	SetOnPlay(fn func())
	// SetOnStop registers the play-stopped subscriber. CauseStopped is
	// delivered synchronously from Stop; CauseEnded is delivered from a
	// goroutine of the handle's own once the stream drains, never from a
	// context holding playback locks.
	SetOnStop(fn func(cause StopCause))

	// Close releases the decoder resources. The handle is unusable after.
	Close() error
}

// LoadFunc resolves a source path into a playable handle.
// The package-level LoadHandle is the production implementation; tests
// substitute their own.
type LoadFunc func(path string) (Handle, error)

// Verify Sound and Mock implement Handle at compile time.
var (
	_ Handle = (*Sound)(nil)
	_ Handle = (*Mock)(nil)
)
