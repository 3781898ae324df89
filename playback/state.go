package playback

// State represents the queue/transport state machine.
//
// Valid transitions:
//   - QueueEmpty  → QueueLoaded (via Load)
//   - QueueLoaded → Playing     (via Play)
//   - Playing     → Stopped     (via Stop, or walking past the queue end)
//   - Stopped     → Playing     (via Play)
//   - any         → QueueEmpty  (via Unload)
//
// Natural end-of-track re-enters Playing through the advance protocol. At the
// queue end without looping the engine parks in Stopped with no current
// handle; Play from there restarts at index 0.
type State int

const (
	StateQueueEmpty State = iota
	StateQueueLoaded
	StatePlaying
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateQueueEmpty:
		return "queue empty"
	case StateQueueLoaded:
		return "queue loaded"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// IsLoaded returns true if the queue holds at least one track.
func (s State) IsLoaded() bool {
	return s != StateQueueEmpty
}
