package playback

// EventType represents a transport event type.
type EventType int

const (
	EventTrackStarted EventType = iota // playback started on the current track
	EventTrackEnded                    // track drained to its natural end
	EventTrackSkipped                  // user-driven skip to another track
	EventStateChanged                  // transport state changed without a track event
	EventQueueEmptied                  // queue was unloaded or cleared
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventTrackSkipped:
		return "track_skipped"
	case EventStateChanged:
		return "state_changed"
	case EventQueueEmptied:
		return "queue_emptied"
	default:
		return "unknown"
	}
}

// Event describes a transport transition.
type Event struct {
	Type   EventType
	Source string // source identifier of the track involved, if any
	State  State  // engine state after the transition
}
