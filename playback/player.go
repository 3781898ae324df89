// Package playback coordinates an ordered queue of playable handles on top
// of the decode primitive in cueplay/player: transport controls, a progress
// index, auto-advance at natural track end, and a timer-based position
// estimate between true decoder reads.
package playback

import (
	"errors"
	"sync"
	"time"

	"cueplay/player"
)

// Errors
var (
	ErrQueueEmpty  = errors.New("queue is empty")
	ErrNoTrack     = errors.New("no current track")
	ErrVolumeRange = errors.New("volume must be between 0 and 1")
)

const (
	// DefaultSeekStep is the FastForward/Rewind step when none is given.
	DefaultSeekStep = 10 * time.Second
	// DefaultInterval is the position-estimation tick interval.
	DefaultInterval = time.Second

	eventBufferSize = 16
)

// Player owns an ordered queue of handles and the transport state machine.
//
// All operations serialize on one mutex; every operation, including the
// advance triggered by a handle's stop notification, runs to completion
// before the next is processed. Handles in the queue are owned exclusively
// by the Player once loaded.
type Player struct {
	mu sync.Mutex

	queue   []player.Handle
	index   int // -1 means no current track
	current player.Handle
	state   State

	volume   float64
	loop     bool
	estimate bool
	interval time.Duration
	seekStep time.Duration

	posEstimate time.Duration
	estGen      uint64 // estimator session feeding posEstimate, 0 when none
	estimator   *Estimator

	load    player.LoadFunc
	aliases *Registry

	events chan Event
	closed bool
}

// New creates an empty player. Defaults: full volume, no loop, estimation
// enabled at one-second ticks, the beep loader, the process-wide alias table.
func New(opts ...Option) *Player {
	p := &Player{
		index:    -1,
		state:    StateQueueEmpty,
		volume:   1,
		estimate: true,
		interval: DefaultInterval,
		seekStep: DefaultSeekStep,
		load:     player.LoadHandle,
		aliases:  DefaultRegistry,
		events:   make(chan Event, eventBufferSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.estimator = NewEstimator(p.interval, p.addEstimate)
	return p
}

// Events returns the transport event channel. Events are dropped rather than
// blocking when the buffer is full.
func (p *Player) Events() <-chan Event {
	return p.events
}

// Load resolves references (aliases included) and appends them to the queue.
func (p *Player) Load(refs ...any) error {
	return p.LoadWith(LoadOptions{}, refs...)
}

// LoadWith resolves references per opts and appends them to the queue.
// Each reference is gate-checked, alias-resolved unless ignored, converted
// to a handle through the loader, configured with the shared volume and the
// transport notifications, then appended. The first failing reference stops
// the load; earlier references stay queued. Errors surface unchanged.
func (p *Player) LoadWith(opts LoadOptions, refs ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if opts.ClearQueue {
		p.clearQueueLocked()
	}

	for _, ref := range refs {
		if err := player.CheckSource(ref); err != nil {
			return err
		}
		// An already-loaded handle is used as-is; only key-like references
		// (strings, numbers) go through the alias table.
		if _, isHandle := ref.(player.Handle); !isHandle && !opts.IgnoreAliases {
			if found := p.aliases.Get(ref, nil); found != nil {
				ref = found
			}
		}
		h, err := player.ResolveHandle(p.load, ref)
		if err != nil {
			return err
		}
		p.configureLocked(h)
		p.queue = append(p.queue, h)
	}

	if len(refs) > 0 && len(p.queue) > 0 {
		p.state = StateQueueLoaded
	}
	return nil
}

// configureLocked applies the shared volume and binds the play/stop
// notifications that drive estimation and auto-advance.
//
// The play notification fires synchronously from Handle.Play, so it always
// runs with p.mu held by the calling operation and may touch engine fields
// directly. The stop notification fires either synchronously from Stop
// (CauseStopped, p.mu held) or from the handle's own drain-watcher goroutine
// (CauseEnded, no locks held); only the latter may take p.mu.
func (p *Player) configureLocked(h player.Handle) {
	h.SetVolume(p.volume)
	h.SetOnPlay(func() {
		if p.estimate {
			p.estGen = p.estimator.Start()
		}
	})
	h.SetOnStop(func(cause player.StopCause) {
		if p.estimate {
			p.estimator.Cancel()
		}
		// A natural end advances the queue; an explicit stop must not.
		// The cause travels in the notification payload, so a stop issued
		// while an engine operation holds the lock needs no further work
		// here.
		if cause == player.CauseEnded {
			p.autoAdvance(h)
		}
	})
}

// autoAdvance implements the natural end-of-track protocol: reset the
// estimate and move to the next track without stopping (the handle already
// stopped itself), playing immediately.
func (p *Player) autoAdvance(ended player.Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Stale notification from a handle that is no longer current.
	if p.current != ended {
		return
	}

	p.estGen = 0 // invalidate ticks dispatched before the cancel
	p.posEstimate = 0
	p.emitLocked(Event{Type: EventTrackEnded, Source: ended.Source(), State: p.state})
	_ = p.skipLocked(p.index+1, SkipOptions{Play: true, ResetPosition: true})
}

// addEstimate is the estimator tick callback. Ticks from a session that is no
// longer live are dropped, so a tick in flight during a cancel cannot move an
// estimate that was just reset.
func (p *Player) addEstimate(gen uint64, delta time.Duration) {
	p.mu.Lock()
	if gen == p.estGen {
		p.posEstimate += delta
	}
	p.mu.Unlock()
}

// ClearQueue releases every queued handle and empties the queue.
func (p *Player) ClearQueue() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearQueueLocked()
}

func (p *Player) clearQueueLocked() {
	for _, h := range p.queue {
		_ = h.Close()
	}
	p.queue = p.queue[:0]
	p.index = -1
	p.current = nil
	p.estGen = 0
	p.emitLocked(Event{Type: EventQueueEmptied, State: p.state})
}

// Unload releases all handles, clears the queue, and returns the player to
// the queue-empty state.
func (p *Player) Unload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearQueueLocked()
	p.state = StateQueueEmpty
}

// Play starts the current track. With no current track it jumps to index 0
// first; an empty queue returns ErrQueueEmpty rather than silently ignoring
// the call.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked()
}

func (p *Player) playLocked() error {
	if p.current == nil {
		if len(p.queue) == 0 {
			return ErrQueueEmpty
		}
		p.jumpLocked(0)
	}
	if err := p.current.Play(); err != nil {
		return err
	}
	p.state = StatePlaying
	p.emitLocked(Event{Type: EventTrackStarted, Source: p.current.Source(), State: p.state})
	return nil
}

// Stop stops the current track. The handle's stop notification carries
// CauseStopped, so the advance protocol stays quiet.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	if p.current == nil {
		return ErrNoTrack
	}
	p.current.Stop()
	p.estGen = 0
	p.state = StateStopped
	p.emitLocked(Event{Type: EventStateChanged, Source: p.current.Source(), State: p.state})
	return nil
}

// Seek moves the current track to pos. No state transition, and the position
// estimate is left untouched.
func (p *Player) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ErrNoTrack
	}
	return p.current.Seek(pos)
}

// Position returns the true decoder position of the current track.
func (p *Player) Position() (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return 0, ErrNoTrack
	}
	return p.current.Position(), nil
}

// FastForward seeks ahead by step (the configured default when step <= 0),
// clamping to the track length. When estimation is enabled the estimate is
// set to the new position.
func (p *Player) FastForward(step time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ErrNoTrack
	}
	if step <= 0 {
		step = p.seekStep
	}

	pos := p.current.Position() + step
	if length := p.current.Length(); pos > length {
		pos = length
	}
	return p.seekEstimateLocked(pos)
}

// Rewind seeks back by step (the configured default when step <= 0),
// clamping to the track start. When estimation is enabled the estimate is
// set to the new position.
func (p *Player) Rewind(step time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ErrNoTrack
	}
	if step <= 0 {
		step = p.seekStep
	}

	pos := p.current.Position() - step
	if pos < 0 {
		pos = 0
	}
	return p.seekEstimateLocked(pos)
}

func (p *Player) seekEstimateLocked(pos time.Duration) error {
	if err := p.current.Seek(pos); err != nil {
		return err
	}
	if p.estimate {
		p.posEstimate = pos
	}
	return nil
}

// Next skips to the next track with the default options.
func (p *Player) Next() error {
	return p.NextWith(DefaultSkipOptions())
}

// NextWith skips to the next track per opts.
func (p *Player) NextWith(opts SkipOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.sourceLocked()
	if err := p.skipLocked(p.index+1, opts); err != nil {
		return err
	}
	p.emitLocked(Event{Type: EventTrackSkipped, Source: prev, State: p.state})
	return nil
}

// Previous skips to the previous track with the default options.
// From index 0 the reverse index wraps to the end of the queue.
func (p *Player) Previous() error {
	return p.PreviousWith(DefaultSkipOptions())
}

// PreviousWith skips to the previous track per opts. An out-of-range reverse
// index surfaces ErrIndexRange.
func (p *Player) PreviousWith(opts SkipOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if opts.StopCurrent && p.current != nil {
		if err := p.stopLocked(); err != nil {
			return err
		}
	}
	target, err := NormalizeIndex(p.queue, p.index-1)
	if err != nil {
		return err
	}

	prev := p.sourceLocked()
	opts.StopCurrent = false // already stopped above
	if err := p.skipLocked(target, opts); err != nil {
		return err
	}
	p.emitLocked(Event{Type: EventTrackSkipped, Source: prev, State: p.state})
	return nil
}

// skipLocked stops the current track if requested, jumps to target, and
// applies the reset/play options on the new current track. When the jump
// walks past the end the loop flag decides between a restart and the
// terminal reset; either way the remaining options are moot.
func (p *Player) skipLocked(target int, opts SkipOptions) error {
	if opts.StopCurrent && p.current != nil {
		if err := p.stopLocked(); err != nil {
			return err
		}
	}
	if looped := p.jumpLocked(target); looped {
		return nil
	}
	if p.current == nil {
		return nil
	}
	if opts.ResetPosition {
		if err := p.current.Seek(0); err != nil {
			return err
		}
	}
	if opts.Play {
		return p.playLocked()
	}
	return nil
}

// jumpLocked moves the progress index. An out-of-range target is the one
// deliberately recovered range condition: the index resets to -1 and the
// current handle clears; with the loop flag set playback restarts at
// index 0 (reported via the return value), otherwise the engine parks in
// the stopped state.
func (p *Player) jumpLocked(target int) (looped bool) {
	if target < 0 || target >= len(p.queue) {
		p.index = -1
		p.current = nil
		if p.loop {
			_ = p.playLocked()
			return true
		}
		if p.state == StatePlaying {
			p.state = StateStopped
			p.emitLocked(Event{Type: EventStateChanged, State: p.state})
		}
		return false
	}
	p.index = target
	p.current = p.queue[target]
	return false
}

// Index returns the progress index (-1 when no track is current).
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Source returns the current track's source identifier, or "" when none.
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sourceLocked()
}

func (p *Player) sourceLocked() string {
	if p.current == nil {
		return ""
	}
	return p.current.Source()
}

// Length returns the current track's duration, or 0 when none.
func (p *Player) Length() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return 0
	}
	return p.current.Length()
}

// HumanLength returns the current track's duration as H:MM:SS / M:SS.
func (p *Player) HumanLength() string {
	return HumanizeDuration(p.Length(), true)
}

// Volume returns the shared volume level.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets the shared volume and applies it to every queued handle.
// Values outside [0, 1] are rejected with ErrVolumeRange and the previous
// volume is retained.
func (p *Player) SetVolume(level float64) error {
	if level < 0 || level > 1 {
		return ErrVolumeRange
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = level
	for _, h := range p.queue {
		h.SetVolume(level)
	}
	return nil
}

// Loop returns whether the queue restarts after walking past its end.
func (p *Player) Loop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop
}

// SetLoop sets the loop flag.
func (p *Player) SetLoop(loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = loop
}

// PositionEstimate returns the timer-based position approximation. It is
// reset on natural track end and left untouched by manual skips.
func (p *Player) PositionEstimate() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posEstimate
}

// HumanPositionEstimate returns the estimate as H:MM:SS / M:SS.
func (p *Player) HumanPositionEstimate() string {
	return HumanizeDuration(p.PositionEstimate(), true)
}

// Remaining returns a copy of the unplayed tail of the queue, the tracks
// after the current one.
func (p *Player) Remaining() []player.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	tail := p.queue[p.index+1:]
	result := make([]player.Handle, len(tail))
	copy(result, tail)
	return result
}

// Len returns the number of unplayed tracks after the current one.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) - (p.index + 1)
}

// Contains reports whether h is among the unplayed tail.
func (p *Player) Contains(h player.Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, queued := range p.queue[p.index+1:] {
		if queued == h {
			return true
		}
	}
	return false
}

// Snapshot captures the restorable part of the player for persistence.
type Snapshot struct {
	Sources []string
	Index   int
	Volume  float64
	Loop    bool
}

// Snapshot returns the current queue sources, progress index, volume, and
// loop flag.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	sources := make([]string, len(p.queue))
	for i, h := range p.queue {
		sources[i] = h.Source()
	}
	return Snapshot{
		Sources: sources,
		Index:   p.index,
		Volume:  p.volume,
		Loop:    p.loop,
	}
}

// Close cancels the estimator, releases every handle, and closes the event
// channel. The player is unusable after.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}

	p.estimator.Cancel()
	p.estGen = 0
	for _, h := range p.queue {
		_ = h.Close()
	}
	p.queue = nil
	p.index = -1
	p.current = nil
	p.state = StateQueueEmpty

	p.closed = true
	close(p.events)
	return nil
}

// emitLocked sends an event without blocking, dropping it when the buffer
// is full or the player is closed.
func (p *Player) emitLocked(e Event) {
	if p.closed {
		return
	}
	select {
	case p.events <- e:
	default:
	}
}
