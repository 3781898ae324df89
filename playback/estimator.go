package playback

import (
	"sync"
	"time"
)

// Estimator accumulates a coarse playback position on a fixed interval.
// Each tick hands the interval to the callback; the sum approximates the
// position between true decoder reads. Start and Cancel are paired with the
// play-started and play-stopped notifications by the engine.
//
// Every fresh Start opens a new session and returns its generation number;
// ticks carry the generation they were dispatched under, so a consumer that
// resets its accumulator can discard ticks from a cancelled session.
type Estimator struct {
	interval time.Duration
	tick     func(gen uint64, delta time.Duration)

	mu   sync.Mutex
	stop chan struct{}
	gen  uint64
}

// NewEstimator creates an estimator ticking every interval. Non-positive
// intervals fall back to one second.
func NewEstimator(interval time.Duration, tick func(gen uint64, delta time.Duration)) *Estimator {
	if interval <= 0 {
		interval = time.Second
	}
	return &Estimator{interval: interval, tick: tick}
}

// Interval returns the configured tick interval.
func (e *Estimator) Interval() time.Duration {
	return e.interval
}

// Start begins the repeating tick and returns the session generation.
// When already running it returns the current generation without restarting.
func (e *Estimator) Start() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != nil {
		return e.gen
	}
	e.gen++
	stop := make(chan struct{})
	e.stop = stop
	go e.run(stop, e.gen)
	return e.gen
}

func (e *Estimator) run(stop chan struct{}, gen uint64) {
	t := time.NewTicker(e.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			e.tick(gen, e.interval)
		}
	}
}

// Cancel stops the repeating tick. Safe to call when not running. A tick
// already dispatched may still be delivered; it carries the cancelled
// session's generation.
func (e *Estimator) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop == nil {
		return
	}
	close(e.stop)
	e.stop = nil
}

// Running reports whether the tick loop is active.
func (e *Estimator) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stop != nil
}
