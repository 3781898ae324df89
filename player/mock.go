package player

import "time"

// Mock is a test double for Handle.
type Mock struct {
	source   string
	position time.Duration
	length   time.Duration
	level    float64
	playing  bool
	closed   bool

	playErr error
	seekErr error

	playCalls int
	stopCalls int
	seekCalls []time.Duration

	onPlay func()
	onStop func(cause StopCause)
}

// NewMock creates a mock handle for testing.
func NewMock(source string) *Mock {
	return &Mock{source: source, level: 1}
}

func (m *Mock) Play() error {
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	if m.onPlay != nil {
		m.onPlay()
	}
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	if !m.playing {
		return
	}
	m.playing = false
	if m.onStop != nil {
		m.onStop(CauseStopped)
	}
}

func (m *Mock) Seek(pos time.Duration) error {
	m.seekCalls = append(m.seekCalls, pos)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = pos
	return nil
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Length() time.Duration { return m.length }

func (m *Mock) Source() string { return m.source }

func (m *Mock) Volume() float64 { return m.level }

func (m *Mock) SetVolume(level float64) { m.level = level }

func (m *Mock) SetOnPlay(fn func()) { m.onPlay = fn }

func (m *Mock) SetOnStop(fn func(cause StopCause)) { m.onStop = fn }

func (m *Mock) Close() error {
	if m.playing {
		m.Stop()
	}
	m.closed = true
	return nil
}

// Test helpers

// FinishNaturally simulates the stream draining to its end.
func (m *Mock) FinishNaturally() {
	if !m.playing {
		return
	}
	m.playing = false
	m.position = m.length
	if m.onStop != nil {
		m.onStop(CauseEnded)
	}
}

func (m *Mock) SetPosition(pos time.Duration) { m.position = pos }

func (m *Mock) SetLength(length time.Duration) { m.length = length }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetSeekError(err error) { m.seekErr = err }

func (m *Mock) Playing() bool { return m.playing }

func (m *Mock) Closed() bool { return m.closed }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }
