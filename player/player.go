package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Sound is the beep-backed Handle implementation. One Sound wraps one
// decoded audio file.
type Sound struct {
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	mu     sync.Mutex
	ctrl   *beep.Ctrl
	volume *effects.Volume
	level  float64

	playing bool
	cancel  chan struct{}
	onPlay  func()
	onStop  func(cause StopCause)

	info *TrackInfo
}

var speakerInitialized bool

// ensureSpeaker initializes the shared speaker once per process, using the
// sample rate of the first sound played.
func ensureSpeaker(sr beep.SampleRate) error {
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return err
	}
	speakerInitialized = true
	return nil
}

// Load opens and decodes the audio file at path, returning a playable Sound.
// The decoder is picked by file extension.
func Load(path string) (*Sound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("load %s: unsupported format %q", path, ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if err := ensureSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		f.Close()
		return nil, err
	}

	return &Sound{
		path:     path,
		streamer: streamer,
		format:   format,
		file:     f,
		level:    1,
	}, nil
}

// LoadHandle is Load adapted to the LoadFunc signature.
func LoadHandle(path string) (Handle, error) {
	return Load(path)
}

// Play starts playback from the current decoder position. No-op while
// already playing.
func (s *Sound) Play() error {
	s.mu.Lock()
	if s.streamer == nil {
		s.mu.Unlock()
		return fmt.Errorf("play %s: sound is closed", s.path)
	}
	if s.playing {
		s.mu.Unlock()
		return nil
	}

	s.ctrl = &beep.Ctrl{Streamer: s.streamer}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level <= 0,
	}
	vol := s.volume
	done := make(chan struct{})
	cancel := make(chan struct{})
	s.cancel = cancel
	s.playing = true
	onPlay := s.onPlay
	s.mu.Unlock()

	// The callback runs on the speaker goroutine with the speaker mutex
	// held, so it may only signal. The watcher delivers the end-of-stream
	// notification from a goroutine free to seek and queue new streams.
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	go s.watch(done, cancel)

	if onPlay != nil {
		onPlay()
	}
	return nil
}

// watch waits for the stream to drain and delivers the end-of-stream
// notification. A Stop racing the drain wins by flipping playing first; the
// loser backs off, so exactly one cause fires per session.
func (s *Sound) watch(done, cancel chan struct{}) {
	select {
	case <-done:
	case <-cancel:
		return
	}

	s.mu.Lock()
	if !s.playing || s.cancel != cancel {
		s.mu.Unlock()
		return
	}
	s.playing = false
	onStop := s.onStop
	s.mu.Unlock()

	if onStop != nil {
		onStop(CauseEnded)
	}
}

// Stop halts playback. No-op if not playing.
func (s *Sound) Stop() {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = false
	close(s.cancel)
	s.cancel = nil
	onStop := s.onStop
	s.mu.Unlock()

	speaker.Clear()
	if onStop != nil {
		onStop(CauseStopped)
	}
}

// Seek moves the decoder position, clamped to the stream bounds.
func (s *Sound) Seek(pos time.Duration) error {
	if s.streamer == nil {
		return fmt.Errorf("seek %s: sound is closed", s.path)
	}
	n := s.format.SampleRate.N(pos)
	n = min(max(n, 0), s.streamer.Len())

	speaker.Lock()
	err := s.streamer.Seek(n)
	speaker.Unlock()
	return err
}

// Position returns the current decoder position.
func (s *Sound) Position() time.Duration {
	if s.streamer == nil {
		return 0
	}
	speaker.Lock()
	n := s.streamer.Position()
	speaker.Unlock()
	return s.format.SampleRate.D(n)
}

// Length returns the total duration of the decoded stream.
func (s *Sound) Length() time.Duration {
	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// Source returns the file path this sound was loaded from.
func (s *Sound) Source() string { return s.path }

// SetOnPlay registers the play-started subscriber, replacing any previous one.
func (s *Sound) SetOnPlay(fn func()) {
	s.mu.Lock()
	s.onPlay = fn
	s.mu.Unlock()
}

// SetOnStop registers the play-stopped subscriber, replacing any previous one.
func (s *Sound) SetOnStop(fn func(cause StopCause)) {
	s.mu.Lock()
	s.onStop = fn
	s.mu.Unlock()
}

// Info returns tag metadata for the source, read lazily on first call.
func (s *Sound) Info() *TrackInfo {
	if s.info == nil {
		info, err := ReadTrackInfo(s.path)
		if err != nil {
			info = &TrackInfo{Path: s.path, Title: filepath.Base(s.path)}
		}
		info.Duration = s.Length()
		s.info = info
	}
	return s.info
}

// Close releases the decoder and the underlying file.
func (s *Sound) Close() error {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.streamer != nil {
		err = s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	s.ctrl = nil
	s.volume = nil
	return err
}
