package playback

import (
	"errors"
	"testing"

	"cueplay/player"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("intro", "/music/intro.mp3"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(1, "/music/track01.flac"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := r.Get("intro", nil); got != "/music/intro.mp3" {
		t.Errorf("Get(intro) = %v, want /music/intro.mp3", got)
	}
	if got := r.Get(1, nil); got != "/music/track01.flac" {
		t.Errorf("Get(1) = %v, want /music/track01.flac", got)
	}
}

func TestRegistry_GetDefault(t *testing.T) {
	r := NewRegistry()

	if got := r.Get("missing", "fallback"); got != "fallback" {
		t.Errorf("Get(missing) = %v, want fallback", got)
	}
	if got := r.Get("missing", nil); got != nil {
		t.Errorf("Get(missing, nil) = %v, want nil", got)
	}
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("theme", "old.mp3"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("theme", "new.mp3"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := r.Get("theme", nil); got != "new.mp3" {
		t.Errorf("Get(theme) = %v, want new.mp3", got)
	}
}

func TestRegistry_RejectsBadReference(t *testing.T) {
	r := NewRegistry()

	err := r.Register("bad", []string{"not", "a", "ref"})
	var typeErr *player.TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Register error = %v, want *player.TypeError", err)
	}
	if got := r.Get("bad", nil); got != nil {
		t.Errorf("rejected registration still stored: %v", got)
	}
}

func TestRegistry_HandleReference(t *testing.T) {
	r := NewRegistry()
	h := player.NewMock("mock.mp3")

	if err := r.Register("live", h); err != nil {
		t.Fatalf("Register handle: %v", err)
	}
	if got := r.Get("live", nil); got != h {
		t.Errorf("Get(live) = %v, want the registered handle", got)
	}
}

func TestRegistry_AllSnapshot(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", "a.mp3"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	snap := r.All()
	snap["a"] = "tampered.mp3"
	snap["b"] = "b.mp3"

	if got := r.Get("a", nil); got != "a.mp3" {
		t.Errorf("Get(a) = %v after snapshot mutation, want a.mp3", got)
	}
	if got := r.Get("b", nil); got != nil {
		t.Errorf("Get(b) = %v after snapshot mutation, want nil", got)
	}
}
