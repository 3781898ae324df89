package player

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckSource(t *testing.T) {
	valid := []any{
		"/music/track.mp3",
		42,
		int64(42),
		3.14,
		NewMock("mock.mp3"),
	}
	for _, v := range valid {
		if err := CheckSource(v); err != nil {
			t.Errorf("CheckSource(%T) = %v, want nil", v, err)
		}
	}

	invalid := []any{
		nil,
		[]string{"a"},
		map[string]string{},
		struct{}{},
		int32(1),
		float32(1),
	}
	for _, v := range invalid {
		var typeErr *TypeError
		if err := CheckSource(v); !errors.As(err, &typeErr) {
			t.Errorf("CheckSource(%T) = %v, want *TypeError", v, err)
		}
	}
}

func TestTypeError_NamesAllowedShapes(t *testing.T) {
	err := CheckSource(struct{}{})
	for _, want := range []string{"int", "int64", "float64", "string", "player.Handle"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("TypeError message %q does not mention %q", err.Error(), want)
		}
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string passes through", "/music/a.mp3", "/music/a.mp3"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float64", 2.5, "2.5"},
		{"float64 whole", 3.0, "3"},
		{"handle yields source", NewMock("handle.flac"), "handle.flac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SourceString(tt.value)
			if err != nil {
				t.Fatalf("SourceString(%v): %v", tt.value, err)
			}
			if result != tt.expected {
				t.Errorf("SourceString(%v) = %q, want %q", tt.value, result, tt.expected)
			}
		})
	}
}

func TestSourceString_Rejects(t *testing.T) {
	var typeErr *TypeError
	if _, err := SourceString([]byte("nope")); !errors.As(err, &typeErr) {
		t.Errorf("SourceString([]byte) error = %v, want *TypeError", err)
	}
}

func TestResolveHandle(t *testing.T) {
	var loadedPath string
	load := func(path string) (Handle, error) {
		loadedPath = path
		return NewMock(path), nil
	}

	h, err := ResolveHandle(load, "/music/a.mp3")
	if err != nil {
		t.Fatalf("ResolveHandle: %v", err)
	}
	if loadedPath != "/music/a.mp3" {
		t.Errorf("loader path = %q, want /music/a.mp3", loadedPath)
	}
	if h.Source() != "/music/a.mp3" {
		t.Errorf("Source() = %q, want /music/a.mp3", h.Source())
	}
}

func TestResolveHandle_Passthrough(t *testing.T) {
	load := func(path string) (Handle, error) {
		t.Fatalf("loader called for a handle reference: %q", path)
		return nil, nil
	}

	m := NewMock("already.mp3")
	h, err := ResolveHandle(load, m)
	if err != nil {
		t.Fatalf("ResolveHandle: %v", err)
	}
	if h != Handle(m) {
		t.Error("ResolveHandle did not pass the handle through unchanged")
	}
}

func TestResolveHandle_LoaderError(t *testing.T) {
	loadErr := errors.New("no such file")
	load := func(string) (Handle, error) { return nil, loadErr }

	if _, err := ResolveHandle(load, "missing.mp3"); !errors.Is(err, loadErr) {
		t.Errorf("ResolveHandle error = %v, want %v", err, loadErr)
	}
}
