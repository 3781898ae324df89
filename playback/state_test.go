package playback

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateQueueEmpty, "queue empty"},
		{StateQueueLoaded, "queue loaded"},
		{StatePlaying, "playing"},
		{StateStopped, "stopped"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestState_IsLoaded(t *testing.T) {
	if StateQueueEmpty.IsLoaded() {
		t.Error("StateQueueEmpty.IsLoaded() = true")
	}
	for _, s := range []State{StateQueueLoaded, StatePlaying, StateStopped} {
		if !s.IsLoaded() {
			t.Errorf("%v.IsLoaded() = false", s)
		}
	}
}
