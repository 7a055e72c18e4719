package tui

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		from  State
		event Event
		want  State
	}{
		{StateMenu, EventKey1, StateStartNewSession},
		{StateMenu, EventKey2, StateSessionRunning},
		{StateMenu, EventKey3, StateExit},
		{StateMenu, EventOtherKey, StateMenu},
		{StateMenu, EventRunEnded, StateMenu},
		{StateStartNewSession, EventSessionCreated, StateMenu},
		{StateStartNewSession, EventSessionCancelled, StateMenu},
		{StateStartNewSession, EventKey3, StateStartNewSession},
		{StateSessionRunning, EventRunEnded, StateMenu},
		{StateSessionRunning, EventKey1, StateSessionRunning},
		{StateSessionRunning, EventSessionCreated, StateSessionRunning},
		{StateExit, EventKey1, StateExit},
		{StateExit, EventRunEnded, StateExit},
	}

	for _, tt := range tests {
		if got := Next(tt.from, tt.event); got != tt.want {
			t.Errorf("Next(%s, %d) = %s, want %s", tt.from, tt.event, got, tt.want)
		}
	}
}

func TestNextIsTotal(t *testing.T) {
	states := []State{StateMenu, StateStartNewSession, StateSessionRunning, StateExit}
	events := []Event{EventKey1, EventKey2, EventKey3, EventOtherKey, EventSessionCreated, EventSessionCancelled, EventRunEnded}

	for _, s := range states {
		for _, e := range events {
			got := Next(s, e)
			if got < StateMenu || got > StateExit {
				t.Errorf("Next(%s, %d) = %d, not a valid state", s, e, got)
			}
		}
	}
}

func TestKeyEvent(t *testing.T) {
	tests := map[string]Event{
		"1":     EventKey1,
		"2":     EventKey2,
		"3":     EventKey3,
		"4":     EventOtherKey,
		"q":     EventOtherKey,
		"enter": EventOtherKey,
	}
	for key, want := range tests {
		if got := KeyEvent(key); got != want {
			t.Errorf("KeyEvent(%q) = %d, want %d", key, got, want)
		}
	}
}
