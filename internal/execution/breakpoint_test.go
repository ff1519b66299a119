package execution

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestBreakpointConsole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"s steps", "s\n", false},
		{"step steps", "step\n", false},
		{"case and whitespace ignored", "  S  \n", false},
		{"empty line continues", "\n", true},
		{"anything else continues", "go\n", true},
		{"closed input continues", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBreakpointController(BreakConsole, strings.NewReader(tt.input), nil, io.Discard)
			if got := b.Pause(context.Background(), "breakpoint at tick 1"); got != tt.want {
				t.Errorf("Pause() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBreakpointChat(t *testing.T) {
	t.Run("step token steps", func(t *testing.T) {
		ch := &fakeChannel{live: []string{"!step"}}
		b := NewBreakpointController(BreakChat, strings.NewReader(""), ch, io.Discard)
		if b.Pause(context.Background(), "breakpoint at tick 1") {
			t.Error("expected step")
		}
	})

	t.Run("continue token continues", func(t *testing.T) {
		ch := &fakeChannel{live: []string{"<player> !continue"}}
		b := NewBreakpointController(BreakChat, strings.NewReader(""), ch, io.Discard)
		if !b.Pause(context.Background(), "breakpoint at tick 1") {
			t.Error("expected continue")
		}
	})

	t.Run("ignores unrelated chatter", func(t *testing.T) {
		ch := &fakeChannel{live: []string{"hello", "looks good so far", "!step"}}
		b := NewBreakpointController(BreakChat, strings.NewReader(""), ch, io.Discard)
		if b.Pause(context.Background(), "breakpoint at tick 1") {
			t.Error("expected step after skipping chatter")
		}
	})

	t.Run("drops messages sent before the pause", func(t *testing.T) {
		ch := &fakeChannel{
			stale: []string{"!step"},
			live:  []string{"!continue"},
		}
		b := NewBreakpointController(BreakChat, strings.NewReader(""), ch, io.Discard)
		if !b.Pause(context.Background(), "breakpoint at tick 1") {
			t.Error("stale !step must not count")
		}
		if len(ch.stale) != 0 {
			t.Errorf("expected stale messages drained, %d left", len(ch.stale))
		}
	})

	t.Run("cancellation continues", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ch := &fakeChannel{}
		b := NewBreakpointController(BreakChat, strings.NewReader(""), ch, io.Discard)
		if !b.Pause(ctx, "breakpoint at tick 1") {
			t.Error("expected continue on cancellation")
		}
	})
}
