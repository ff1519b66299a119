package execution

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"flintmc/internal/world"
)

// BreakMode selects where step/continue decisions come from.
type BreakMode string

const (
	// BreakConsole reads operator input from stdin.
	BreakConsole BreakMode = "console"
	// BreakChat reads step/continue tokens from in-game chat.
	BreakChat BreakMode = "chat"
)

// Chat tokens recognized in chat-relay mode. Other messages are ignored.
const (
	chatStepToken     = "!step"
	chatContinueToken = "!continue"
)

const chatPollInterval = 500 * time.Millisecond

// BreakpointController implements the interactive step/continue protocol.
// One input source is selected per run.
type BreakpointController struct {
	mode BreakMode
	in   *bufio.Scanner
	ch   world.Channel
	out  io.Writer
}

// NewBreakpointController creates a controller. in is only read in console
// mode, ch only in chat mode.
func NewBreakpointController(mode BreakMode, in io.Reader, ch world.Channel, out io.Writer) *BreakpointController {
	return &BreakpointController{
		mode: mode,
		in:   bufio.NewScanner(in),
		ch:   ch,
		out:  out,
	}
}

// Pause blocks until the operator decides how to proceed. It returns true
// to continue running until the next breakpoint tick, false to step a
// single tick and pause again.
func (b *BreakpointController) Pause(ctx context.Context, reason string) bool {
	fmt.Fprintf(b.out, "\n  %s %s\n", color.YellowString("⏸"), reason)
	if b.mode == BreakChat {
		return b.pauseChat(ctx)
	}
	return b.pauseConsole()
}

func (b *BreakpointController) pauseConsole() bool {
	fmt.Fprintf(b.out, "  [s]tep, anything else continues: ")
	if !b.in.Scan() {
		return true
	}
	switch strings.TrimSpace(strings.ToLower(b.in.Text())) {
	case "s", "step":
		return false
	default:
		return true
	}
}

func (b *BreakpointController) pauseChat(ctx context.Context) bool {
	// Drop messages that arrived before the pause.
	for {
		if _, ok := b.ch.RecvChat(0); !ok {
			break
		}
	}
	fmt.Fprintf(b.out, "  waiting for %s or %s in chat\n", chatStepToken, chatContinueToken)
	for {
		if ctx.Err() != nil {
			return true
		}
		msg, ok := b.ch.RecvChat(chatPollInterval)
		if !ok {
			continue
		}
		switch {
		case strings.Contains(msg, chatStepToken):
			return false
		case strings.Contains(msg, chatContinueToken):
			return true
		}
	}
}
