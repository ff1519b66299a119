package execution

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"flintmc/internal/config"
	"flintmc/internal/domain"
	"flintmc/internal/timeline"
	"flintmc/internal/world"
)

// MismatchError is an assertion failure: expected and observed disagree
// after the retry budget. Recoverable, scoped to the owning test.
type MismatchError struct {
	Pos      domain.Vec3
	Property string
	Expected string
	Observed string
}

func (e *MismatchError) Error() string {
	got := e.Observed
	if got == "" {
		got = "<none>"
	}
	if e.Property != "" {
		return fmt.Sprintf("block at %s state %s is not %s (got %s)", e.Pos, e.Property, e.Expected, got)
	}
	return fmt.Sprintf("block at %s is not %s (got %s)", e.Pos, e.Expected, got)
}

// Executor maps scheduled actions to world-control calls. Every position is
// offset-corrected before touching the world.
type Executor struct {
	ch           world.Channel
	out          io.Writer
	pollAttempts int
	pollInterval time.Duration
	placeStagger time.Duration
}

// NewExecutor creates an Executor writing per-action lines to out.
func NewExecutor(ch world.Channel, cfg *config.Config, out io.Writer) *Executor {
	return &Executor{
		ch:           ch,
		out:          out,
		pollAttempts: cfg.PollAttempts,
		pollInterval: cfg.PollInterval,
		placeStagger: cfg.PlaceStagger,
	}
}

// Execute dispatches one scheduled action. asserted reports whether the
// action counts toward the owning test's assertion tally. A *MismatchError
// is recoverable; any other error is a transport failure, fatal to the run.
func (x *Executor) Execute(sa timeline.ScheduledAction, offset domain.Vec3) (asserted bool, err error) {
	tick := sa.Tick
	switch a := sa.Entry.Action.(type) {
	case domain.Place:
		return false, x.setBlock(tick, a.Pos.Add(offset), a.Block)

	case domain.PlaceEach:
		for _, b := range a.Blocks {
			if err := x.setBlock(tick, b.Pos.Add(offset), b.Block); err != nil {
				return false, err
			}
			time.Sleep(x.placeStagger)
		}
		return false, nil

	case domain.Fill:
		r := a.Region.Translate(offset)
		cmd := fmt.Sprintf("fill %d %d %d %d %d %d %s",
			r[0][0], r[0][1], r[0][2], r[1][0], r[1][1], r[1][2], a.With)
		if err := x.ch.SendCommand(cmd); err != nil {
			return false, err
		}
		fmt.Fprintf(x.out, "    %s Tick %d: fill %s = %s\n",
			color.BlueString("→"), tick, r, color.HiBlackString(a.With))
		return false, nil

	case domain.Remove:
		pos := a.Pos.Add(offset)
		cmd := fmt.Sprintf("setblock %d %d %d air", pos[0], pos[1], pos[2])
		if err := x.ch.SendCommand(cmd); err != nil {
			return false, err
		}
		fmt.Fprintf(x.out, "    %s Tick %d: remove at %s\n", color.BlueString("→"), tick, pos)
		return false, nil

	case domain.Assert:
		for _, check := range a.Checks {
			pos := check.Pos.Add(offset)
			expected := check.Is
			observed, matched, err := pollUntil(x.pollAttempts, x.pollInterval, func() (string, bool, error) {
				v, ok, err := x.ch.GetBlock(pos)
				if err != nil {
					return "", false, err
				}
				if !ok {
					return "", false, nil
				}
				return v, blockMatches(expected, v), nil
			})
			if err != nil {
				return true, err
			}
			if !matched {
				return true, &MismatchError{Pos: pos, Expected: expected, Observed: observed}
			}
			fmt.Fprintf(x.out, "    %s Tick %d: assert block at %s is %s\n",
				color.GreenString("✓"), tick, pos, color.HiBlackString(expected))
		}
		return true, nil

	case domain.AssertState:
		pos := a.Pos.Add(offset)
		expected := a.Values[sa.ValueIndex]
		observed, matched, err := pollUntil(x.pollAttempts, x.pollInterval, func() (string, bool, error) {
			v, ok, err := x.ch.GetBlockStateProperty(pos, a.State)
			if err != nil {
				return "", false, err
			}
			if !ok {
				return "", false, nil
			}
			return v, strings.Contains(v, expected), nil
		})
		if err != nil {
			return true, err
		}
		if !matched {
			return true, &MismatchError{Pos: pos, Property: a.State, Expected: expected, Observed: observed}
		}
		fmt.Fprintf(x.out, "    %s Tick %d: assert block at %s state %s = %s\n",
			color.GreenString("✓"), tick, pos, color.HiBlackString(a.State), color.HiBlackString(expected))
		return true, nil

	default:
		return false, fmt.Errorf("unhandled action %q", sa.Entry.Action.Kind())
	}
}

func (x *Executor) setBlock(tick int, pos domain.Vec3, block string) error {
	cmd := fmt.Sprintf("setblock %d %d %d %s", pos[0], pos[1], pos[2], block)
	if err := x.ch.SendCommand(cmd); err != nil {
		return err
	}
	fmt.Fprintf(x.out, "    %s Tick %d: place at %s = %s\n",
		color.BlueString("→"), tick, pos, color.HiBlackString(block))
	return nil
}

// blockMatches compares a requested block identifier against the world's
// returned representation: strip an optional namespace, lower-case, and
// accept a substring match in either direction, with or without underscores.
func blockMatches(expected, observed string) bool {
	e := normalizeBlockID(expected)
	o := normalizeBlockID(observed)
	if e == "" || o == "" {
		return false
	}
	if strings.Contains(o, e) || strings.Contains(e, o) {
		return true
	}
	e = strings.ReplaceAll(e, "_", "")
	o = strings.ReplaceAll(o, "_", "")
	return strings.Contains(o, e) || strings.Contains(e, o)
}

func normalizeBlockID(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return strings.ToLower(s)
}
