package execution

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"flintmc/internal/config"
	"flintmc/internal/domain"
)

func schedulerSpec(name string, entries ...domain.TimelineEntry) *domain.TestSpec {
	return &domain.TestSpec{
		Name: name,
		Setup: &domain.Setup{Cleanup: domain.Cleanup{
			Region: domain.Region{{0, 0, 0}, {4, 4, 4}},
		}},
		Timeline: entries,
	}
}

func newTestScheduler(ch *fakeChannel, cfg *config.Config, in string) *Scheduler {
	exec := NewExecutor(ch, cfg, io.Discard)
	bp := NewBreakpointController(BreakConsole, strings.NewReader(in), ch, io.Discard)
	return NewScheduler(ch, cfg, exec, bp, io.Discard)
}

func TestSchedulerRun(t *testing.T) {
	t.Run("frames the tick loop with freeze and unfreeze", func(t *testing.T) {
		ch := &fakeChannel{}
		s := newTestScheduler(ch, testConfig(), "")

		spec := schedulerSpec("lamp",
			domain.TimelineEntry{At: []int{0}, Action: domain.Place{Pos: domain.Vec3{1, 0, 1}, Block: "redstone_lamp"}},
			domain.TimelineEntry{At: []int{2}, Action: domain.Remove{Pos: domain.Vec3{1, 0, 1}}},
		)
		results, failures, err := s.Run(context.Background(), []*domain.TestSpec{spec})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(failures) != 0 {
			t.Fatalf("unexpected failures: %v", failures)
		}
		if len(results) != 1 || !results[0].Success {
			t.Fatalf("unexpected results: %+v", results)
		}

		// One test: offset is [-8, 0, -8].
		assertCommands(t, ch, []string{
			"fill -8 0 -8 -4 4 -4 air",
			"tick freeze",
			"setblock -7 0 -7 redstone_lamp",
			"tick step 1",
			"tick step 1",
			"setblock -7 0 -7 air",
			"tick unfreeze",
			"fill -8 0 -8 -4 4 -4 air",
		})
	})

	t.Run("interleaves tests in declaration order per tick", func(t *testing.T) {
		ch := &fakeChannel{}
		s := newTestScheduler(ch, testConfig(), "")

		a := schedulerSpec("first",
			domain.TimelineEntry{At: []int{0}, Action: domain.Place{Pos: domain.Vec3{0, 0, 0}, Block: "stone"}},
			domain.TimelineEntry{At: []int{1}, Action: domain.Place{Pos: domain.Vec3{1, 0, 0}, Block: "stone"}},
		)
		b := schedulerSpec("second",
			domain.TimelineEntry{At: []int{0}, Action: domain.Place{Pos: domain.Vec3{0, 0, 0}, Block: "dirt"}},
		)
		if _, _, err := s.Run(context.Background(), []*domain.TestSpec{a, b}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Two tests: offsets [-16, 0, -16] and [0, 0, -16].
		assertCommands(t, ch, []string{
			"fill -16 0 -16 -12 4 -12 air",
			"fill 0 0 -16 4 4 -12 air",
			"tick freeze",
			"setblock -16 0 -16 stone",
			"setblock 0 0 -16 dirt",
			"tick step 1",
			"setblock -15 0 -16 stone",
			"tick unfreeze",
			"fill -16 0 -16 -12 4 -12 air",
			"fill 0 0 -16 4 4 -12 air",
		})
	})

	t.Run("isolates assertion failures to the owning test", func(t *testing.T) {
		ch := &fakeChannel{}
		ch.blockFn = func(pos domain.Vec3) (string, bool, error) {
			// Everything reads as stone, so the oak_planks check fails.
			return "stone", true, nil
		}
		cfg := testConfig()
		cfg.PollAttempts = 1
		s := newTestScheduler(ch, cfg, "")

		a := schedulerSpec("flaky",
			domain.TimelineEntry{At: []int{0}, Action: domain.Assert{Checks: []domain.Check{
				{Pos: domain.Vec3{0, 0, 0}, Is: "oak_planks"},
			}}},
			domain.TimelineEntry{At: []int{1}, Action: domain.Assert{Checks: []domain.Check{
				{Pos: domain.Vec3{0, 0, 0}, Is: "stone"},
			}}},
		)
		b := schedulerSpec("solid",
			domain.TimelineEntry{At: []int{0}, Action: domain.Assert{Checks: []domain.Check{
				{Pos: domain.Vec3{1, 0, 1}, Is: "stone"},
			}}},
		)
		results, failures, err := s.Run(context.Background(), []*domain.TestSpec{a, b})
		if err != nil {
			t.Fatalf("a mismatch must not abort the run: %v", err)
		}

		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		f := failures[0]
		if f.TestName != "flaky" || f.Tick != 0 {
			t.Errorf("failure attributed to %s@%d", f.TestName, f.Tick)
		}
		if f.Expected != "oak_planks" || f.Observed != "stone" {
			t.Errorf("unexpected failure detail: %+v", f)
		}

		if results[0].Success || results[0].Failed != 1 || results[0].Passed != 1 {
			t.Errorf("flaky: %+v", results[0])
		}
		if !results[1].Success || results[1].Passed != 1 {
			t.Errorf("solid: %+v", results[1])
		}
	})

	t.Run("transport failures abort and unfreeze", func(t *testing.T) {
		boom := errors.New("connection reset")
		ch := &fakeChannel{}
		ch.blockFn = func(pos domain.Vec3) (string, bool, error) {
			return "", false, boom
		}
		s := newTestScheduler(ch, testConfig(), "")

		spec := schedulerSpec("doomed",
			domain.TimelineEntry{At: []int{0}, Action: domain.Assert{Checks: []domain.Check{
				{Pos: domain.Vec3{0, 0, 0}, Is: "stone"},
			}}},
		)
		_, _, err := s.Run(context.Background(), []*domain.TestSpec{spec})
		if !errors.Is(err, boom) {
			t.Fatalf("expected transport error, got %v", err)
		}
		cmds := ch.commands()
		if len(cmds) == 0 || cmds[len(cmds)-1] != "tick unfreeze" {
			t.Errorf("world left frozen, commands: %v", cmds)
		}
	})

	t.Run("cancellation stops the loop and unfreezes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ch := &fakeChannel{}
		s := newTestScheduler(ch, testConfig(), "")

		spec := schedulerSpec("interrupted",
			domain.TimelineEntry{At: []int{0}, Action: domain.Place{Pos: domain.Vec3{0, 0, 0}, Block: "stone"}},
		)
		_, _, err := s.Run(ctx, []*domain.TestSpec{spec})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		cmds := ch.commands()
		if cmds[len(cmds)-1] != "tick unfreeze" {
			t.Errorf("world left frozen, commands: %v", cmds)
		}
	})

	t.Run("breakpoint pauses and stepping re-pauses each tick", func(t *testing.T) {
		ch := &fakeChannel{}
		cfg := testConfig()
		// Step at tick 1, continue at tick 2; ticks 0 and 3 run through.
		s := newTestScheduler(ch, cfg, "s\n\n")

		spec := schedulerSpec("paced",
			domain.TimelineEntry{At: []int{3}, Action: domain.Place{Pos: domain.Vec3{0, 0, 0}, Block: "stone"}},
		)
		spec.Breakpoints = []int{1}

		var pauses strings.Builder
		s.bp = NewBreakpointController(BreakConsole, strings.NewReader("s\n\n"), ch, &pauses)

		results, _, err := s.Run(context.Background(), []*domain.TestSpec{spec})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !results[0].Success {
			t.Errorf("unexpected result: %+v", results[0])
		}
		if got := strings.Count(pauses.String(), "⏸"); got != 2 {
			t.Errorf("expected 2 pauses, got %d:\n%s", got, pauses.String())
		}
		if !strings.Contains(pauses.String(), "breakpoint at tick 1") {
			t.Errorf("missing breakpoint notice:\n%s", pauses.String())
		}
		if !strings.Contains(pauses.String(), "breakpoint at tick 2") {
			t.Errorf("step must pause again on the next tick:\n%s", pauses.String())
		}
	})

	t.Run("break after setup pauses before tick zero", func(t *testing.T) {
		ch := &fakeChannel{}
		cfg := testConfig()
		cfg.Flags.BreakAfterSetup = true
		s := newTestScheduler(ch, cfg, "\n")

		var pauses strings.Builder
		s.bp = NewBreakpointController(BreakConsole, strings.NewReader("\n"), ch, &pauses)

		spec := schedulerSpec("setup-check",
			domain.TimelineEntry{At: []int{0}, Action: domain.Place{Pos: domain.Vec3{0, 0, 0}, Block: "stone"}},
		)
		if _, _, err := s.Run(context.Background(), []*domain.TestSpec{spec}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(pauses.String(), "paused after setup") {
			t.Errorf("missing setup pause:\n%s", pauses.String())
		}
	})
}
