package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"flintmc/internal/config"
	"flintmc/internal/domain"
	"flintmc/internal/grid"
	"flintmc/internal/timeline"
	"flintmc/internal/ui"
	"flintmc/internal/world"
)

// Scheduler drives the merged tick loop: clear test areas, freeze the world
// clock, dispatch due actions tick by tick, then unfreeze and clear again.
// It is the only writer of simulation-clock state; every world call is
// serial.
type Scheduler struct {
	ch   world.Channel
	cfg  *config.Config
	exec *Executor
	bp   *BreakpointController
	out  io.Writer

	withProgress bool
}

// NewScheduler creates a Scheduler writing run output to out.
func NewScheduler(ch world.Channel, cfg *config.Config, exec *Executor, bp *BreakpointController, out io.Writer) *Scheduler {
	return &Scheduler{ch: ch, cfg: cfg, exec: exec, bp: bp, out: out}
}

// EnableProgress turns on the tick progress bar for Run.
func (s *Scheduler) EnableProgress() { s.withProgress = true }

// Run executes all specs against one shared world. Assertion mismatches are
// recorded against their owning test and execution continues; any
// world-control failure aborts the run. The world clock is unfrozen on every
// exit path, best effort.
func (s *Scheduler) Run(ctx context.Context, specs []*domain.TestSpec) ([]domain.RunResult, []domain.AssertionFailure, error) {
	total := len(specs)
	offsets := make([]domain.Vec3, total)
	for i := range specs {
		offsets[i] = grid.OffsetFor(i, total)
	}
	plan := timeline.Merge(specs)

	for i, spec := range specs {
		fmt.Fprintf(s.out, "%s %s %s\n", color.CyanString("Running:"), spec.Name,
			color.HiBlackString("(offset %s)", offsets[i]))
		if spec.Description != "" {
			fmt.Fprintf(s.out, "  %s\n", color.HiBlackString(spec.Description))
		}
	}
	fmt.Fprintf(s.out, "  Timeline: %d tick(s)\n\n", plan.MaxTick+1)

	passed := make([]int, total)
	failed := make([]int, total)
	var failures []domain.AssertionFailure

	fmt.Fprintf(s.out, "  %s Clearing test areas...\n", color.BlueString("→"))
	if err := s.clearAll(specs, offsets); err != nil {
		return nil, nil, err
	}
	time.Sleep(s.cfg.SettleSetup)

	if err := s.ch.SendCommand("tick freeze"); err != nil {
		return nil, nil, err
	}
	time.Sleep(s.cfg.SettleFreeze)

	// The world must never be left permanently paused, including on
	// failure exits.
	frozen := true
	defer func() {
		if frozen {
			_ = s.ch.SendCommand("tick unfreeze")
		}
	}()

	var progress *ui.ProgressBar
	if s.withProgress {
		progress = ui.NewProgressBar(plan.MaxTick + 1)
	}

	stepMode := false
	if s.cfg.Flags.BreakAfterSetup {
		stepMode = !s.bp.Pause(ctx, "paused after setup")
	}

	for tick := 0; tick <= plan.MaxTick; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		for _, sa := range plan.ByTick[tick] {
			asserted, err := s.exec.Execute(sa, offsets[sa.TestIndex])
			if err != nil {
				var mismatch *MismatchError
				if !errors.As(err, &mismatch) {
					return nil, nil, err
				}
				failed[sa.TestIndex]++
				failures = append(failures, domain.AssertionFailure{
					TestName: specs[sa.TestIndex].Name,
					Tick:     tick,
					Pos:      mismatch.Pos,
					Expected: mismatch.Expected,
					Observed: mismatch.Observed,
					Message:  mismatch.Error(),
				})
				fmt.Fprintf(s.out, "    %s Tick %d: %s\n",
					color.RedString("✗"), tick, color.RedString(mismatch.Error()))
				continue
			}
			if asserted {
				passed[sa.TestIndex]++
			}
		}

		if progress != nil {
			progress.Update(tick+1, sum(passed), sum(failed))
		}

		if plan.Breakpoints[tick] || stepMode {
			stepMode = !s.bp.Pause(ctx, fmt.Sprintf("breakpoint at tick %d", tick))
		}

		if tick < plan.MaxTick {
			if err := s.ch.SendCommand("tick step 1"); err != nil {
				return nil, nil, err
			}
			time.Sleep(s.cfg.SettleTick)
		}
	}

	if progress != nil {
		progress.Finish()
	}

	if err := s.ch.SendCommand("tick unfreeze"); err != nil {
		return nil, nil, err
	}
	frozen = false

	fmt.Fprintf(s.out, "\n  %s Cleaning up test areas...\n", color.BlueString("→"))
	if err := s.clearAll(specs, offsets); err != nil {
		return nil, nil, err
	}
	time.Sleep(s.cfg.SettleSetup)

	results := make([]domain.RunResult, total)
	for i, spec := range specs {
		results[i] = domain.RunResult{
			TestName: spec.Name,
			Passed:   passed[i],
			Failed:   failed[i],
			Success:  failed[i] == 0,
		}
	}
	return results, failures, nil
}

func (s *Scheduler) clearAll(specs []*domain.TestSpec, offsets []domain.Vec3) error {
	for i, spec := range specs {
		r := spec.CleanupRegion().Translate(offsets[i])
		cmd := fmt.Sprintf("fill %d %d %d %d %d %d air",
			r[0][0], r[0][1], r[0][2], r[1][0], r[1][1], r[1][2])
		if err := s.ch.SendCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

func sum(counts []int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
