// Package timeline expands per-test timelines into a single tick-keyed
// schedule shared by every test in a run.
package timeline

import "flintmc/internal/domain"

// Slot is one (tick, value index) pair produced by expanding a timeline
// entry. ValueIndex selects the per-tick expected value for assertState
// entries with a tick list.
type Slot struct {
	Tick       int
	ValueIndex int
}

// ScheduledAction is the per-tick expansion of one timeline entry, tagged
// with the test it belongs to. Built once by Merge, consumed exactly once by
// the scheduler.
type ScheduledAction struct {
	TestIndex  int
	Tick       int
	Entry      *domain.TimelineEntry
	ValueIndex int
}

// Plan is the merged schedule for a whole run.
type Plan struct {
	// ByTick maps a tick to its due actions, ordered by ascending test
	// index, then declaration order within the test.
	ByTick map[int][]ScheduledAction
	// MaxTick is the highest tick across all tests.
	MaxTick int
	// Breakpoints is the union of every test's breakpoint ticks.
	Breakpoints map[int]bool
}

// Expand turns one entry's tick list into individually dispatchable slots,
// preserving list order: the i-th tick carries value index i.
func Expand(e *domain.TimelineEntry) []Slot {
	slots := make([]Slot, 0, len(e.At))
	for i, tick := range e.At {
		slots = append(slots, Slot{Tick: tick, ValueIndex: i})
	}
	return slots
}

// Merge combines every test's expanded timeline into one global plan.
func Merge(specs []*domain.TestSpec) *Plan {
	plan := &Plan{
		ByTick:      make(map[int][]ScheduledAction),
		Breakpoints: make(map[int]bool),
	}

	for testIndex, spec := range specs {
		for i := range spec.Timeline {
			entry := &spec.Timeline[i]
			for _, slot := range Expand(entry) {
				plan.ByTick[slot.Tick] = append(plan.ByTick[slot.Tick], ScheduledAction{
					TestIndex:  testIndex,
					Tick:       slot.Tick,
					Entry:      entry,
					ValueIndex: slot.ValueIndex,
				})
				if slot.Tick > plan.MaxTick {
					plan.MaxTick = slot.Tick
				}
			}
		}
		for _, tick := range spec.Breakpoints {
			plan.Breakpoints[tick] = true
		}
	}

	return plan
}
