package domain

// Maximum cleanup-region extents. A test footprint must fit one grid cell.
const (
	MaxWidth  = 15
	MaxHeight = 384
	MaxDepth  = 15
)

// TestSpec is one test's full declaration, parsed from a spec document and
// immutable after validation.
type TestSpec struct {
	FlintVersion string
	Name         string
	Description  string
	Tags         []string
	Dependencies []string
	Setup        *Setup
	Timeline     []TimelineEntry
	Breakpoints  []int
}

// Setup holds pre/post-run world preparation.
type Setup struct {
	Cleanup Cleanup
}

// Cleanup names the region cleared before and after the test runs.
type Cleanup struct {
	Region Region
}

// TimelineEntry binds one action to one or more ticks. At is already
// normalized to a list; a single-tick entry has exactly one element.
type TimelineEntry struct {
	At     []int
	Action Action
}

// MaxTick returns the highest tick referenced anywhere in the timeline.
func (s *TestSpec) MaxTick() int {
	max := 0
	for _, e := range s.Timeline {
		for _, t := range e.At {
			if t > max {
				max = t
			}
		}
	}
	return max
}

// CleanupRegion returns the cleanup region. Valid only after Validate has
// accepted the spec, which guarantees Setup is present.
func (s *TestSpec) CleanupRegion() Region {
	return s.Setup.Cleanup.Region
}

// Validate enforces the region invariants. The contract is strict: a spec
// without a setup.cleanup.region is rejected, so cleanup and containment
// checking always apply to accepted specs.
func (s *TestSpec) Validate() error {
	if s.Setup == nil {
		return &MissingSetupError{Test: s.Name}
	}

	region := s.Setup.Cleanup.Region
	min, max := region.Min(), region.Max()

	if min[0] > max[0] || min[1] > max[1] || min[2] > max[2] {
		return &InvalidRegionError{Test: s.Name, Region: region}
	}

	if w := region.Width(); w > MaxWidth {
		return &RegionTooLargeError{Test: s.Name, Axis: "width", Size: w, Max: MaxWidth}
	}
	if h := region.Height(); h > MaxHeight {
		return &RegionTooLargeError{Test: s.Name, Axis: "height", Size: h, Max: MaxHeight}
	}
	if d := region.Depth(); d > MaxDepth {
		return &RegionTooLargeError{Test: s.Name, Axis: "depth", Size: d, Max: MaxDepth}
	}

	for _, entry := range s.Timeline {
		for _, pos := range entry.Action.Positions() {
			if !region.Contains(pos) {
				return &OutOfBoundsError{Test: s.Name, Pos: pos, Region: region}
			}
		}
	}

	return nil
}
