package domain

import "fmt"

// MissingSetupError rejects a spec without a setup.cleanup.region section.
type MissingSetupError struct {
	Test string
}

func (e *MissingSetupError) Error() string {
	return fmt.Sprintf("test %q missing required 'setup' section", e.Test)
}

// InvalidRegionError rejects a cleanup region whose min corner exceeds its max.
type InvalidRegionError struct {
	Test   string
	Region Region
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("test %q: invalid cleanup region, min must be <= max, got min=%s max=%s",
		e.Test, e.Region.Min(), e.Region.Max())
}

// RegionTooLargeError rejects a cleanup region exceeding the fixed maxima.
type RegionTooLargeError struct {
	Test string
	Axis string
	Size int
	Max  int
}

func (e *RegionTooLargeError) Error() string {
	return fmt.Sprintf("test %q: cleanup region %s %d exceeds maximum %d",
		e.Test, e.Axis, e.Size, e.Max)
}

// OutOfBoundsError rejects a timeline coordinate outside the cleanup region.
type OutOfBoundsError struct {
	Test   string
	Pos    Vec3
	Region Region
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("test %q: position %s is outside cleanup region %s",
		e.Test, e.Pos, e.Region)
}
