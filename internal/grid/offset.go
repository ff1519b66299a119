// Package grid assigns each test a disjoint cell in the shared world so that
// concurrently scheduled tests never collide.
package grid

import (
	"math"

	"flintmc/internal/domain"
)

// CellSize is one grid cell edge: a 15-block test footprint plus 1 spacing.
const CellSize = 16

// OffsetFor returns the world-space translation for the test at index out of
// total tests. Tests are arranged in a ceil(sqrt(total)) square grid centered
// on the world origin. Deterministic: only index and total matter, so the
// caller's test ordering decides which test gets which cell.
func OffsetFor(index, total int) domain.Vec3 {
	if total < 1 {
		total = 1
	}
	side := int(math.Ceil(math.Sqrt(float64(total))))

	gx := index % side
	gz := index / side
	base := -(side * CellSize) / 2

	return domain.Vec3{base + gx*CellSize, 0, base + gz*CellSize}
}
