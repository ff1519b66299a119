package domain

import "fmt"

// Vec3 is an integer world coordinate (x, y, z).
type Vec3 [3]int

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) String() string {
	return fmt.Sprintf("[%d, %d, %d]", v[0], v[1], v[2])
}

// Region is an axis-aligned box given by its min and max corners, inclusive.
type Region [2]Vec3

func (r Region) Min() Vec3 { return r[0] }
func (r Region) Max() Vec3 { return r[1] }

// Width, Height and Depth are the inclusive extents along x, y and z.
func (r Region) Width() int  { return r[1][0] - r[0][0] + 1 }
func (r Region) Height() int { return r[1][1] - r[0][1] + 1 }
func (r Region) Depth() int  { return r[1][2] - r[0][2] + 1 }

// Contains reports whether p lies inside the region, bounds inclusive.
func (r Region) Contains(p Vec3) bool {
	return p[0] >= r[0][0] && p[0] <= r[1][0] &&
		p[1] >= r[0][1] && p[1] <= r[1][1] &&
		p[2] >= r[0][2] && p[2] <= r[1][2]
}

// Translate returns the region shifted by off.
func (r Region) Translate(off Vec3) Region {
	return Region{r[0].Add(off), r[1].Add(off)}
}

func (r Region) String() string {
	return fmt.Sprintf("%s to %s", r[0], r[1])
}
