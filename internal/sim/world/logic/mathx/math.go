package mathx

import "math"

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

// Mod is the floor modulo matching FloorDiv: FloorDiv(a,b)*b + Mod(a,b) == a.
func Mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// FloorModF is the float floor modulo. A zero divisor returns a unchanged.
func FloorModF(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) {
		return a
	}
	return a - math.Floor(a/b)*b
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Threshold maps v from [lo,hi] onto [0,1], clamping outside the range.
func Threshold(v, lo, hi float64) float64 {
	return Clamp((v-lo)/(hi-lo), 0, 1)
}

// Trilinear blends the eight corners of a unit cell. cXYZ names the corner offset per axis.
func Trilinear(c000, c001, c010, c011, c100, c101, c110, c111, tx, ty, tz float64) float64 {
	c00 := Lerp(c000, c100, tx)
	c01 := Lerp(c001, c101, tx)
	c10 := Lerp(c010, c110, tx)
	c11 := Lerp(c011, c111, tx)
	c0 := Lerp(c00, c10, ty)
	c1 := Lerp(c01, c11, ty)
	return Lerp(c0, c1, tz)
}

// Index3D flattens a cube coordinate, x fastest, then z, then y.
func Index3D(x, y, z, length int) int {
	return x + (z+y*length)*length
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// SplitMix is a splitmix64 stream. The zero value is a valid stream seeded with 0.
type SplitMix struct {
	state uint64
}

func NewSplitMix(seed int64) *SplitMix {
	return &SplitMix{state: uint64(seed)}
}

func (s *SplitMix) Next() int64 {
	s.state += 0x9e3779b97f4a7c15
	return int64(mix64(s.state))
}

func Hash3(seed int64, x, y, z int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	uz := uint64(uint32(int32(z)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xc2b2ae3d27d4eb4f) ^ (uz * 0xbf58476d1ce4e5b9)
	return mix64(v + 0x9e3779b97f4a7c15)
}
