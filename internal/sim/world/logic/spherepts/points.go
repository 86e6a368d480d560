package spherepts

import (
	"sort"
	"sync"
)

type Offset struct {
	X int
	Y int
	Z int
}

func (o Offset) dist2() int { return o.X*o.X + o.Y*o.Y + o.Z*o.Z }

var (
	mu    sync.Mutex
	cache = map[int][]Offset{}
)

// Points returns every integer offset with magnitude <= radius, nearest first.
// Ties break by y, then z, then x, so the order is fixed for a given radius.
// The returned slice is shared; callers must not modify it.
func Points(radius int) []Offset {
	if radius < 0 {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	if pts, ok := cache[radius]; ok {
		return pts
	}

	r2 := radius * radius
	var pts []Offset
	for y := -radius; y <= radius; y++ {
		for z := -radius; z <= radius; z++ {
			for x := -radius; x <= radius; x++ {
				o := Offset{X: x, Y: y, Z: z}
				if o.dist2() <= r2 {
					pts = append(pts, o)
				}
			}
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		a, b := pts[i], pts[j]
		if da, db := a.dist2(), b.dist2(); da != db {
			return da < db
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	cache[radius] = pts
	return pts
}
