package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Face uint8

const (
	FaceNone Face = iota
	FaceDown
	FaceUp
	FaceNorth // -Z
	FaceSouth // +Z
	FaceWest  // -X
	FaceEast  // +X
)

var faceNames = [...]string{"NONE", "DOWN", "UP", "NORTH", "SOUTH", "WEST", "EAST"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "NONE"
}

// Normal is the outward unit normal of the face.
func (f Face) Normal() mgl64.Vec3 {
	switch f {
	case FaceDown:
		return mgl64.Vec3{0, -1, 0}
	case FaceUp:
		return mgl64.Vec3{0, 1, 0}
	case FaceNorth:
		return mgl64.Vec3{0, 0, -1}
	case FaceSouth:
		return mgl64.Vec3{0, 0, 1}
	case FaceWest:
		return mgl64.Vec3{-1, 0, 0}
	case FaceEast:
		return mgl64.Vec3{1, 0, 0}
	}
	return mgl64.Vec3{}
}

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// UnitBox is the full-cube collision box of the block cell at x,y,z.
func UnitBox(x, y, z int) AABB {
	min := mgl64.Vec3{float64(x), float64(y), float64(z)}
	return AABB{Min: min, Max: min.Add(mgl64.Vec3{1, 1, 1})}
}

func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(minX, maxX), math.Min(minY, maxY), math.Min(minZ, maxZ)},
		Max: mgl64.Vec3{math.Max(minX, maxX), math.Max(minY, maxY), math.Max(minZ, maxZ)},
	}
}

// Contains reports whether p lies inside the box, faces included.
func (b AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y() &&
		b.Min.Z() <= o.Max.Z() && b.Max.Z() >= o.Min.Z()
}

func (b AABB) Offset(d mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// ClosestFace returns the face nearest to p among the faces a ray travelling
// along dir could have entered through. A zero dir considers every face.
func (b AABB) ClosestFace(p, dir mgl64.Vec3) Face {
	best := FaceNone
	bestDist := math.Inf(1)
	for f := FaceDown; f <= FaceEast; f++ {
		n := f.Normal()
		if dir.LenSqr() > 0 && n.Dot(dir) >= 0 {
			continue
		}
		var d float64
		switch f {
		case FaceDown:
			d = p.Y() - b.Min.Y()
		case FaceUp:
			d = b.Max.Y() - p.Y()
		case FaceNorth:
			d = p.Z() - b.Min.Z()
		case FaceSouth:
			d = b.Max.Z() - p.Z()
		case FaceWest:
			d = p.X() - b.Min.X()
		case FaceEast:
			d = b.Max.X() - p.X()
		}
		d = math.Abs(d)
		if d < bestDist {
			best, bestDist = f, d
		}
	}
	return best
}
