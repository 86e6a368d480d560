package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/geom"
)

// RayStep is the march distance between raycast samples, in blocks.
const RayStep = 0.05

type RaycastResult struct {
	Pos      Vec3i
	Face     geom.Face
	Block    catalogs.Block
	Distance float64
}

// GetSurroundingCollision returns the collision box of every block cell the
// box touches. Air and fluids have no collision.
func (w *World) GetSurroundingCollision(box geom.AABB) []geom.AABB {
	minX := int(math.Floor(box.Min.X()))
	minY := int(math.Floor(box.Min.Y()))
	minZ := int(math.Floor(box.Min.Z()))
	maxX := int(math.Floor(box.Max.X() + 1))
	maxY := int(math.Floor(box.Max.Y() + 1))
	maxZ := int(math.Floor(box.Max.Z() + 1))

	var boxes []geom.AABB
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			for z := minZ; z < maxZ; z++ {
				b := w.GetBlock(x, y, z)
				if b.HasCollision() {
					boxes = append(boxes, b.CollisionBox(x, y, z))
				}
			}
		}
	}
	return boxes
}

// DoRaycast marches from origin along dir in RayStep increments until a
// sample lands inside a non-air block, or maxLength is covered. Thin features
// between samples can be skipped.
func (w *World) DoRaycast(origin, dir mgl64.Vec3, maxLength float64) (RaycastResult, bool) {
	if dir.LenSqr() == 0 || maxLength <= 0 {
		return RaycastResult{}, false
	}
	dir = dir.Normalize()
	step := dir.Mul(RayStep)

	pos := origin
	for dist := 0.0; dist < maxLength; dist += RayStep {
		x := int(math.Floor(pos.X()))
		y := int(math.Floor(pos.Y()))
		z := int(math.Floor(pos.Z()))
		if b := w.GetBlock(x, y, z); b != catalogs.Air {
			box := b.CollisionBox(x, y, z)
			if box.Contains(pos) {
				return RaycastResult{
					Pos:      Vec3i{X: x, Y: y, Z: z},
					Face:     box.ClosestFace(pos, dir),
					Block:    b,
					Distance: dist,
				}, true
			}
		}
		pos = pos.Add(step)
	}
	return RaycastResult{}, false
}
