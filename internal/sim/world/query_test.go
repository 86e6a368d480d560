package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/geom"
)

func TestRaycastStraightDownHitsTopFace(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(3, 4, 5, catalogs.Stone)

	origin := mgl64.Vec3{3.5, 5.5, 5.5}
	res, ok := w.DoRaycast(origin, mgl64.Vec3{0, -1, 0}, 5.0)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if res.Pos != (Vec3i{X: 3, Y: 4, Z: 5}) {
		t.Fatalf("hit %+v want 3,4,5", res.Pos)
	}
	if res.Face != geom.FaceUp {
		t.Fatalf("face %v want UP", res.Face)
	}
	if res.Block != catalogs.Stone {
		t.Fatalf("block %v want STONE", res.Block)
	}
}

func TestRaycastMissesBeyondLength(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(3, 4, 5, catalogs.Stone)

	if _, ok := w.DoRaycast(mgl64.Vec3{3.5, 15.5, 5.5}, mgl64.Vec3{0, -1, 0}, 5.0); ok {
		t.Fatalf("block 10.5 away must not be hit with length 5")
	}
	if _, ok := w.DoRaycast(mgl64.Vec3{3.5, 5.5, 5.5}, mgl64.Vec3{}, 5.0); ok {
		t.Fatalf("zero direction must not hit")
	}
}

func TestRaycastSideApproach(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(8, 8, 8, catalogs.Bricks)

	res, ok := w.DoRaycast(mgl64.Vec3{4.5, 8.5, 8.5}, mgl64.Vec3{2, 0, 0}, 10)
	if !ok || res.Pos != (Vec3i{X: 8, Y: 8, Z: 8}) || res.Face != geom.FaceWest {
		t.Fatalf("got %+v ok=%v, want 8,8,8 WEST", res, ok)
	}
}

func TestSurroundingCollisionSkipsAirAndFluid(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(1, 1, 1, catalogs.Stone)
	w.SetBlock(2, 1, 1, catalogs.Water)
	w.SetBlock(1, 2, 1, catalogs.Glass)
	w.SetBlock(6, 6, 6, catalogs.Stone)

	box := geom.NewAABB(1.2, 1.2, 1.2, 2.5, 2.5, 1.8)
	boxes := w.GetSurroundingCollision(box)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes want 2: %+v", len(boxes), boxes)
	}
	want := map[geom.AABB]bool{geom.UnitBox(1, 1, 1): true, geom.UnitBox(1, 2, 1): true}
	for _, b := range boxes {
		if !want[b] {
			t.Fatalf("unexpected collision box %+v", b)
		}
	}
}
