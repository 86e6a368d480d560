package world

import (
	"testing"

	"voxelthing.ai/internal/sim/catalogs"
)

func TestFluidFillsColumnBelow(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	// Floor under a three-cell shaft.
	w.SetBlock(4, 0, 4, catalogs.Stone)
	w.SetBlock(4, 4, 4, catalogs.Water)

	for y := 1; y <= 3; y++ {
		mustBlock(t, w, 4, y, 4, catalogs.Water)
	}
	mustBlock(t, w, 4, 0, 4, catalogs.Stone)
	mustBlock(t, w, 5, 3, 4, catalogs.Air)
}

func TestFluidStopsAtUnloadedChunk(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(4, 2, 4, catalogs.Water)
	for y := 0; y <= 2; y++ {
		mustBlock(t, w, 4, y, 4, catalogs.Water)
	}
	// y=-1 lives in an unloaded chunk.
	if w.ChunkExists(0, -1, 0) {
		t.Fatalf("fluid must not materialize chunks")
	}
}

func TestFluidStepCapLeavesPartialFill(t *testing.T) {
	w := newTestWorld(t, Config{FluidMaxSteps: 1})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(4, 0, 4, catalogs.Stone)
	w.SetBlock(4, 10, 4, catalogs.Water)

	mustBlock(t, w, 4, 9, 4, catalogs.Water)
	mustBlock(t, w, 4, 8, 4, catalogs.Air)
	if st := w.Stats(); st.FluidCaps != 1 {
		t.Fatalf("fluid caps %d want 1", st.FluidCaps)
	}
}

func TestNonFluidUpdateIsInert(t *testing.T) {
	w := newTestWorld(t, Config{})
	emptyChunk(t, w, 0, 0, 0)
	w.SetBlock(4, 10, 4, catalogs.Sand)
	mustBlock(t, w, 4, 9, 4, catalogs.Air)
}
