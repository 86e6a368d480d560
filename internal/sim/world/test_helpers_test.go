package world

import (
	"testing"

	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	if cfg.ID == "" {
		cfg.ID = "test"
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	w := New(cfg)
	t.Cleanup(w.Close)
	return w
}

// emptyChunk publishes an all-air chunk so tests control every block in it.
func emptyChunk(t *testing.T, w *World, cx, cy, cz int) *store.Chunk {
	t.Helper()
	ch, ok := w.chunks.Insert(store.NewChunk(cx, cy, cz))
	if !ok {
		t.Fatalf("chunk %d,%d,%d already resident", cx, cy, cz)
	}
	return ch
}

func mustBlock(t *testing.T, w *World, x, y, z int, want catalogs.Block) {
	t.Helper()
	if got := w.GetBlock(x, y, z); got != want {
		t.Fatalf("block at %d,%d,%d = %v want %v", x, y, z, got, want)
	}
}
