package world

import (
	"sync"
	"testing"

	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/terrain/gen"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

func TestLoadChunkAtDepthBanding(t *testing.T) {
	w := newTestWorld(t, Config{Seed: 1337, WorldType: gen.TypeNormal})
	if !w.LoadChunkAt(0, 0, 0) {
		t.Fatalf("first load should create the chunk")
	}
	if w.LoadChunkAt(0, 0, 0) {
		t.Fatalf("second load must be a no-op")
	}

	s := w.gen.Get(0, 0)
	checked := 0
	for x := 0; x < store.Length; x++ {
		for z := 0; z < store.Length; z++ {
			h := s.Height(x, z)
			if h <= 4 || s.Cave(x, 0, z) {
				continue
			}
			checked++
			if b := w.GetBlock(x, 0, z); b != catalogs.Stone {
				t.Fatalf("column %d,%d height %.2f: y=0 is %v, want STONE", x, z, h, b)
			}
		}
	}

	// One chunk down, local y=0 is world y=-32: stone under any surface above -28.
	w.LoadChunkAt(0, -1, 0)
	for x := 0; x < store.Length; x++ {
		for z := 0; z < store.Length; z++ {
			if s.Height(x, z) <= -28 || s.Cave(x, -32, z) {
				continue
			}
			checked++
			if b := w.GetBlock(x, -32, z); b != catalogs.Stone {
				t.Fatalf("column %d,%d: y=-32 is %v, want STONE", x, z, b)
			}
		}
	}
	if checked == 0 {
		t.Fatalf("no column exercised the depth rule")
	}
}

func TestTerrainBlockRules(t *testing.T) {
	cases := []struct {
		yy     int
		height float64
		wt     int
		snow   bool
		want   catalogs.Block
	}{
		{yy: 0, height: 10, wt: 1, want: catalogs.Stone},
		{yy: 7, height: 10, wt: 1, want: catalogs.Dirt},
		{yy: 9, height: 10, wt: 1, want: catalogs.Grass},
		{yy: 20, height: 22.5, wt: 1, snow: true, want: catalogs.Snow},
		{yy: 20, height: 22.5, wt: 1, snow: false, want: catalogs.Dirt},
		{yy: 21, height: 21.5, wt: 1, snow: true, want: catalogs.Snow},
		{yy: 21, height: 21.5, wt: 1, snow: false, want: catalogs.Grass},
		{yy: 30, height: 31, wt: 1, want: catalogs.Snow},
		{yy: 1, height: 1.5, wt: 2, want: catalogs.Sand},
		{yy: 1, height: 1.5, wt: 1, want: catalogs.Grass},
		{yy: -1, height: -3, wt: 1, want: catalogs.Water},
		{yy: -1, height: -3, wt: 2, want: catalogs.Air},
		{yy: 5, height: 3, wt: 1, want: catalogs.Air},
	}
	for _, c := range cases {
		if got := terrainBlock(c.yy, c.height, c.wt, c.snow); got != c.want {
			t.Fatalf("yy=%d h=%v type=%d snow=%v: got %v want %v", c.yy, c.height, c.wt, c.snow, got, c.want)
		}
	}
}

func TestGenerationDeterministicAcrossWorlds(t *testing.T) {
	for _, wt := range []int{gen.TypeNormal, gen.TypeAlt, gen.TypeChaotic} {
		a := newTestWorld(t, Config{Seed: 99, WorldType: wt})
		b := newTestWorld(t, Config{Seed: 99, WorldType: wt, EnableMultithreading: true, ChunkLoadThreads: 4, WorldGenThreads: 2})
		for _, k := range []store.ChunkKey{
			{CX: 0, CY: 0, CZ: 0},
			{CX: -1, CY: 0, CZ: 2},
			{CX: 3, CY: -1, CZ: -4},
			{CX: 0, CY: 1, CZ: 0},
		} {
			ca := a.GetOrLoadChunkAt(k.CX, k.CY, k.CZ)
			cb := b.GetOrLoadChunkAt(k.CX, k.CY, k.CZ)
			if ca.Digest() != cb.Digest() {
				t.Fatalf("type %d chunk %+v differs between worlds", wt, k)
			}
			if ca.Dirty() {
				t.Fatalf("freshly generated chunk must be clean")
			}
		}
	}
}

func TestConcurrentLoadsPublishOnce(t *testing.T) {
	w := newTestWorld(t, Config{WorldGenThreads: 4})
	var wg sync.WaitGroup
	created := make(chan bool, 16)
	chunks := make(chan *store.Chunk, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch, ok := w.load(store.ChunkKey{CX: 2, CY: 0, CZ: 2})
			created <- ok
			chunks <- ch
		}()
	}
	wg.Wait()
	close(created)
	close(chunks)

	n := 0
	for ok := range created {
		if ok {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("%d loads reported creating the chunk, want 1", n)
	}
	first := w.GetChunkAt(2, 0, 2)
	for ch := range chunks {
		if ch != first {
			t.Fatalf("loads returned different chunk instances")
		}
	}
	if st := w.Stats(); st.Generated != 1 {
		t.Fatalf("generated %d times, want 1", st.Generated)
	}
}
