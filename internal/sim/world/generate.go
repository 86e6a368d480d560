package world

import (
	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/logic/mathx"
	"voxelthing.ai/internal/sim/world/terrain/gen"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

const (
	snowLine   = 23
	snowBlend  = 18
	stoneDepth = 4
)

type loadCall struct {
	done chan struct{}
	ch   *store.Chunk
}

// LoadChunkAt materializes the chunk at chunk coordinates if it is not
// resident. It reports whether this call created it.
func (w *World) LoadChunkAt(cx, cy, cz int) bool {
	_, created := w.load(store.ChunkKey{CX: cx, CY: cy, CZ: cz})
	return created
}

// GetOrLoadChunkAt returns the resident chunk, materializing it first if needed.
func (w *World) GetOrLoadChunkAt(cx, cy, cz int) *store.Chunk {
	ch, _ := w.load(store.ChunkKey{CX: cx, CY: cy, CZ: cz})
	return ch
}

// load builds a chunk off to the side and publishes it in one insert.
// Concurrent loads of one key share a single build. An eviction in progress
// holds the key the same way; waiters load again once it is gone.
func (w *World) load(k store.ChunkKey) (*store.Chunk, bool) {
	for {
		if ch := w.chunks.Get(k.CX, k.CY, k.CZ); ch != nil {
			return ch, false
		}

		w.inflightMu.Lock()
		if ch := w.chunks.Get(k.CX, k.CY, k.CZ); ch != nil {
			w.inflightMu.Unlock()
			return ch, false
		}
		c, ok := w.inflight[k]
		if !ok {
			c = &loadCall{done: make(chan struct{})}
			w.inflight[k] = c
			w.inflightMu.Unlock()
			return w.build(k, c)
		}
		w.inflightMu.Unlock()
		<-c.done
		if c.ch != nil {
			return c.ch, false
		}
	}
}

func (w *World) build(k store.ChunkKey, c *loadCall) (*store.Chunk, bool) {
	ch := w.restore(k)
	if ch == nil {
		ch = w.generateChunk(k.CX, k.CY, k.CZ)
		w.generated.Add(1)
	}
	ch, created := w.chunks.Insert(ch)

	w.inflightMu.Lock()
	c.ch = ch
	delete(w.inflight, k)
	w.inflightMu.Unlock()
	close(c.done)
	return ch, created
}

func (w *World) generateChunk(cx, cy, cz int) *store.Chunk {
	w.genSlots <- struct{}{}
	defer func() { <-w.genSlots }()

	s := w.gen.Get(cx, cz)
	s.Lock()
	defer s.Unlock()
	s.Generate(w.cfg.WorldType)

	surfaceSeed := w.gen.Fields().Seeds.Surface
	ch := store.NewChunk(cx, cy, cz)
	for x := 0; x < store.Length; x++ {
		for z := 0; z < store.Length; z++ {
			height := s.Height(x, z)
			xx := cx*store.Length + x
			zz := cz*store.Length + z
			for y := 0; y < store.Length; y++ {
				yy := cy*store.Length + y
				if float64(yy) < height && s.Cave(x, yy, z) {
					continue
				}
				snow := mathx.Hash3(surfaceSeed, xx, yy, zz)&1 == 0
				if b := terrainBlock(yy, height, w.cfg.WorldType, snow); b != catalogs.Air {
					ch.SetBlock(x, y, z, b)
				}
			}
		}
	}
	ch.ResetDirty()
	return ch
}

func waterLevel(worldType int) int {
	if worldType == gen.TypeNormal {
		return 0
	}
	return 2
}

// terrainBlock applies the depth rules for a cell at world height yy under a
// column surface of height. snow decides the cells of the snow-line blend.
func terrainBlock(yy int, height float64, worldType int, snow bool) catalogs.Block {
	fy := float64(yy)
	water := waterLevel(worldType)
	switch {
	case fy < height-stoneDepth:
		return catalogs.Stone
	case fy < height-1 && yy < snowLine:
		if yy > snowBlend && snow {
			return catalogs.Snow
		}
		return catalogs.Dirt
	case fy < height && yy > water && yy < snowLine:
		if yy > snowBlend && snow {
			return catalogs.Snow
		}
		return catalogs.Grass
	case fy < height && yy < water:
		return catalogs.Sand
	case fy < height && yy >= snowLine:
		return catalogs.Snow
	case yy < water && worldType == gen.TypeNormal:
		return catalogs.Water
	}
	return catalogs.Air
}
