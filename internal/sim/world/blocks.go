package world

import (
	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/logic/mathx"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

// ChunkCoords splits a world block coordinate into chunk and local parts.
// chunk*store.Length + local == v and 0 <= local < store.Length on every axis.
func ChunkCoords(x, y, z int) (chunk, local Vec3i) {
	chunk = Vec3i{
		X: mathx.FloorDiv(x, store.Length),
		Y: mathx.FloorDiv(y, store.Length),
		Z: mathx.FloorDiv(z, store.Length),
	}
	local = Vec3i{
		X: mathx.Mod(x, store.Length),
		Y: mathx.Mod(y, store.Length),
		Z: mathx.Mod(z, store.Length),
	}
	return chunk, local
}

// GetChunkAt returns the resident chunk at chunk coordinates, or nil.
func (w *World) GetChunkAt(cx, cy, cz int) *store.Chunk {
	return w.chunks.Get(cx, cy, cz)
}

func (w *World) ChunkExists(cx, cy, cz int) bool {
	return w.chunks.Get(cx, cy, cz) != nil
}

func (w *World) GetChunkAtBlock(x, y, z int) *store.Chunk {
	c, _ := ChunkCoords(x, y, z)
	return w.chunks.Get(c.X, c.Y, c.Z)
}

func (w *World) ChunkExistsAtBlock(x, y, z int) bool {
	return w.GetChunkAtBlock(x, y, z) != nil
}

// GetBlock reads a world block. Cells in chunks that are not resident read as AIR.
func (w *World) GetBlock(x, y, z int) catalogs.Block {
	c, l := ChunkCoords(x, y, z)
	ch := w.chunks.Get(c.X, c.Y, c.Z)
	if ch == nil {
		return catalogs.Air
	}
	return ch.Block(l.X, l.Y, l.Z)
}

// SetBlock writes a world block and runs block-update propagation from it.
// Writes into chunks that are not resident are dropped.
func (w *World) SetBlock(x, y, z int, b catalogs.Block) {
	from, ok := w.setBlockRaw(x, y, z, b)
	if !ok {
		return
	}
	w.audit("SET_BLOCK", Vec3i{X: x, Y: y, Z: z}, from, b)
	w.OnBlockUpdate(x, y, z)
}

// setBlockRaw writes without propagation. A chunk retired by eviction between
// lookup and write refuses it; the lookup is retried against the store.
func (w *World) setBlockRaw(x, y, z int, b catalogs.Block) (from catalogs.Block, ok bool) {
	c, l := ChunkCoords(x, y, z)
	for {
		ch := w.chunks.Get(c.X, c.Y, c.Z)
		if ch == nil {
			return catalogs.Air, false
		}
		if from, ok = ch.Exchange(l.X, l.Y, l.Z, b); ok {
			return from, true
		}
	}
}

func (w *World) audit(action string, pos Vec3i, from, to catalogs.Block) {
	if w.cfg.AuditLogger == nil {
		return
	}
	_ = w.cfg.AuditLogger.WriteAudit(AuditEntry{
		Tick:   w.tick.Load(),
		Action: action,
		Pos:    pos.ToArray(),
		From:   from.String(),
		To:     to.String(),
	})
}
