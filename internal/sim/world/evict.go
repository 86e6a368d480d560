package world

import (
	"errors"
	"fmt"

	"voxelthing.ai/internal/persistence/coldstore"
	"voxelthing.ai/internal/persistence/snapshot"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

func (w *World) coldKey(k store.ChunkKey) coldstore.Key {
	return coldstore.Key{WorldID: w.cfg.ID, CX: k.CX, CY: k.CY, CZ: k.CZ}
}

func (w *World) snapshotHeader() snapshot.Header {
	return snapshot.Header{WorldID: w.cfg.ID, Seed: w.cfg.Seed, WorldType: w.cfg.WorldType}
}

// UnloadOutside drops resident chunks farther than radius chunks from the
// center. Chunks changed since they were generated or restored are spilled to
// the cold store first; clean chunks regenerate identically. It returns the
// number of chunks dropped.
func (w *World) UnloadOutside(cx, cy, cz, radius int) int {
	r2 := radius * radius
	n := 0
	for _, k := range w.chunks.LoadedChunkKeys() {
		dx, dy, dz := k.CX-cx, k.CY-cy, k.CZ-cz
		if dx*dx+dy*dy+dz*dz <= r2 {
			continue
		}
		if w.evict(k) {
			n++
		}
	}
	return n
}

// evict takes the key the way a load does, so no load can publish a fresh
// chunk while this one is on its way to the cold store.
func (w *World) evict(k store.ChunkKey) bool {
	w.inflightMu.Lock()
	if _, busy := w.inflight[k]; busy {
		w.inflightMu.Unlock()
		return false
	}
	ch := w.chunks.Delete(k)
	if ch == nil {
		w.inflightMu.Unlock()
		return false
	}
	c := &loadCall{done: make(chan struct{})}
	w.inflight[k] = c
	w.inflightMu.Unlock()

	kept := false
	if ch.Retire() {
		if err := w.spill(ch); err != nil {
			// Keep it resident rather than lose edits.
			ch.Revive()
			w.chunks.Insert(ch)
			kept = true
			w.warnf("evict chunk %v: %v", k, err)
		} else {
			w.spilled.Add(1)
		}
	}

	w.inflightMu.Lock()
	if kept {
		c.ch = ch
	}
	delete(w.inflight, k)
	w.inflightMu.Unlock()
	close(c.done)

	if kept {
		return false
	}
	w.dropped.Add(1)
	return true
}

func (w *World) spill(ch *store.Chunk) error {
	if w.cold == nil {
		return errors.New("no cold store for modified chunk")
	}
	blob, err := snapshot.EncodeChunk(store.ExportChunk(w.snapshotHeader(), ch))
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return w.cold.Put(w.coldKey(ch.Key()), blob)
}

// restore reads a spilled chunk back, or returns nil when there is none.
// An entry stays in the cold store after a restore: a restored chunk that is
// evicted clean relies on it. Entries that can never restore into this world
// (damaged, or written under another seed or world type) are deleted and the
// chunk is regenerated instead.
func (w *World) restore(k store.ChunkKey) *store.Chunk {
	if w.cold == nil {
		return nil
	}
	key := w.coldKey(k)
	blob, err := w.cold.Get(key)
	if errors.Is(err, coldstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		w.warnf("cold store read %v: %v", k, err)
		return nil
	}
	c, err := snapshot.DecodeChunk(blob)
	if err != nil {
		w.discardCold(key, fmt.Sprintf("decode: %v", err))
		return nil
	}
	h := c.Header
	if h.WorldID != w.cfg.ID || h.CX != k.CX || h.CY != k.CY || h.CZ != k.CZ {
		w.discardCold(key, fmt.Sprintf("entry belongs to %s/%d,%d,%d", h.WorldID, h.CX, h.CY, h.CZ))
		return nil
	}
	if h.Seed != w.cfg.Seed || h.WorldType != w.cfg.WorldType {
		w.discardCold(key, fmt.Sprintf("entry from seed %d type %d, world is seed %d type %d",
			h.Seed, h.WorldType, w.cfg.Seed, w.cfg.WorldType))
		return nil
	}
	ch, err := store.ImportChunk(c)
	if err != nil {
		w.discardCold(key, fmt.Sprintf("import: %v", err))
		return nil
	}
	w.restored.Add(1)
	return ch
}

func (w *World) discardCold(key coldstore.Key, why string) {
	w.staleCold.Add(1)
	if err := w.cold.Delete(key); err != nil {
		w.warnf("cold store %s: %s; delete failed: %v", key, why, err)
		return
	}
	w.warnf("cold store %s: %s; regenerating", key, why)
}
