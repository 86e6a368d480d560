package world

import (
	"context"
	"encoding/hex"
)

// Step runs one scheduling tick around a viewer's chunk: load the
// neighborhood, evict what fell out of range, and log the result.
func (w *World) Step(ctx context.Context, center Vec3i) (TickLogEntry, error) {
	tick := w.tick.Add(1)

	loaded, err := w.LoadSurroundingChunks(ctx, center.X, center.Y, center.Z, w.cfg.LoadRadius)
	evicted := 0
	if w.cfg.EvictRadius > 0 {
		evicted = w.UnloadOutside(center.X, center.Y, center.Z, w.cfg.EvictRadius)
	}

	w.statsMu.Lock()
	w.stats.ObserveStep(tick, loaded, evicted)
	w.statsMu.Unlock()

	entry := TickLogEntry{
		Tick:      tick,
		Seed:      w.cfg.Seed,
		WorldType: w.cfg.WorldType,
		Center:    center.ToArray(),
		Loaded:    loaded,
		Evicted:   evicted,
		Resident:  w.chunks.Len(),
		Columns:   w.gen.Len(),
	}
	if ch := w.chunks.Get(center.X, center.Y, center.Z); ch != nil {
		d := ch.Digest()
		entry.Digest = hex.EncodeToString(d[:])
	}
	if w.cfg.TickLogger != nil {
		_ = w.cfg.TickLogger.WriteTick(entry)
	}
	return entry, err
}
