package store

import (
	"fmt"

	snapv1 "voxelthing.ai/internal/persistence/snapshot"
	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/encoding"
)

// ExportChunk converts a chunk into its snapshot form. The world fields of h
// are kept; version and coordinates are filled from the chunk.
func ExportChunk(h snapv1.Header, ch *Chunk) snapv1.ChunkV1 {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	pal := ch.storage.Palette()
	names := make([]string, len(pal))
	for i, b := range pal {
		names[i] = b.String()
	}
	return snapv1.ChunkV1{
		Header: snapv1.Header{
			Version:   snapv1.Version,
			WorldID:   h.WorldID,
			Seed:      h.Seed,
			WorldType: h.WorldType,
			CX:        ch.CX,
			CY:        ch.CY,
			CZ:        ch.CZ,
		},
		Bits:    ch.storage.Bits(),
		Palette: names,
		Runs:    encoding.EncodeRuns(rawIndices(ch.storage)),
	}
}

// ImportChunk rebuilds a chunk from its snapshot form. The result is clean.
func ImportChunk(c snapv1.ChunkV1) (*Chunk, error) {
	ids, err := encoding.DecodeRuns(c.Runs, Volume)
	if err != nil {
		return nil, fmt.Errorf("snapshot chunk runs: %w", err)
	}
	if len(ids) != Volume {
		return nil, fmt.Errorf("snapshot chunk blocks length mismatch: got %d want %d", len(ids), Volume)
	}
	if len(c.Palette) == 0 || c.Palette[0] != catalogs.Air.String() {
		return nil, fmt.Errorf("snapshot chunk palette must start with %s", catalogs.Air)
	}
	if len(c.Palette) > 256 {
		return nil, fmt.Errorf("snapshot chunk palette too large: %d", len(c.Palette))
	}
	pal := make([]catalogs.Block, len(c.Palette))
	seen := make(map[catalogs.Block]struct{}, len(c.Palette))
	for i, id := range c.Palette {
		b, err := catalogs.Lookup(id)
		if err != nil {
			return nil, fmt.Errorf("snapshot chunk palette: %w", err)
		}
		if _, dup := seen[b]; dup {
			return nil, fmt.Errorf("snapshot chunk palette: duplicate %s at %d", id, i)
		}
		seen[b] = struct{}{}
		pal[i] = b
	}
	for i, id := range ids {
		if int(id) >= len(pal) {
			return nil, fmt.Errorf("snapshot chunk cell %d: index %d outside palette", i, id)
		}
	}
	return &Chunk{
		CX:      c.Header.CX,
		CY:      c.Header.CY,
		CZ:      c.Header.CZ,
		storage: storageFrom(pal, ids),
	}, nil
}
