package store

import (
	"testing"

	snapv1 "voxelthing.ai/internal/persistence/snapshot"
	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/encoding"
)

func TestExportAndImportChunkRoundTrip(t *testing.T) {
	ch := NewChunk(1, -1, -2)
	ch.SetBlock(0, 0, 0, catalogs.Stone)
	ch.SetBlock(31, 31, 31, catalogs.Water)
	for i := 0; i < 20; i++ {
		ch.SetBlock(i, 5, 5, catalogs.Blocks()[i+1])
	}

	exported := ExportChunk(snapv1.Header{WorldID: "w1", Seed: 9, WorldType: 3, CX: 100}, ch)
	if exported.Header.CX != 1 || exported.Header.CY != -1 || exported.Header.CZ != -2 {
		t.Fatalf("unexpected header: %+v", exported.Header)
	}
	if exported.Header.WorldID != "w1" || exported.Header.Seed != 9 || exported.Header.WorldType != 3 {
		t.Fatalf("unexpected header: %+v", exported.Header)
	}
	if exported.Bits != 8 {
		t.Fatalf("bits=%d want 8", exported.Bits)
	}

	raw, err := snapv1.EncodeChunk(exported)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := snapv1.DecodeChunk(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := ImportChunk(decoded)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if got.Key() != ch.Key() {
		t.Fatalf("key mismatch: %+v vs %+v", got.Key(), ch.Key())
	}
	if got.Digest() != ch.Digest() {
		t.Fatalf("imported contents differ")
	}
	if got.Dirty() {
		t.Fatalf("imported chunk should be clean")
	}
}

func TestImportChunkRejectsInvalidShape(t *testing.T) {
	_, err := ImportChunk(snapv1.ChunkV1{
		Palette: []string{"AIR"},
		Runs:    encoding.EncodeRuns(make([]byte, 16)),
	})
	if err == nil {
		t.Fatalf("expected error for invalid chunk shape")
	}
	_, err = ImportChunk(snapv1.ChunkV1{
		Palette: []string{"AIR"},
		Runs:    encoding.EncodeRuns(append(make([]byte, Volume-1), 3)),
	})
	if err == nil {
		t.Fatalf("expected error for index outside palette")
	}
}

func TestImportChunkRejectsDuplicatePaletteEntries(t *testing.T) {
	ids := make([]byte, Volume)
	ids[0] = 1
	ids[1] = 2
	_, err := ImportChunk(snapv1.ChunkV1{
		Palette: []string{"AIR", "STONE", "STONE"},
		Runs:    encoding.EncodeRuns(ids),
	})
	if err == nil {
		t.Fatalf("expected error for repeated palette block")
	}
}

func TestChunkStoreInsertPublishesOnce(t *testing.T) {
	s := NewChunkStore()
	if s.Get(0, 0, 0) != nil {
		t.Fatalf("empty store returned a chunk")
	}
	a := NewChunk(0, 0, 0)
	a.SetBlock(0, 0, 0, catalogs.Stone)
	if got, ok := s.Insert(a); !ok || got != a {
		t.Fatalf("first insert should publish")
	}
	b := NewChunk(0, 0, 0)
	if got, ok := s.Insert(b); ok || got != a {
		t.Fatalf("second insert must keep the first chunk")
	}
	s.Create(-1, 0, 0)
	if s.Len() != 2 {
		t.Fatalf("len=%d want 2", s.Len())
	}
	keys := s.LoadedChunkKeys()
	if keys[0] != (ChunkKey{CX: -1}) {
		t.Fatalf("keys not sorted: %v", keys)
	}
	if s.Delete(ChunkKey{}) != a || s.Get(0, 0, 0) != nil {
		t.Fatalf("delete did not remove chunk")
	}
}
