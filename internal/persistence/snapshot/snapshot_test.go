package snapshot

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeChunk(t *testing.T) {
	runs := make([]byte, 4096)
	for i := range runs {
		runs[i] = byte(i % 7)
	}
	in := ChunkV1{
		Header:  Header{WorldID: "w1", Seed: -5, WorldType: 2, CX: -3, CY: 0, CZ: 7},
		Bits:    4,
		Palette: []string{"AIR", "STONE", "WATER"},
		Runs:    runs,
	}
	raw, err := EncodeChunk(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(raw) >= len(runs) {
		t.Fatalf("expected compression: %d bytes for %d run bytes", len(raw), len(runs))
	}

	out, err := DecodeChunk(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Header.Version != Version || out.Header.WorldID != "w1" || out.Header.CX != -3 || out.Header.CZ != 7 ||
		out.Header.Seed != -5 || out.Header.WorldType != 2 {
		t.Fatalf("header mismatch: %+v", out.Header)
	}
	if len(out.Palette) != 3 || out.Palette[2] != "WATER" {
		t.Fatalf("palette mismatch: %v", out.Palette)
	}
	if !bytes.Equal(out.Runs, runs) {
		t.Fatalf("runs mismatch")
	}
}

func TestDecodeChunkRejectsGarbage(t *testing.T) {
	if _, err := DecodeChunk([]byte("not zstd")); err == nil {
		t.Fatalf("expected error")
	}
}
