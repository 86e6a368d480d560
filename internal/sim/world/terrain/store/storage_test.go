package store

import (
	"testing"

	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/logic/mathx"
)

func snapshotCells(ch *Chunk) []catalogs.Block {
	out := make([]catalogs.Block, 0, Volume)
	for y := 0; y < Length; y++ {
		for z := 0; z < Length; z++ {
			for x := 0; x < Length; x++ {
				out = append(out, ch.Block(x, y, z))
			}
		}
	}
	return out
}

func TestStorageRoundTripAcrossPromotion(t *testing.T) {
	ch := NewChunk(0, 0, 0)
	blocks := catalogs.Blocks()
	want := map[[3]int]catalogs.Block{}

	// Deterministic pseudo-random writes touching every catalog entry, several
	// times over, so the palette overflows the nibble width partway through.
	for i := 0; i < 4000; i++ {
		h := mathx.Hash3(99, i, i*7, i*13)
		x := int(h % Length)
		y := int((h >> 8) % Length)
		z := int((h >> 16) % Length)
		b := blocks[i%len(blocks)]
		ch.SetBlock(x, y, z, b)
		want[[3]int{x, y, z}] = b
	}
	for p, b := range want {
		if got := ch.Block(p[0], p[1], p[2]); got != b {
			t.Fatalf("cell %v: got %s want %s", p, got, b)
		}
	}
	if ch.Storage().Bits() != 8 {
		t.Fatalf("expected promotion to 8-bit after %d distinct blocks", len(blocks))
	}
}

func TestPromotionPreservesEveryCell(t *testing.T) {
	ch := NewChunk(1, 2, 3)
	// Fill with exactly 16 palette entries: AIR plus 15 others.
	for y := 0; y < Length; y++ {
		for z := 0; z < Length; z++ {
			for x := 0; x < Length; x++ {
				n := (x + y*3 + z*5) % 16
				if n == 0 {
					continue
				}
				ch.SetBlock(x, y, z, catalogs.Block(n))
			}
		}
	}
	if ch.Storage().Bits() != 4 {
		t.Fatalf("16 entries should still fit a nibble palette, got %d bits", ch.Storage().Bits())
	}
	before := snapshotCells(ch)
	digestBefore := ch.Digest()

	// The 17th distinct block forces promotion.
	ch.SetBlock(0, 0, 0, catalogs.Wool(15))
	if ch.Storage().Bits() != 8 {
		t.Fatalf("expected 8-bit storage after 17th block, got %d", ch.Storage().Bits())
	}
	after := snapshotCells(ch)
	for i := range before {
		if i == 0 {
			continue
		}
		if before[i] != after[i] {
			t.Fatalf("cell %d changed across promotion: %s -> %s", i, before[i], after[i])
		}
	}
	if after[0] != catalogs.Wool(15) {
		t.Fatalf("promoting write lost: got %s", after[0])
	}

	ch.SetBlock(0, 0, 0, before[0])
	if ch.Digest() != digestBefore {
		t.Fatalf("digest should only depend on resolved blocks")
	}
}

func TestNewChunkIsAir(t *testing.T) {
	ch := NewChunk(0, 0, 0)
	if ch.Block(0, 0, 0) != catalogs.Air || ch.Block(Length-1, Length-1, Length-1) != catalogs.Air {
		t.Fatalf("new chunk must be all AIR")
	}
	if ch.Dirty() {
		t.Fatalf("new chunk must be clean")
	}
	ch.SetBlock(1, 1, 1, catalogs.Stone)
	if !ch.Dirty() {
		t.Fatalf("write must mark dirty")
	}
	ch.ResetDirty()
	if ch.Dirty() {
		t.Fatalf("ResetDirty did not clear")
	}
}

func TestRetiredChunkRefusesWrites(t *testing.T) {
	ch := NewChunk(0, 0, 0)
	if old, ok := ch.Exchange(1, 2, 3, catalogs.Stone); !ok || old != catalogs.Air {
		t.Fatalf("exchange = %v,%v want AIR,true", old, ok)
	}
	if !ch.Retire() {
		t.Fatalf("retire should report the chunk dirty")
	}
	if ch.SetBlock(1, 2, 3, catalogs.Dirt) {
		t.Fatalf("retired chunk accepted a write")
	}
	if got := ch.Block(1, 2, 3); got != catalogs.Stone {
		t.Fatalf("retired chunk changed: %v", got)
	}
	ch.Revive()
	if !ch.SetBlock(1, 2, 3, catalogs.Dirt) || ch.Block(1, 2, 3) != catalogs.Dirt {
		t.Fatalf("revived chunk should accept writes")
	}
}
