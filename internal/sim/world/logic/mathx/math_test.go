package mathx

import "testing"

func TestFloorDivModAcrossChunkBoundary(t *testing.T) {
	const n = 32
	cases := []struct {
		x         int
		wantChunk int
		wantLocal int
	}{
		{x: -1, wantChunk: -1, wantLocal: 31},
		{x: -32, wantChunk: -1, wantLocal: 0},
		{x: -33, wantChunk: -2, wantLocal: 31},
		{x: 0, wantChunk: 0, wantLocal: 0},
		{x: 31, wantChunk: 0, wantLocal: 31},
		{x: 32, wantChunk: 1, wantLocal: 0},
	}
	for _, tc := range cases {
		c := FloorDiv(tc.x, n)
		l := Mod(tc.x, n)
		if c != tc.wantChunk || l != tc.wantLocal {
			t.Fatalf("x=%d: got chunk=%d local=%d want %d,%d", tc.x, c, l, tc.wantChunk, tc.wantLocal)
		}
		if c*n+l != tc.x || l < 0 || l >= n {
			t.Fatalf("x=%d: invariant broken: chunk=%d local=%d", tc.x, c, l)
		}
	}
	for x := -200; x <= 200; x++ {
		c, l := FloorDiv(x, n), Mod(x, n)
		if c*n+l != x || l < 0 || l >= n {
			t.Fatalf("x=%d: chunk=%d local=%d", x, c, l)
		}
	}
}

func TestSplitMixIsReproducible(t *testing.T) {
	a := NewSplitMix(42)
	b := NewSplitMix(42)
	seen := map[int64]bool{}
	for i := 0; i < 8; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d differs: %d vs %d", i, va, vb)
		}
		if seen[va] {
			t.Fatalf("draw %d repeats %d", i, va)
		}
		seen[va] = true
	}
}

func TestFloorModF(t *testing.T) {
	if got := FloorModF(-0.25, 1); got != 0.75 {
		t.Fatalf("FloorModF(-0.25,1)=%v want 0.75", got)
	}
	if got := FloorModF(0.3, 0); got != 0.3 {
		t.Fatalf("zero divisor should pass through, got %v", got)
	}
}

func TestTrilinearCorners(t *testing.T) {
	v := Trilinear(1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0)
	if v != 1 {
		t.Fatalf("origin corner=%v want 1", v)
	}
	v = Trilinear(1, 2, 3, 4, 5, 6, 7, 8, 1, 1, 1)
	if v != 8 {
		t.Fatalf("far corner=%v want 8", v)
	}
	v = Trilinear(0, 0, 0, 0, 1, 1, 1, 1, 0.5, 0.25, 0.75)
	if v != 0.5 {
		t.Fatalf("x blend=%v want 0.5", v)
	}
}
