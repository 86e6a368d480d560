package spherepts

import "testing"

func TestPointsCoverSphereExactlyOnce(t *testing.T) {
	for r := 0; r <= 6; r++ {
		pts := Points(r)
		seen := map[Offset]bool{}
		for _, p := range pts {
			if p.dist2() > r*r {
				t.Fatalf("r=%d: %+v outside radius", r, p)
			}
			if seen[p] {
				t.Fatalf("r=%d: %+v repeated", r, p)
			}
			seen[p] = true
		}
		want := 0
		for x := -r; x <= r; x++ {
			for y := -r; y <= r; y++ {
				for z := -r; z <= r; z++ {
					if x*x+y*y+z*z <= r*r {
						want++
					}
				}
			}
		}
		if len(pts) != want {
			t.Fatalf("r=%d: got %d points want %d", r, len(pts), want)
		}
	}
}

func TestPointsOrderStable(t *testing.T) {
	a := append([]Offset(nil), Points(5)...)
	delete(cache, 5)
	b := Points(5)
	if len(a) != len(b) {
		t.Fatalf("len mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0] != (Offset{}) {
		t.Fatalf("origin must come first, got %+v", a[0])
	}
	for i := 1; i < len(a); i++ {
		if a[i].dist2() < a[i-1].dist2() {
			t.Fatalf("not nearest-first at %d", i)
		}
	}
}

func TestRadiusFourExceedsDefaultBudget(t *testing.T) {
	if n := len(Points(4)); n != 257 {
		t.Fatalf("radius 4: got %d points want 257", n)
	}
	if Points(-1) != nil {
		t.Fatalf("negative radius should yield nothing")
	}
}
