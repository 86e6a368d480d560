package gen

import "voxelthing.ai/internal/sim/world/logic/mathx"

// Simplex noise after Ken Perlin's algorithm, with a seeded permutation table.
// Output is roughly in [-1, 1].

var grad3 = [12][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

type Simplex struct {
	perm [512]int
}

func NewSimplex(seed int64) *Simplex {
	s := &Simplex{}

	var p [256]int
	for i := range p {
		p[i] = i
	}
	sm := mathx.NewSplitMix(seed)
	for i := 255; i > 0; i-- {
		j := int(uint64(sm.Next()) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
	}
	return s
}

func (s *Simplex) Noise2(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	t := (x + y) * f2
	i := fastFloor(x + t)
	j := fastFloor(y + t)

	u := float64(i+j) * g2
	x0 := x - (float64(i) - u)
	y0 := y - (float64(j) - u)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := s.perm[ii+s.perm[jj]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1]] % 12
	gi2 := s.perm[ii+1+s.perm[jj+1]] % 12

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * dot2(grad3[gi0], x0, y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * dot2(grad3[gi1], x1, y1)
	}

	t2 := 0.5 - x2*x2 - y2*y2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * dot2(grad3[gi2], x2, y2)
	}

	return 70.0 * (n0 + n1 + n2)
}

func (s *Simplex) Noise3(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	t := (x + y + z) * f3
	i := fastFloor(x + t)
	j := fastFloor(y + t)
	k := fastFloor(z + t)

	u := float64(i+j+k) * g3
	x0 := x - (float64(i) - u)
	y0 := y - (float64(j) - u)
	z0 := z - (float64(k) - u)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		if y0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 1, 0
		} else if x0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 0, 1
		} else {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 1, 0, 1
		}
	} else {
		if y0 < z0 {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 0, 1, 1
		} else if x0 < z0 {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 0, 1, 1
		} else {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2.0*g3
	y2 := y0 - float64(j2) + 2.0*g3
	z2 := z0 - float64(k2) + 2.0*g3
	x3 := x0 - 1.0 + 3.0*g3
	y3 := y0 - 1.0 + 3.0*g3
	z3 := z0 - 1.0 + 3.0*g3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	gi0 := s.perm[ii+s.perm[jj+s.perm[kk]]] % 12
	gi1 := s.perm[ii+i1+s.perm[jj+j1+s.perm[kk+k1]]] % 12
	gi2 := s.perm[ii+i2+s.perm[jj+j2+s.perm[kk+k2]]] % 12
	gi3 := s.perm[ii+1+s.perm[jj+1+s.perm[kk+1]]] % 12

	var n0, n1, n2, n3 float64

	t0 := 0.6 - x0*x0 - y0*y0 - z0*z0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * dot3(grad3[gi0], x0, y0, z0)
	}

	t1 := 0.6 - x1*x1 - y1*y1 - z1*z1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * dot3(grad3[gi1], x1, y1, z1)
	}

	t2 := 0.6 - x2*x2 - y2*y2 - z2*z2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * dot3(grad3[gi2], x2, y2, z2)
	}

	t3 := 0.6 - x3*x3 - y3*y3 - z3*z3
	if t3 >= 0 {
		t3 *= t3
		n3 = t3 * t3 * dot3(grad3[gi3], x3, y3, z3)
	}

	return 32.0 * (n0 + n1 + n2 + n3)
}

// Octaves layers independently seeded simplex fields, doubling frequency and
// halving amplitude per octave. The sum is normalised back to roughly [-1, 1].
type Octaves struct {
	layers []*Simplex
}

func NewOctaves(seed int64, octaves int) *Octaves {
	o := &Octaves{layers: make([]*Simplex, octaves)}
	for i := range o.layers {
		o.layers[i] = NewSimplex(seed + int64(i))
	}
	return o
}

func (o *Octaves) Noise2(x, y float64) float64 {
	var total, maxVal float64
	frequency, amplitude := 1.0, 1.0
	for _, l := range o.layers {
		total += l.Noise2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= 0.5
		frequency *= 2.0
	}
	return total / maxVal
}

func (o *Octaves) Noise3(x, y, z float64) float64 {
	var total, maxVal float64
	frequency, amplitude := 1.0, 1.0
	for _, l := range o.layers {
		total += l.Noise3(x*frequency, y*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= 0.5
		frequency *= 2.0
	}
	return total / maxVal
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

func dot2(g [3]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}

func dot3(g [3]float64, x, y, z float64) float64 {
	return g[0]*x + g[1]*y + g[2]*z
}
