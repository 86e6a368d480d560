package gen

import (
	"math"
	"sync"

	"voxelthing.ai/internal/sim/world/logic/mathx"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

// World types. Type 3 folds every elevation signal by a secondary noise channel.
const (
	TypeNormal  = 1
	TypeAlt     = 2
	TypeChaotic = 3
)

const (
	lerpMapLength = (store.Length >> 2) + 1
	lerpMapSize   = lerpMapLength * lerpMapLength * lerpMapLength
	lerpShift     = store.SizePow2 - 3
	lerpMask      = (1 << lerpShift) - 1
	lerpDiv       = float64(int(1) << lerpShift)

	caveLayersCached = 3
)

// Seeds are the sub-seeds drawn in order from a world salt.
type Seeds struct {
	Base        int64
	Hill        int64
	Cliff       int64
	CliffHeight int64
	Cave        int64
	Surface     int64
	Spare       int64
	Secondary   int64
}

// DeriveSeeds draws the sub-seeds from a splitmix stream over salt.
func DeriveSeeds(salt int64) Seeds {
	sm := mathx.NewSplitMix(salt)
	return Seeds{
		Base:        sm.Next(),
		Hill:        sm.Next(),
		Cliff:       sm.Next(),
		CliffHeight: sm.Next(),
		Cave:        sm.Next(),
		Surface:     sm.Next(),
		Spare:       sm.Next(),
		Secondary:   sm.Next(),
	}
}

// Fields holds the noise sources for one salt. It is read-only after
// construction and shared by every column of a world.
type Fields struct {
	Seeds Seeds

	base        *Octaves
	hill        *Octaves
	cliff       *Octaves
	cliffHeight *Octaves
	secondary   *Octaves
	cave        *Octaves
}

func NewFields(salt int64) *Fields {
	s := DeriveSeeds(salt)
	return &Fields{
		Seeds:       s,
		base:        NewOctaves(s.Base, 4),
		hill:        NewOctaves(s.Hill, 3),
		cliff:       NewOctaves(s.Cliff, 2),
		cliffHeight: NewOctaves(s.CliffHeight, 1),
		secondary:   NewOctaves(s.Secondary, 2),
		cave:        NewOctaves(s.Cave, 4),
	}
}

// Sample is the generation state of one chunk column: its heightmap and a
// small cache of cave density slabs keyed by vertical layer.
//
// A Sample is not safe for concurrent use; hold Lock while generating from it.
type Sample struct {
	ChunkX, ChunkZ int

	mu        sync.Mutex
	fields    *Fields
	height    [store.Area]float64
	generated bool
	caves     *caveCache
}

// NewSample builds a fresh column sample from a salt.
func NewSample(salt int64, cx, cz int) *Sample {
	return NewFields(salt).Sample(cx, cz)
}

func (f *Fields) Sample(cx, cz int) *Sample {
	return &Sample{
		ChunkX: cx,
		ChunkZ: cz,
		fields: f,
		caves:  newCaveCache(caveLayersCached),
	}
}

func (s *Sample) Lock()   { s.mu.Lock() }
func (s *Sample) Unlock() { s.mu.Unlock() }

func (s *Sample) Generated() bool { return s.generated }

// Generate fills the heightmap once; later calls are no-ops.
func (s *Sample) Generate(worldType int) {
	if s.generated {
		return
	}
	s.generated = true

	const (
		baseScale       = 275.0
		baseHeightScale = 10.0

		hillScale          = 250.0
		hillHeightScale    = 16.0
		hillHeightScaleMod = 4.0
		hillThresholdMin   = -0.5
		hillThresholdMax   = 1.0

		cliffScale     = 250.0
		cliffThreshold = 0.5

		cliffHeightScale = 100.0
		cliffHeightMin   = 2.0
		cliffHeightMax   = 8.0
	)

	f := s.fields
	mod := 5.5
	exaggeration := 0.15
	if worldType == TypeNormal {
		mod = 2.5
		exaggeration = 0.08
	}

	for x := 0; x < store.Length; x++ {
		for z := 0; z < store.Length; z++ {
			xx := float64(s.ChunkX*store.Length + x)
			zz := float64(s.ChunkZ*store.Length + z)

			base := f.base.Noise2(xx/baseScale, zz/baseScale)
			hill := f.hill.Noise2(xx/hillScale, zz/hillScale)
			hill = 1.0 - math.Sin(mathx.Threshold(hill, hillThresholdMin, hillThresholdMax)*math.Pi/2.0)

			sec := f.secondary.Noise2(xx/baseScale, zz/baseScale)
			if worldType == TypeChaotic {
				base = mathx.FloorModF(base, sec)
				hill = mathx.FloorModF(hill, sec)
			}

			height := base*baseHeightScale*mathx.Lerp(mod, hillHeightScaleMod, hill) + hill*hillHeightScale

			cliff := f.cliff.Noise2(xx/cliffScale, zz/cliffScale)
			cliffHeight := f.cliffHeight.Noise2(xx/cliffHeightScale, zz/cliffHeightScale)
			cliffHeight = mathx.Lerp(cliffHeightMin, cliffHeightMax, cliffHeight/2.0+0.5) * (1.0 - hill*5.0)
			if worldType == TypeChaotic {
				// Existing chaotic worlds derive the cliff mask from the folded
				// cliff height; the folded cliff signal itself is discarded.
				cliff = mathx.FloorModF(cliffHeight, sec)
			}
			if cliff > cliffThreshold {
				height += cliffHeight
			}

			if height > 20 {
				height += math.Pow(math.Exp(height-20), exaggeration) - 1
			}
			s.height[x+z*store.Length] = height
		}
	}
}

// Height returns the memoized surface height for a local column.
func (s *Sample) Height(x, z int) float64 {
	return s.height[x+z*store.Length]
}

// Cave reports whether the cell at local x,z and world y is carved out.
func (s *Sample) Cave(x, y, z int) bool {
	const (
		cheeseMinDensity     = -1.0
		cheeseMaxDensity     = -0.3
		cheeseDensitySpread  = 100.0
		cheeseDensitySurface = -0.5
	)

	slab := s.caveSlab(y >> store.SizePow2)

	xx := x >> lerpShift
	yy := (y & store.Mask) >> lerpShift
	zz := z >> lerpShift
	at := func(dx, dy, dz int) float64 {
		return slab[mathx.Index3D(xx+dx, yy+dy, zz+dz, lerpMapLength)]
	}
	density := mathx.Trilinear(
		at(0, 0, 0), at(0, 0, 1), at(0, 1, 0), at(0, 1, 1),
		at(1, 0, 0), at(1, 0, 1), at(1, 1, 0), at(1, 1, 1),
		float64(x&lerpMask)/lerpDiv, float64(y&lerpMask)/lerpDiv, float64(z&lerpMask)/lerpDiv,
	)
	threshold := mathx.Clamp(-float64(y)/cheeseDensitySpread+cheeseDensitySurface, cheeseMinDensity, cheeseMaxDensity)
	return density < threshold
}

func (s *Sample) caveSlab(layer int) []float64 {
	if slab, ok := s.caves.get(layer); ok {
		return slab
	}

	const (
		cheeseScaleXZ = 100.0
		cheeseScaleY  = 50.0
	)
	slab := make([]float64, lerpMapSize)
	for x := 0; x < lerpMapLength; x++ {
		for y := 0; y < lerpMapLength; y++ {
			for z := 0; z < lerpMapLength; z++ {
				xx := float64(x<<lerpShift + s.ChunkX<<store.SizePow2)
				yy := float64(y<<lerpShift + layer<<store.SizePow2)
				zz := float64(z<<lerpShift + s.ChunkZ<<store.SizePow2)
				slab[mathx.Index3D(x, y, z, lerpMapLength)] = s.fields.cave.Noise3(xx/cheeseScaleXZ, yy/cheeseScaleY, zz/cheeseScaleXZ)
			}
		}
	}
	s.caves.put(layer, slab)
	return slab
}
