package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"voxelthing.ai/internal/sim/world/geom"
)

// Block is an index into the closed block catalog. Air is always 0.
type Block uint16

type BlockDef struct {
	ID    string `json:"id"`
	Solid bool   `json:"solid"`
	Fluid bool   `json:"fluid,omitempty"`
}

const (
	Air Block = iota
	Stone
	Grass
	Dirt
	Cobblestone
	Bricks
	Sand
	Snow
	Water
	Planks
	Log
	Leaves
	Glass
	Gravel
	woolStart
)

var woolColors = [...]string{
	"WHITE", "ORANGE", "MAGENTA", "LIGHT_BLUE", "YELLOW", "LIME", "PINK", "GRAY",
	"LIGHT_GRAY", "CYAN", "PURPLE", "BLUE", "BROWN", "GREEN", "RED", "BLACK",
}

var (
	defs    []BlockDef
	index   map[string]Block
	palette []string
	digest  string
)

func init() {
	defs = []BlockDef{
		Air:         {ID: "AIR"},
		Stone:       {ID: "STONE", Solid: true},
		Grass:       {ID: "GRASS", Solid: true},
		Dirt:        {ID: "DIRT", Solid: true},
		Cobblestone: {ID: "COBBLESTONE", Solid: true},
		Bricks:      {ID: "BRICKS", Solid: true},
		Sand:        {ID: "SAND", Solid: true},
		Snow:        {ID: "SNOW", Solid: true},
		Water:       {ID: "WATER", Fluid: true},
		Planks:      {ID: "PLANKS", Solid: true},
		Log:         {ID: "LOG", Solid: true},
		Leaves:      {ID: "LEAVES", Solid: true},
		Glass:       {ID: "GLASS", Solid: true},
		Gravel:      {ID: "GRAVEL", Solid: true},
	}
	for _, c := range woolColors {
		defs = append(defs, BlockDef{ID: c + "_WOOL", Solid: true})
	}

	index = make(map[string]Block, len(defs))
	palette = make([]string, len(defs))
	for i, d := range defs {
		index[d.ID] = Block(i)
		palette[i] = d.ID
	}
	palJSON, _ := json.Marshal(palette)
	digest = sha256Hex(palJSON)
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Wool returns the wool block for colour i (0..15).
func Wool(i int) Block {
	return woolStart + Block(i%len(woolColors))
}

// Def returns the block's definition. Unknown ids resolve to AIR.
func (b Block) Def() BlockDef {
	if int(b) >= len(defs) {
		return defs[Air]
	}
	return defs[b]
}

func (b Block) String() string { return b.Def().ID }

func (b Block) IsAir() bool { return b == Air }

func (b Block) IsFluid() bool { return b.Def().Fluid }

// HasCollision reports whether the block contributes a collision box.
// Fluids are never collidable.
func (b Block) HasCollision() bool { return b != Air && !b.IsFluid() }

// CollisionBox places the block's box at cell x,y,z. Every block is a full cube.
func (b Block) CollisionBox(x, y, z int) geom.AABB { return geom.UnitBox(x, y, z) }

// Lookup resolves a block id such as "STONE".
func Lookup(id string) (Block, error) {
	b, ok := index[id]
	if !ok {
		return Air, fmt.Errorf("unknown block id %q", id)
	}
	return b, nil
}

// Blocks returns every catalog entry in palette order, AIR first.
func Blocks() []Block {
	out := make([]Block, len(defs))
	for i := range defs {
		out[i] = Block(i)
	}
	return out
}

func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

func PaletteDigest() string { return digest }
