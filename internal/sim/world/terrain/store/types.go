package store

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	"voxelthing.ai/internal/sim/catalogs"
)

const (
	SizePow2 = 5
	Length   = 1 << SizePow2 // chunk edge in blocks
	Mask     = Length - 1
	Area     = Length * Length
	Volume   = Area * Length
)

type ChunkKey struct {
	CX int
	CY int
	CZ int
}

// Chunk is a Length^3 cube of blocks. Its storage may be replaced by a wider
// one when the palette fills up; the lock covers that swap.
type Chunk struct {
	CX, CY, CZ int

	mu      sync.RWMutex
	storage Storage
	dirty   bool // modified since generation or import
	retired bool // removed from its store; writes are refused
}

// NewChunk returns an all-AIR chunk.
func NewChunk(cx, cy, cz int) *Chunk {
	return &Chunk{
		CX:      cx,
		CY:      cy,
		CZ:      cz,
		storage: NewNibbleStorage(),
	}
}

func (c *Chunk) Key() ChunkKey {
	return ChunkKey{CX: c.CX, CY: c.CY, CZ: c.CZ}
}

// Block reads a local coordinate.
func (c *Chunk) Block(x, y, z int) catalogs.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage.Get(x, y, z)
}

// SetBlock writes a local coordinate and marks the chunk dirty. It reports
// false when the chunk has been retired and the write was dropped.
func (c *Chunk) SetBlock(x, y, z int, b catalogs.Block) bool {
	_, ok := c.Exchange(x, y, z, b)
	return ok
}

// Exchange writes a local coordinate and returns the block it replaced.
func (c *Chunk) Exchange(x, y, z int, b catalogs.Block) (old catalogs.Block, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.retired {
		return catalogs.Air, false
	}
	old = c.storage.Get(x, y, z)
	if old == b {
		return old, true
	}
	c.storage = c.storage.Set(x, y, z, b)
	c.dirty = true
	return old, true
}

// Retire freezes the chunk's contents and reports whether it was dirty.
// Writes that arrive later fail, so their callers look the chunk up again.
func (c *Chunk) Retire() (dirty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retired = true
	return c.dirty
}

// Revive undoes Retire for a chunk that goes back into its store.
func (c *Chunk) Revive() {
	c.mu.Lock()
	c.retired = false
	c.mu.Unlock()
}

func (c *Chunk) Retired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retired
}

// Storage exposes the current backing storage (for width inspection and export).
func (c *Chunk) Storage() Storage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage
}

func (c *Chunk) Dirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// ResetDirty marks the current contents as the chunk's baseline.
func (c *Chunk) ResetDirty() {
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
}

// Digest hashes the resolved block of every cell, so two chunks with equal
// contents digest equally regardless of palette order or index width.
func (c *Chunk) Digest() [32]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := sha256.New()
	var tmp [2]byte
	pal := c.storage.Palette()
	for i := 0; i < Volume; i++ {
		b := pal[c.storage.id(i)]
		binary.LittleEndian.PutUint16(tmp[:], uint16(b))
		h.Write(tmp[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ChunkStore maps chunk keys to published chunks.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[ChunkKey]*Chunk
}

func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: map[ChunkKey]*Chunk{},
	}
}
