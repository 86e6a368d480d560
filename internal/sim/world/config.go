package world

import (
	"io"
	"log"

	"github.com/google/uuid"

	"voxelthing.ai/internal/persistence/coldstore"
	"voxelthing.ai/internal/sim/world/terrain/gen"
)

type Config struct {
	ID        string
	Seed      int64
	WorldType int

	WorldGenThreads      int
	ChunkLoadThreads     int
	EnableMultithreading bool

	LoadRadius    int
	LoadBudget    int
	EvictRadius   int // 0 keeps every chunk resident
	FluidMaxSteps int

	// Optional. Dirty chunks are spilled here on eviction.
	ColdStore coldstore.Store

	// Optional loggers (may be nil). Implemented in internal/persistence/log.
	TickLogger  TickLogger
	AuditLogger AuditLogger

	Logger *log.Logger
}

const (
	DefaultLoadBudget    = 250
	DefaultFluidMaxSteps = 1 << 16
)

func (c *Config) applyDefaults() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.WorldType < gen.TypeNormal || c.WorldType > gen.TypeChaotic {
		c.WorldType = gen.TypeNormal
	}
	if c.WorldGenThreads <= 0 {
		c.WorldGenThreads = 1
	}
	if c.ChunkLoadThreads <= 0 {
		c.ChunkLoadThreads = 1
	}
	if c.LoadRadius < 0 {
		c.LoadRadius = 0
	}
	if c.LoadBudget <= 0 {
		c.LoadBudget = DefaultLoadBudget
	}
	if c.EvictRadius < 0 {
		c.EvictRadius = 0
	}
	if c.FluidMaxSteps <= 0 {
		c.FluidMaxSteps = DefaultFluidMaxSteps
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
}
