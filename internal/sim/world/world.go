package world

import (
	"log"
	"math"
	"sync"
	"sync/atomic"

	"voxelthing.ai/internal/persistence/coldstore"
	"voxelthing.ai/internal/sim/world/logic/mathx"
	"voxelthing.ai/internal/sim/world/logic/rates"
	"voxelthing.ai/internal/sim/world/terrain/gen"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

type Vec3i struct {
	X int
	Y int
	Z int
}

func (v Vec3i) ToArray() [3]int { return [3]int{v.X, v.Y, v.Z} }

func (v Vec3i) Add(o Vec3i) Vec3i { return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

// TickLogEntry summarizes one scheduling step. Seed and WorldType are
// enough to regenerate the world the log came from.
type TickLogEntry struct {
	Tick      uint64 `json:"tick"`
	Seed      int64  `json:"seed"`
	WorldType int    `json:"world_type"`
	Center    [3]int `json:"center"`
	Loaded    int    `json:"loaded"`
	Evicted   int    `json:"evicted"`
	Resident  int    `json:"resident"`
	Columns   int    `json:"columns"`
	Digest    string `json:"digest,omitempty"`
}

type AuditEntry struct {
	Tick   uint64 `json:"tick"`
	Action string `json:"action"` // SET_BLOCK or FLUID_FLOW
	Pos    [3]int `json:"pos"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// World owns the resident chunks of one voxel world and the terrain sampler
// that fills them. Reads and writes are safe from any goroutine; generation
// runs on a bounded pool.
type World struct {
	cfg    Config
	logger *log.Logger

	chunks *store.ChunkStore
	gen    *gen.Cache
	cold   coldstore.Store

	// Bounds concurrent terrain sampling.
	genSlots chan struct{}

	inflightMu sync.Mutex
	inflight   map[store.ChunkKey]*loadCall

	jobs      chan loadJob
	closed    chan struct{}
	workers   sync.WaitGroup
	closeOnce sync.Once

	// One propagation pass at a time.
	fluidMu sync.Mutex

	tick        atomic.Uint64
	partialTick atomic.Uint64 // math.Float64bits

	generated atomic.Int64
	restored  atomic.Int64
	spilled   atomic.Int64
	dropped   atomic.Int64
	staleCold atomic.Int64
	fluidCaps atomic.Int64

	statsMu sync.Mutex
	stats   *WorldStats
	warnMu  sync.Mutex
	warns   rates.Window
}

func New(cfg Config) *World {
	cfg.applyDefaults()
	w := &World{
		cfg:      cfg,
		logger:   cfg.Logger,
		chunks:   store.NewChunkStore(),
		gen:      gen.NewCache(cfg.Seed),
		cold:     cfg.ColdStore,
		genSlots: make(chan struct{}, cfg.WorldGenThreads),
		inflight: map[store.ChunkKey]*loadCall{},
		closed:   make(chan struct{}),
		stats:    NewWorldStats(100, 1200),
		warns:    rates.Window{Size: 200, Max: 10},
	}
	if cfg.EnableMultithreading {
		w.jobs = make(chan loadJob)
		for i := 0; i < cfg.ChunkLoadThreads; i++ {
			w.workers.Add(1)
			go w.loadWorker()
		}
	}
	return w
}

// Close stops the load pool. The cold store is left to its owner.
func (w *World) Close() {
	w.closeOnce.Do(func() {
		close(w.closed)
		w.workers.Wait()
	})
}

func (w *World) ID() string     { return w.cfg.ID }
func (w *World) Seed() int64    { return w.cfg.Seed }
func (w *World) WorldType() int { return w.cfg.WorldType }
func (w *World) CurrentTick() uint64 {
	return w.tick.Load()
}

// SetPartialTick records the render interpolation fraction in [0,1].
func (w *World) SetPartialTick(f float64) {
	w.partialTick.Store(math.Float64bits(mathx.Clamp(f, 0, 1)))
}

func (w *World) PartialTick() float64 {
	return math.Float64frombits(w.partialTick.Load())
}

// ScaleToTick interpolates between a previous and current value by the partial tick.
func (w *World) ScaleToTick(a, b float64) float64 {
	return mathx.Lerp(a, b, w.PartialTick())
}

// warnf logs through a tick window so a failing backend cannot flood the log.
func (w *World) warnf(format string, args ...any) {
	w.warnMu.Lock()
	ok, _ := w.warns.Allow(w.tick.Load())
	w.warnMu.Unlock()
	if ok {
		w.logger.Printf(format, args...)
	}
}
