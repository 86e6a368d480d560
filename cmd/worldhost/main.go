package main

import (
	"context"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"voxelthing.ai/internal/persistence/coldstore"
	persistlog "voxelthing.ai/internal/persistence/log"
	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/tuning"
	"voxelthing.ai/internal/sim/world"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

func main() {
	var (
		worldID    = flag.String("world", "world_1", "world id")
		seed       = flag.Int64("seed", 0, "world seed (overrides tuning when non-zero)")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		ticks      = flag.Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
		walk       = flag.String("walk", "1,0,0", "viewer velocity in blocks per tick, as x,y,z")
		disableLog = flag.Bool("disable_log", false, "disable tick and audit logs")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[worldhost] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}
	if *seed != 0 {
		tune.Seed = *seed
	}
	if tune.Seed == 0 {
		tune.Seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}

	velocity, err := parseVec(*walk)
	if err != nil {
		logger.Fatalf("walk: %v", err)
	}

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	if err := os.MkdirAll(worldDir, 0o755); err != nil {
		logger.Fatalf("data dir: %v", err)
	}

	coldPath := tune.ColdStore.Path
	if coldPath != "" && !filepath.IsAbs(coldPath) {
		coldPath = filepath.Join(worldDir, filepath.Base(coldPath))
	}
	cold, err := coldstore.Open(tune.ColdStore.Backend, coldPath)
	if err != nil {
		logger.Fatalf("open cold store: %v", err)
	}
	defer cold.Close()

	cfg := world.Config{
		ID:                   *worldID,
		Seed:                 tune.Seed,
		WorldType:            tune.WorldType,
		WorldGenThreads:      tune.WorldGenThreads,
		ChunkLoadThreads:     tune.ChunkLoadThreads,
		EnableMultithreading: tune.EnableMultithreading,
		LoadRadius:           tune.LoadRadius,
		LoadBudget:           tune.LoadBudget,
		EvictRadius:          tune.EvictRadius,
		FluidMaxSteps:        tune.FluidMaxSteps,
		ColdStore:            cold,
		Logger:               logger,
	}
	if !*disableLog {
		tl := persistlog.NewTickLogger(worldDir)
		defer tl.Close()
		al := persistlog.NewAuditLogger(worldDir)
		defer al.Close()
		cfg.TickLogger = tl
		cfg.AuditLogger = al
	}

	w := world.New(cfg)
	defer w.Close()
	logger.Printf("world=%s seed=%d type=%d blocks=%d palette=%s cold=%s",
		w.ID(), w.Seed(), w.WorldType(), len(catalogs.Blocks()), catalogs.PaletteDigest()[:12], tune.ColdStore.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Second / time.Duration(tune.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pos [3]float64
	for n := 0; *ticks == 0 || n < *ticks; n++ {
		select {
		case <-ctx.Done():
			logger.Printf("shutdown: %v", ctx.Err())
			return
		case <-ticker.C:
		}

		center, _ := world.ChunkCoords(int(math.Floor(pos[0])), int(math.Floor(pos[1])), int(math.Floor(pos[2])))
		start := time.Now()
		e, err := w.Step(ctx, center)
		if err != nil {
			logger.Printf("step %d: %v", e.Tick, err)
			continue
		}
		if e.Loaded > 0 || e.Evicted > 0 {
			logger.Printf("tick=%d center=%v loaded=%d evicted=%d resident=%d took=%s",
				e.Tick, e.Center, e.Loaded, e.Evicted, e.Resident, time.Since(start).Round(time.Millisecond))
		}
		for i := range pos {
			pos[i] += velocity[i]
		}
	}
	st := w.Stats()
	logger.Printf("done: ticks=%d resident=%d generated=%d restored=%d spilled=%d chunk_edge=%d",
		st.Tick, st.Resident, st.Generated, st.Restored, st.Spilled, store.Length)
}
