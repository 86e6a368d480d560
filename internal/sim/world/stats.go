package world

type StatsBucket struct {
	Loaded  int `json:"loaded"`
	Evicted int `json:"evicted"`
	Steps   int `json:"steps"`
}

// WorldStats keeps per-bucket load/evict counts over a rolling tick window.
type WorldStats struct {
	bucketTicks uint64
	windowTicks uint64

	buckets []StatsBucket
	curIdx  int
	curBase uint64 // start tick (inclusive) of current bucket
}

func NewWorldStats(bucketTicks, windowTicks uint64) *WorldStats {
	if bucketTicks == 0 {
		bucketTicks = 100
	}
	if windowTicks < bucketTicks {
		windowTicks = bucketTicks
	}
	n := int(windowTicks / bucketTicks)
	return &WorldStats{
		bucketTicks: bucketTicks,
		windowTicks: uint64(n) * bucketTicks,
		buckets:     make([]StatsBucket, n),
	}
}

func (s *WorldStats) rotate(nowTick uint64) {
	if nowTick >= s.curBase+s.windowTicks+s.bucketTicks {
		// Idle longer than the whole window: start over.
		for i := range s.buckets {
			s.buckets[i] = StatsBucket{}
		}
		s.curIdx = 0
		s.curBase = nowTick - nowTick%s.bucketTicks
		return
	}
	for nowTick >= s.curBase+s.bucketTicks {
		s.curIdx = (s.curIdx + 1) % len(s.buckets)
		s.buckets[s.curIdx] = StatsBucket{}
		s.curBase += s.bucketTicks
	}
}

func (s *WorldStats) ObserveStep(nowTick uint64, loaded, evicted int) {
	if s == nil {
		return
	}
	s.rotate(nowTick)
	b := &s.buckets[s.curIdx]
	b.Loaded += loaded
	b.Evicted += evicted
	b.Steps++
}

// Summarize sums the buckets of the current window.
func (s *WorldStats) Summarize(nowTick uint64) StatsBucket {
	var out StatsBucket
	if s == nil {
		return out
	}
	s.rotate(nowTick)
	for _, b := range s.buckets {
		out.Loaded += b.Loaded
		out.Evicted += b.Evicted
		out.Steps += b.Steps
	}
	return out
}

// Stats is a point-in-time view of residency and lifetime counters.
type Stats struct {
	Tick     uint64 `json:"tick"`
	Resident int    `json:"resident"`
	Columns  int    `json:"columns"`

	Generated int64 `json:"generated"`
	Restored  int64 `json:"restored"`
	Spilled   int64 `json:"spilled"`
	Dropped   int64 `json:"dropped"`
	StaleCold int64 `json:"stale_cold"`
	FluidCaps int64 `json:"fluid_caps"`

	Window StatsBucket `json:"window"`
}

func (w *World) Stats() Stats {
	now := w.tick.Load()
	w.statsMu.Lock()
	window := w.stats.Summarize(now)
	w.statsMu.Unlock()
	return Stats{
		Tick:      now,
		Resident:  w.chunks.Len(),
		Columns:   w.gen.Len(),
		Generated: w.generated.Load(),
		Restored:  w.restored.Load(),
		Spilled:   w.spilled.Load(),
		Dropped:   w.dropped.Load(),
		StaleCold: w.staleCold.Load(),
		FluidCaps: w.fluidCaps.Load(),
		Window:    window,
	}
}
