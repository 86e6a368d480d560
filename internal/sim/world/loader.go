package world

import (
	"context"

	"voxelthing.ai/internal/sim/world/logic/spherepts"
	"voxelthing.ai/internal/sim/world/terrain/store"
)

type loadJob struct {
	key  store.ChunkKey
	done chan<- bool
}

func (w *World) loadWorker() {
	defer w.workers.Done()
	for {
		select {
		case <-w.closed:
			return
		case job := <-w.jobs:
			_, created := w.load(job.key)
			job.done <- created
		}
	}
}

// LoadSurroundingChunks materializes missing chunks within radius of the
// center chunk, nearest first, up to the load budget per call. The rest is
// left for later calls. It returns how many chunks this call created; ctx is
// checked between chunks.
func (w *World) LoadSurroundingChunks(ctx context.Context, cx, cy, cz, radius int) (int, error) {
	var todo []store.ChunkKey
	for _, p := range spherepts.Points(radius) {
		k := store.ChunkKey{CX: cx + p.X, CY: cy + p.Y, CZ: cz + p.Z}
		if w.chunks.Get(k.CX, k.CY, k.CZ) != nil {
			continue
		}
		todo = append(todo, k)
		if len(todo) >= w.cfg.LoadBudget {
			break
		}
	}
	if len(todo) == 0 {
		return 0, nil
	}

	if w.jobs == nil {
		n := 0
		for _, k := range todo {
			if err := ctx.Err(); err != nil {
				return n, err
			}
			if _, created := w.load(k); created {
				n++
			}
		}
		return n, nil
	}

	results := make(chan bool, len(todo))
	submitted := 0
submit:
	for _, k := range todo {
		select {
		case w.jobs <- loadJob{key: k, done: results}:
			submitted++
		case <-ctx.Done():
			break submit
		case <-w.closed:
			break submit
		}
	}
	n := 0
	for i := 0; i < submitted; i++ {
		if <-results {
			n++
		}
	}
	return n, ctx.Err()
}
