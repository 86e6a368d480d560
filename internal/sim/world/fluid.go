package world

import "voxelthing.ai/internal/sim/catalogs"

// OnBlockUpdate lets fluid at x,y,z flow into an empty cell below. Each fill
// re-checks the 3x3x3 cube around the cell that flowed. Work is a FIFO
// worklist; a cell already waiting in it is not queued twice, and a pass
// stops after FluidMaxSteps cells, leaving the rest unsettled.
func (w *World) OnBlockUpdate(x, y, z int) {
	w.fluidMu.Lock()
	defer w.fluidMu.Unlock()

	start := Vec3i{X: x, Y: y, Z: z}
	queue := []Vec3i{start}
	queued := map[Vec3i]struct{}{start: {}}

	steps := 0
	for len(queue) > 0 {
		if steps >= w.cfg.FluidMaxSteps {
			w.fluidCaps.Add(1)
			w.warnf("fluid update from %v stopped after %d steps, %d cells pending", start, steps, len(queue))
			return
		}
		p := queue[0]
		queue = queue[1:]
		delete(queued, p)
		steps++

		b := w.GetBlock(p.X, p.Y, p.Z)
		if !b.IsFluid() {
			continue
		}
		if w.GetBlock(p.X, p.Y-1, p.Z) != catalogs.Air {
			continue
		}
		from, ok := w.setBlockRaw(p.X, p.Y-1, p.Z, b)
		if !ok {
			continue
		}
		w.audit("FLUID_FLOW", Vec3i{X: p.X, Y: p.Y - 1, Z: p.Z}, from, b)

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					n := p.Add(Vec3i{X: dx, Y: dy, Z: dz})
					if _, ok := queued[n]; ok {
						continue
					}
					queued[n] = struct{}{}
					queue = append(queue, n)
				}
			}
		}
	}
}
