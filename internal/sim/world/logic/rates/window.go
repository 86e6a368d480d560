package rates

// Window is a fixed tick window allowing at most Max events per Size ticks.
// The zero Size or Max disables limiting.
type Window struct {
	Size uint64
	Max  int

	start uint64
	count int
}

// Allow counts one event at nowTick. When denied it also returns the ticks
// left until the window resets.
func (w *Window) Allow(nowTick uint64) (ok bool, cooldownTicks uint64) {
	if w.Size == 0 || w.Max <= 0 {
		return true, 0
	}
	if nowTick < w.start || nowTick-w.start >= w.Size {
		w.start = nowTick
		w.count = 0
	}
	w.count++
	if w.count <= w.Max {
		return true, 0
	}
	return false, (w.start + w.Size) - nowTick
}
