package gen

// caveCache keeps the most recently used cave density slabs, one per layer.
type caveCache struct {
	capacity int
	order    []int // most recent first
	slabs    map[int][]float64
}

func newCaveCache(capacity int) *caveCache {
	if capacity < 1 {
		capacity = 1
	}
	return &caveCache{
		capacity: capacity,
		slabs:    make(map[int][]float64, capacity),
	}
}

func (c *caveCache) get(layer int) ([]float64, bool) {
	slab, ok := c.slabs[layer]
	if ok {
		c.touch(layer)
	}
	return slab, ok
}

func (c *caveCache) put(layer int, slab []float64) {
	if _, ok := c.slabs[layer]; !ok && len(c.order) >= c.capacity {
		oldest := c.order[len(c.order)-1]
		c.order = c.order[:len(c.order)-1]
		delete(c.slabs, oldest)
	}
	c.slabs[layer] = slab
	c.touch(layer)
}

func (c *caveCache) touch(layer int) {
	for i, l := range c.order {
		if l == layer {
			copy(c.order[1:i+1], c.order[:i])
			c.order[0] = layer
			return
		}
	}
	c.order = append([]int{layer}, c.order...)
}

func (c *caveCache) len() int { return len(c.slabs) }
