package gen

import "sync"

type ColumnKey struct {
	CX int
	CZ int
}

// Cache memoizes one Sample per chunk column for the life of a world, so
// vertically stacked chunks share their column's heightmap.
type Cache struct {
	fields *Fields

	mu      sync.Mutex
	samples map[ColumnKey]*Sample
}

func NewCache(salt int64) *Cache {
	return &Cache{
		fields:  NewFields(salt),
		samples: map[ColumnKey]*Sample{},
	}
}

// Get returns the column's sample, creating it on first request. The sample
// is not generated yet; callers lock it and call Generate.
func (c *Cache) Get(cx, cz int) *Sample {
	k := ColumnKey{CX: cx, CZ: cz}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.samples[k]
	if !ok {
		s = c.fields.Sample(cx, cz)
		c.samples[k] = s
	}
	return s
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

func (c *Cache) Fields() *Fields { return c.fields }
