package store

import "sort"

// Get returns the published chunk, or nil. It never generates.
func (s *ChunkStore) Get(cx, cy, cz int) *Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks[ChunkKey{CX: cx, CY: cy, CZ: cz}]
}

// Create inserts a blank chunk and returns it. Callers check Get first;
// creating an existing key replaces it.
func (s *ChunkStore) Create(cx, cy, cz int) *Chunk {
	ch := NewChunk(cx, cy, cz)
	s.mu.Lock()
	s.chunks[ch.Key()] = ch
	s.mu.Unlock()
	return ch
}

// Insert publishes a fully built chunk. If another chunk already holds the key,
// that one is kept and returned with inserted=false.
func (s *ChunkStore) Insert(ch *Chunk) (out *Chunk, inserted bool) {
	k := ch.Key()
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.chunks[k]; ok {
		return existing, false
	}
	s.chunks[k] = ch
	return ch, true
}

// Delete removes and returns the chunk at k, or nil.
func (s *ChunkStore) Delete(k ChunkKey) *Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := s.chunks[k]
	delete(s.chunks, k)
	return ch
}

func (s *ChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	s.mu.RLock()
	keys := make([]ChunkKey, 0, len(s.chunks))
	for k := range s.chunks {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		if keys[i].CY != keys[j].CY {
			return keys[i].CY < keys[j].CY
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}
