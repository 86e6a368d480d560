package store

import (
	"voxelthing.ai/internal/sim/catalogs"
	"voxelthing.ai/internal/sim/world/logic/mathx"
)

// Storage is a palette-compressed block array for one chunk.
//
// Palette index 0 is always AIR. Set may outgrow the receiver's index width; it
// then returns a wider storage holding the same blocks, and the caller must
// replace its reference. Coordinates are local and must be in [0, Length).
type Storage interface {
	Get(x, y, z int) catalogs.Block
	Set(x, y, z int, b catalogs.Block) Storage
	Palette() []catalogs.Block
	Bits() int

	id(i int) int
}

func cellIndex(x, y, z int) int {
	return mathx.Index3D(x, y, z, Length)
}

func paletteIndex(pal []catalogs.Block, b catalogs.Block) int {
	for i, p := range pal {
		if p == b {
			return i
		}
	}
	return -1
}

func copyPalette(pal []catalogs.Block) []catalogs.Block {
	out := make([]catalogs.Block, len(pal))
	copy(out, pal)
	return out
}

// NibbleStorage packs two 4-bit palette indices per byte (at most 16 palette entries).
type NibbleStorage struct {
	pal  []catalogs.Block
	data [Volume / 2]byte
}

func NewNibbleStorage() *NibbleStorage {
	return &NibbleStorage{pal: []catalogs.Block{catalogs.Air}}
}

func (s *NibbleStorage) Bits() int { return 4 }

func (s *NibbleStorage) Palette() []catalogs.Block { return copyPalette(s.pal) }

func (s *NibbleStorage) id(i int) int {
	v := s.data[i>>1]
	if i&1 == 0 {
		return int(v&0xF0) >> 4
	}
	return int(v & 0x0F)
}

func (s *NibbleStorage) setID(i, id int) {
	hi := i >> 1
	if i&1 == 0 {
		s.data[hi] = byte(id&0xF)<<4 | s.data[hi]&0x0F
	} else {
		s.data[hi] = s.data[hi]&0xF0 | byte(id&0xF)
	}
}

func (s *NibbleStorage) Get(x, y, z int) catalogs.Block {
	return s.pal[s.id(cellIndex(x, y, z))]
}

func (s *NibbleStorage) Set(x, y, z int, b catalogs.Block) Storage {
	id := paletteIndex(s.pal, b)
	if id < 0 {
		if len(s.pal) >= 16 {
			return s.Expand().Set(x, y, z, b)
		}
		s.pal = append(s.pal, b)
		id = len(s.pal) - 1
	}
	s.setID(cellIndex(x, y, z), id)
	return s
}

// Expand copies every cell and the full palette into an 8-bit storage.
func (s *NibbleStorage) Expand() *ByteStorage {
	out := &ByteStorage{pal: copyPalette(s.pal)}
	for i := range out.data {
		out.data[i] = byte(s.id(i))
	}
	return out
}

// ByteStorage holds one 8-bit palette index per cell (at most 256 palette entries).
type ByteStorage struct {
	pal  []catalogs.Block
	data [Volume]byte
}

func (s *ByteStorage) Bits() int { return 8 }

func (s *ByteStorage) Palette() []catalogs.Block { return copyPalette(s.pal) }

func (s *ByteStorage) id(i int) int { return int(s.data[i]) }

func (s *ByteStorage) Get(x, y, z int) catalogs.Block {
	return s.pal[s.data[cellIndex(x, y, z)]]
}

func (s *ByteStorage) Set(x, y, z int, b catalogs.Block) Storage {
	id := paletteIndex(s.pal, b)
	if id < 0 {
		if len(s.pal) >= 256 {
			panic("store: byte storage palette overflow")
		}
		s.pal = append(s.pal, b)
		id = len(s.pal) - 1
	}
	s.data[cellIndex(x, y, z)] = byte(id)
	return s
}

// rawIndices returns one palette index per cell in cellIndex order.
func rawIndices(s Storage) []byte {
	out := make([]byte, Volume)
	for i := range out {
		out[i] = byte(s.id(i))
	}
	return out
}

// storageFrom rebuilds a storage from a palette and per-cell indices. The
// narrowest width that can index pal is used.
func storageFrom(pal []catalogs.Block, ids []byte) Storage {
	if len(pal) <= 16 {
		s := &NibbleStorage{pal: copyPalette(pal)}
		for i, id := range ids {
			s.setID(i, int(id))
		}
		return s
	}
	s := &ByteStorage{pal: copyPalette(pal)}
	copy(s.data[:], ids)
	return s
}
