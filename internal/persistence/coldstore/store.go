// Package coldstore holds chunks spilled out of residency. Values are opaque
// encoded chunk blobs; callers own the encoding.
package coldstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("coldstore: not found")

type Key struct {
	WorldID string
	CX      int
	CY      int
	CZ      int
}

func (k Key) String() string {
	var b strings.Builder
	b.WriteString(k.WorldID)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(k.CX))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(k.CY))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(k.CZ))
	return b.String()
}

type Store interface {
	// Get returns ErrNotFound when the key was never put or was deleted.
	Get(k Key) ([]byte, error)
	Put(k Key, blob []byte) error
	Delete(k Key) error
	Close() error
}

const (
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"
	BackendLevelDB = "leveldb"
)

// Open builds the named backend. path is ignored by the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendLevelDB:
		return OpenLevelDB(path)
	default:
		return nil, fmt.Errorf("coldstore: unknown backend %q", backend)
	}
}
