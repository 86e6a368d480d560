package coldstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
)

type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens a store with leveldb compression off; blobs arrive compressed.
func OpenLevelDB(dir string) (*LevelDB, error) {
	if dir == "" {
		return nil, fmt.Errorf("empty leveldb dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(dir, &opt.Options{Compression: opt.NoCompression})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", dir, err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(k Key) ([]byte, error) {
	b, err := l.db.Get([]byte(k.String()), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("coldstore leveldb get %s: %w", k, err)
	}
	return b, nil
}

func (l *LevelDB) Put(k Key, blob []byte) error {
	if err := l.db.Put([]byte(k.String()), blob, nil); err != nil {
		return fmt.Errorf("coldstore leveldb put %s: %w", k, err)
	}
	return nil
}

func (l *LevelDB) Delete(k Key) error {
	if err := l.db.Delete([]byte(k.String()), nil); err != nil {
		return fmt.Errorf("coldstore leveldb delete %s: %w", k, err)
	}
	return nil
}

func (l *LevelDB) Close() error { return l.db.Close() }
