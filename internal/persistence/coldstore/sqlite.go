package coldstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLite struct {
	db   *sql.DB
	once sync.Once
}

func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			world_id TEXT NOT NULL,
			cx INTEGER NOT NULL,
			cy INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			blob BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (world_id, cx, cy, cz)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Get(k Key) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT blob FROM chunks WHERE world_id=? AND cx=? AND cy=? AND cz=?`,
		k.WorldID, k.CX, k.CY, k.CZ,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("coldstore sqlite get %s: %w", k, err)
	}
	return blob, nil
}

func (s *SQLite) Put(k Key, blob []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO chunks(world_id, cx, cy, cz, blob, updated_at) VALUES(?,?,?,?,?,?)
		ON CONFLICT(world_id, cx, cy, cz) DO UPDATE SET blob=excluded.blob, updated_at=excluded.updated_at`,
		k.WorldID, k.CX, k.CY, k.CZ, blob, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("coldstore sqlite put %s: %w", k, err)
	}
	return nil
}

func (s *SQLite) Delete(k Key) error {
	_, err := s.db.Exec(
		`DELETE FROM chunks WHERE world_id=? AND cx=? AND cy=? AND cz=?`,
		k.WorldID, k.CX, k.CY, k.CZ,
	)
	if err != nil {
		return fmt.Errorf("coldstore sqlite delete %s: %w", k, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	var err error
	s.once.Do(func() { err = s.db.Close() })
	return err
}
