package snapshot

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

// Header identifies the world a chunk was generated in. A chunk only
// restores into a world with the same id, seed and world type.
type Header struct {
	Version   int    `json:"version"`
	WorldID   string `json:"world_id"`
	Seed      int64  `json:"seed"`
	WorldType int    `json:"world_type"`
	CX        int    `json:"cx"`
	CY        int    `json:"cy"`
	CZ        int    `json:"cz"`
}

// ChunkV1 is the spill form of one chunk: the palette by block id and the
// run-length encoded palette index of every cell.
type ChunkV1 struct {
	Header Header `json:"header"`

	Bits    int      `json:"bits"`
	Palette []string `json:"palette"`
	Runs    []byte   `json:"runs"`
}

// EncodeChunk writes a JSON header line followed by a gob body, zstd-compressed.
func EncodeChunk(c ChunkV1) ([]byte, error) {
	if c.Header.Version == 0 {
		c.Header.Version = Version
	}
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriterSize(enc, 64*1024)
	hb, _ := json.Marshal(c.Header)
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := gob.NewEncoder(bw).Encode(&c); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeChunk(b []byte) (ChunkV1, error) {
	var c ChunkV1
	dec, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return c, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return c, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return c, fmt.Errorf("header: %w", err)
	}
	if h.Version != Version {
		return c, fmt.Errorf("unsupported chunk snapshot version %d", h.Version)
	}
	if err := gob.NewDecoder(br).Decode(&c); err != nil {
		return c, fmt.Errorf("gob decode: %w", err)
	}
	return c, nil
}
