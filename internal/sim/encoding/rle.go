package encoding

import (
	"encoding/binary"
	"fmt"
)

// EncodeRuns run-length encodes palette indices as uvarint (index, run) pairs.
func EncodeRuns(ids []byte) []byte {
	out := make([]byte, 0, 64)
	var tmp [binary.MaxVarintLen64]byte

	for i := 0; i < len(ids); {
		b := ids[i]
		run := 1
		for i+run < len(ids) && ids[i+run] == b {
			run++
		}
		n := binary.PutUvarint(tmp[:], uint64(b))
		out = append(out, tmp[:n]...)
		n = binary.PutUvarint(tmp[:], uint64(run))
		out = append(out, tmp[:n]...)
		i += run
	}
	return out
}

// DecodeRuns expands EncodeRuns output. It fails rather than grow past limit cells.
func DecodeRuns(raw []byte, limit int) ([]byte, error) {
	out := make([]byte, 0, limit)
	for i := 0; i < len(raw); {
		b, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if b > 0xFF {
			return nil, fmt.Errorf("palette index too large: %d", b)
		}
		if run == 0 || run > uint64(limit-len(out)) {
			return nil, fmt.Errorf("run of %d overflows %d cells", run, limit)
		}
		for k := uint64(0); k < run; k++ {
			out = append(out, byte(b))
		}
	}
	return out, nil
}
