// Binary encoding for cached review results.
//
// Format v1 (little-endian):
//
//	version:   uint8
//	checkedAt: int64 (unix nanoseconds)
//	payload:   gob-encoded resultRecord
//
// Entries written with an unknown version are treated as cache misses by
// the store, so bumping the version invalidates old caches without a
// migration.
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/corey/reviewbot/internal/ports"
)

const (
	encodingVersion = 1
	headerSize      = 1 + 8
)

var errUnknownVersion = errors.New("unknown cache entry version")

// resultRecord is the gob payload. CheckedAt lives in the fixed header.
type resultRecord struct {
	ContentHash       string
	ConfigFingerprint string
	Issues            []lint.Issue
}

// encodeResult serializes a cached result.
func encodeResult(r *ports.CachedResult) ([]byte, error) {
	var buf bytes.Buffer
	header := make([]byte, headerSize)
	header[0] = encodingVersion
	binary.LittleEndian.PutUint64(header[1:], uint64(r.CheckedAt.UnixNano()))
	buf.Write(header)

	rec := resultRecord{
		ContentHash:       r.ContentHash,
		ConfigFingerprint: r.ConfigFingerprint,
		Issues:            r.Issues,
	}
	if err := gob.NewEncoder(&buf).Encode(&rec); err != nil {
		return nil, fmt.Errorf("gob encode result: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeResult parses bytes produced by encodeResult.
func decodeResult(data []byte) (*ports.CachedResult, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("cache entry truncated: %d bytes", len(data))
	}
	if data[0] != encodingVersion {
		return nil, fmt.Errorf("%w: %d", errUnknownVersion, data[0])
	}
	checkedAt := int64(binary.LittleEndian.Uint64(data[1:headerSize]))

	var rec resultRecord
	if err := gob.NewDecoder(bytes.NewReader(data[headerSize:])).Decode(&rec); err != nil {
		return nil, fmt.Errorf("gob decode result: %w", err)
	}
	return &ports.CachedResult{
		ContentHash:       rec.ContentHash,
		ConfigFingerprint: rec.ConfigFingerprint,
		Issues:            rec.Issues,
		CheckedAt:         time.Unix(0, checkedAt),
	}, nil
}
