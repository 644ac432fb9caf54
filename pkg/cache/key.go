package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RenderKey derives a cache key from everything that determines a
// rendered document: the chart kind (squares, hex, multihex, map) and
// the inputs that feed the draw. Inputs are serialized to JSON before
// hashing, so any JSON-comparable values work.
//
// The key format is kind:hash, with the full SHA-256 to rule out
// collisions between near-identical renders.
func RenderKey(kind string, inputs ...any) string {
	data, _ := json.Marshal(inputs)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data, used to fingerprint grid files.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
