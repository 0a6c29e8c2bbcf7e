package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ContentKey is the cache key derived from raw file content plus options.
type ContentKey Hash

// String returns the string representation
func (k ContentKey) String() string { return Hash(k).String() }

// Short returns a truncated key suitable for log lines.
func (k ContentKey) Short() string {
	s := string(k)
	if len(s) > 16 {
		return s[:16]
	}
	return s
}

// ComputeContentKey derives a deterministic key from file bytes and an
// options map. Options are serialized with sorted keys so logically equal
// requests hash identically.
func ComputeContentKey(content []byte, options map[string]interface{}) ContentKey {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var opts strings.Builder
	for _, key := range keys {
		opts.WriteString(key)
		opts.WriteString("=")
		if encoded, err := json.Marshal(options[key]); err == nil {
			opts.Write(encoded)
		} else {
			opts.WriteString(fmt.Sprintf("%v", options[key]))
		}
		opts.WriteString(";")
	}

	combined := NewHash(content).String() + opts.String()
	return ContentKey(NewHash([]byte(combined)))
}
