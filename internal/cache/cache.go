// Package cache memoizes repeated chat commands ahead of the pure
// façade. It is ambient infrastructure around the core, not state inside
// it: Compiler.Parse itself never reads or writes a Cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/archquery/archquery/pkg/archquery"
)

// Cache memoizes archquery.Result values keyed by the compiled input.
type Cache interface {
	Get(ctx context.Context, input string) (*archquery.Result, bool, error)
	Put(ctx context.Context, input string, result *archquery.Result) error
}

// Config holds common configuration shared by every Cache backend.
type Config struct {
	// TTL is how long a compiled result stays cached.
	TTL time.Duration
	// Prefix is prepended to every cache key.
	Prefix string
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		TTL:    5 * time.Minute,
		Prefix: "archquery:",
	}
}

// keyFor derives a cache key from the input string exactly as received;
// it is not trimmed, so inputs that differ only in surrounding whitespace
// get distinct keys. Using a digest rather than the raw string keeps keys
// a fixed, short length regardless of how close an input runs to the
// 4 KiB ceiling.
func keyFor(prefix, input string) string {
	sum := blake2b.Sum256([]byte(input))
	return prefix + string(sum[:])
}

func encode(result *archquery.Result) ([]byte, error) {
	return json.Marshal(result)
}

func decode(data []byte) (*archquery.Result, error) {
	var result archquery.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
