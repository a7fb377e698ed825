// Package storage provides the local cache store consulted before the network
// when acquiring the lexicon and its derived timelines supplement.
package storage

import (
	"context"
	"errors"
)

// Well-known cache keys. The store holds exactly these two entries.
const (
	KeyLexicon   = "lexicon"
	KeyTimelines = "timelines"
)

// ErrNotFound is returned by Get for a key with no cached value.
var ErrNotFound = errors.New("cache: key not found")

// CacheStore is a small key-value cache. It is an optional collaborator: the
// loader behaves identically when no store is configured, it just fetches.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
