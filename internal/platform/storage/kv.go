package storage

import (
	"context"
	"errors"
	"regexp"
)

var (
	ErrNotFound   = errors.New("storage key not found")
	ErrInvalidKey = errors.New("storage key must match [A-Za-z0-9_-]+")
)

// KV is the durable byte store behind every collection. Get returns
// ErrNotFound when the key was never written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
