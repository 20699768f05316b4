package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"corecrew/internal/platform/crypto"
	"corecrew/internal/platform/tracing"
)

// sealedPrefix marks values written while encryption at rest was enabled.
var sealedPrefix = []byte("ccx1:")

var (
	ErrSealed  = errors.New("stored value is encrypted but no data encryption key is configured")
	ErrCorrupt = errors.New("stored value could not be decoded")
)

type Observer interface {
	ObserveStore(collection, op, result string, duration time.Duration)
}

// Store serializes whole collections to JSON and writes them to a KV backend.
type Store struct {
	kv       KV
	cipher   *crypto.Service
	observer Observer
	logger   *slog.Logger
	tracer   trace.Tracer
}

type Option func(*Store)

func WithCipher(c *crypto.Service) Option {
	return func(s *Store) { s.cipher = c }
}

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, logger: slog.Default(), tracer: tracing.Tracer()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the value under key into dst. found is false when the key
// was never written. A value that cannot be decoded yields ErrCorrupt.
func (s *Store) Load(ctx context.Context, key string, dst any) (found bool, err error) {
	ctx, span := s.tracer.Start(ctx, "storage.load", trace.WithAttributes(attribute.String("storage.key", key)))
	start := time.Now()
	defer func() { s.finish(span, key, "load", start, err) }()

	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		span.SetAttributes(attribute.Bool("storage.found", false))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	plain, err := s.open(key, raw)
	if err != nil {
		return true, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(plain, dst); err != nil {
		return true, fmt.Errorf("load %s: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}

// Save overwrites the value under key with the JSON encoding of v.
func (s *Store) Save(ctx context.Context, key string, v any) (err error) {
	ctx, span := s.tracer.Start(ctx, "storage.save", trace.WithAttributes(attribute.String("storage.key", key)))
	start := time.Now()
	defer func() { s.finish(span, key, "save", start, err) }()

	plain, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	sealed, err := s.seal(key, plain)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, sealed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) seal(key string, plain []byte) ([]byte, error) {
	if !s.cipher.Configured() {
		return plain, nil
	}
	ciphertext, err := s.cipher.Seal(plain, key)
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), sealedPrefix...), ciphertext...), nil
}

// open accepts both sealed values and plaintext written before a key was set.
func (s *Store) open(key string, raw []byte) ([]byte, error) {
	if !bytes.HasPrefix(raw, sealedPrefix) {
		return raw, nil
	}
	if !s.cipher.Configured() {
		return nil, ErrSealed
	}
	return s.cipher.Open(raw[len(sealedPrefix):], key)
}

func (s *Store) finish(span trace.Span, key, op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if s.observer != nil {
		s.observer.ObserveStore(key, op, result, time.Since(start))
	}
}

// LoadOrSeed returns the stored value for key. When nothing is stored the
// seed is persisted and returned. Stored data that cannot be decoded is
// replaced by the seed and the loss is logged; any other failure is returned.
func LoadOrSeed[T any](ctx context.Context, s *Store, key string, seed func() T) (T, error) {
	var value T
	found, err := s.Load(ctx, key, &value)
	switch {
	case err == nil && found:
		return value, nil
	case err == nil:
		s.logger.Info("seeding collection", "collection", key)
	case errors.Is(err, ErrCorrupt):
		s.logger.Warn("stored collection unreadable, reseeding", "collection", key, "err", err)
	default:
		var zero T
		return zero, err
	}

	value = seed()
	if err := s.Save(ctx, key, value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}
