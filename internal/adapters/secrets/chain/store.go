// Package chain combines two secret stores: reads try the primary
// first and fall back to the secondary, writes go wherever accepts
// them first.
package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/avelezco/redbag-claimer/internal/adapters/secrets/env"
	filestore "github.com/avelezco/redbag-claimer/internal/adapters/secrets/file"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewEnvFirstWithFileFallback is the default chain: environment
// variables win, files under fileRoot fill the gaps.
func NewEnvFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(envstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	fallbackErr := s.fallback.Delete(ctx, key)

	if err != nil && !errors.Is(err, envstore.ErrReadOnly) {
		return fmt.Errorf("primary backend delete failed: %w", err)
	}
	if fallbackErr != nil {
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	}

	return nil
}
