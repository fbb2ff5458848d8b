// Package env resolves secret references against process environment
// variables. It is read-only: secrets are injected by the deployment,
// never written back.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/avelezco/redbag-claimer/internal/ports"
)

const keyPrefix = "RBCLAIM_SECRET_"

var ErrReadOnly = errors.New("env secret store is read-only")

type Store struct{}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store { return &Store{} }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := variableName(key)
	if err != nil {
		return "", err
	}

	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", fmt.Errorf("env secret %q (%s) not found", key, name)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return ErrReadOnly
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return ErrReadOnly
}

// variableName maps a secret reference to an environment variable:
// "acct-1/password" becomes "RBCLAIM_SECRET_ACCT_1_PASSWORD".
func variableName(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, trimmed)

	return keyPrefix + mapped, nil
}
