package toml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

// CredentialsEnvVar holds a JSON array of {username,password} pairs.
// It predates the TOML accounts file and is kept for deployments that
// inject the whole pool through one environment variable; when set it
// takes precedence over the file.
const CredentialsEnvVar = "CREDENTIALS_JSON"

type accountsFile struct {
	Accounts []accountSchema `toml:"accounts"`
}

type accountSchema struct {
	ID        string `toml:"id"`
	Handle    string `toml:"handle"`
	Secret    string `toml:"secret"`
	SecretRef string `toml:"secret_ref"`
}

type envCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountSource loads the ordered account pool from the accounts TOML
// file, resolving secret_ref entries through the secret store.
type AccountSource struct {
	path    string
	secrets ports.SecretStore
}

var _ ports.AccountSource = (*AccountSource)(nil)

func NewAccountSource(path string, secrets ports.SecretStore) *AccountSource {
	return &AccountSource{path: path, secrets: secrets}
}

func (s *AccountSource) Load(ctx context.Context) (domain.Pool, error) {
	if raw := os.Getenv(CredentialsEnvVar); raw != "" {
		return poolFromJSON(raw)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Pool{}, fmt.Errorf("no accounts configured: %s missing and %s unset", s.path, CredentialsEnvVar)
		}
		return domain.Pool{}, fmt.Errorf("read accounts file: %w", err)
	}

	var file accountsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Pool{}, fmt.Errorf("decode accounts file: %w", err)
	}

	members := make([]domain.Account, 0, len(file.Accounts))
	for i, entry := range file.Accounts {
		secret := entry.Secret
		if secret == "" && entry.SecretRef != "" {
			if s.secrets == nil {
				return domain.Pool{}, fmt.Errorf("account %d uses secret_ref but no secret store is configured", i+1)
			}
			resolved, err := s.secrets.Get(ctx, entry.SecretRef)
			if err != nil {
				return domain.Pool{}, fmt.Errorf("resolve secret for account %d: %w", i+1, err)
			}
			secret = resolved
		}

		id := entry.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		members = append(members, domain.Account{
			ID:     domain.AccountID(id),
			Handle: entry.Handle,
			Secret: secret,
		})
	}

	pool := domain.Pool{Members: members}
	if err := pool.Validate(); err != nil {
		return domain.Pool{}, err
	}

	return pool, nil
}

func poolFromJSON(raw string) (domain.Pool, error) {
	var entries []envCredential
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return domain.Pool{}, fmt.Errorf("parse %s: %w", CredentialsEnvVar, err)
	}

	members := make([]domain.Account, 0, len(entries))
	for i, entry := range entries {
		if entry.Username == "" || entry.Password == "" {
			// matches the original loader: malformed entries are
			// skipped, not fatal
			continue
		}
		members = append(members, domain.Account{
			ID:     domain.AccountID(strconv.Itoa(i + 1)),
			Handle: entry.Username,
			Secret: entry.Password,
		})
	}

	pool := domain.Pool{Members: members}
	if err := pool.Validate(); err != nil {
		return domain.Pool{}, err
	}

	return pool, nil
}
