package ports

import (
	"context"

	"github.com/avelezco/redbag-claimer/internal/domain"
)

// RewardGateway is the remote reward API seen from the core: one login
// exchange and one claim call. Implementations map transport-level
// auth failures on Claim to domain.ErrAuthExpired and business
// denials to *domain.RejectionError.
type RewardGateway interface {
	// Login exchanges a normalized handle and a password digest for
	// session credentials.
	Login(ctx context.Context, userName, passwordDigest string) (domain.Credentials, error)

	// Claim submits a code with the given credentials and returns the
	// remote success message.
	Claim(ctx context.Context, code string, creds domain.Credentials) (string, error)
}
