package application

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/observability"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

const (
	// DefaultMaxAttempts keeps the single-attempt behavior of the
	// remote protocol: one login call, no retry.
	DefaultMaxAttempts = 1

	DefaultRetryDelay = 100 * time.Millisecond
)

// Authenticator performs the login exchange for one account:
// normalizes the handle, digests the secret, and calls the remote
// login endpoint under a bounded retry budget. It never touches the
// session store; callers record the result via BeginAuth/CompleteAuth.
type Authenticator struct {
	gateway     ports.RewardGateway
	logger      observability.Logger
	countryCode string
	maxAttempts uint64
	retryDelay  time.Duration
}

func NewAuthenticator(gateway ports.RewardGateway, logger observability.Logger, countryCode string, maxAttempts int, retryDelay time.Duration) *Authenticator {
	if logger == nil {
		logger = observability.Nop{}
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	return &Authenticator{
		gateway:     gateway,
		logger:      logger,
		countryCode: countryCode,
		maxAttempts: uint64(maxAttempts),
		retryDelay:  retryDelay,
	}
}

// Authenticate exchanges the account's handle and secret for session
// credentials. Every failure class is retried identically until the
// attempt budget runs out; the remote protocol gives no reliable way
// to tell a transient failure from a terminal one, so the policy
// follows the endpoint's observed behavior.
// TODO: split transient from structural login failures once the
// remote rate-limit response code is documented.
func (a *Authenticator) Authenticate(ctx context.Context, account domain.Account) (domain.Credentials, error) {
	userName := domain.NormalizeHandle(account.Handle, a.countryCode)
	if userName == "" {
		return domain.Credentials{}, &domain.AuthError{Handle: account.Handle, Message: "invalid login handle"}
	}

	digest := md5.Sum([]byte(account.Secret))
	pwd := hex.EncodeToString(digest[:])

	attempt := 0
	var creds domain.Credentials

	backoff := retry.WithMaxRetries(a.maxAttempts-1, retry.NewConstant(a.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		got, loginErr := a.gateway.Login(ctx, userName, pwd)
		if loginErr != nil {
			a.logger.Warn(ctx, "login attempt failed",
				"handle", userName,
				"attempt", attempt,
				"max_attempts", a.maxAttempts,
				"error", loginErr.Error(),
			)
			return retry.RetryableError(loginErr)
		}

		creds = got
		return nil
	})
	if err != nil {
		return domain.Credentials{}, &domain.AuthError{Handle: userName, Message: err.Error(), Err: err}
	}

	a.logger.Info(ctx, "login succeeded", "handle", userName, "member_id", creds.MemberID)
	return creds, nil
}
