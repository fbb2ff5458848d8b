package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/observability"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

// NoCredentialsMessage is the outcome message when every account was
// skipped or the pool produced no usable session at all.
const NoCredentialsMessage = "no valid credentials could claim the code"

// Orchestrator races one code across the account pool. Accounts are
// tried sequentially in declaration order, lazily authenticated, and
// the first success wins. A code is consumable exactly once, so the
// pool is never fanned out in parallel.
type Orchestrator struct {
	pool    domain.Pool
	store   *SessionStore
	auth    *Authenticator
	gateway ports.RewardGateway
	logger  observability.Logger
}

func NewOrchestrator(pool domain.Pool, store *SessionStore, auth *Authenticator, gateway ports.RewardGateway, logger observability.Logger) *Orchestrator {
	if logger == nil {
		logger = observability.Nop{}
	}

	return &Orchestrator{
		pool:    pool,
		store:   store,
		auth:    auth,
		gateway: gateway,
		logger:  logger,
	}
}

func (o *Orchestrator) Pool() domain.Pool { return o.pool }

func (o *Orchestrator) Store() *SessionStore { return o.store }

// ClaimCode tries every eligible account in pool order and stops at
// the first success. It is total: it always returns an outcome and
// never an error. Accounts inside their login cooldown are skipped
// without any network call.
func (o *Orchestrator) ClaimCode(ctx context.Context, code string) domain.ClaimOutcome {
	log := o.logger.With("flow_id", uuid.NewString(), "code", code)
	log.Info(ctx, "claim started", "pool_size", len(o.pool.Members))

	outcome := domain.ClaimOutcome{Message: NoCredentialsMessage}

	for _, account := range o.pool.Members {
		if o.store.InCooldown(account.ID) {
			log.Info(ctx, "account skipped, cooling down after failed login", "account", account.ID)
			continue
		}

		result := o.tryClaim(ctx, log, code, account)
		if result.Succeeded {
			log.Info(ctx, "claim succeeded", "account", result.ClaimedBy, "message", result.Message)
			return result
		}

		log.Warn(ctx, "claim attempt failed", "account", account.ID, "message", result.Message)
		outcome.Message = result.Message
	}

	log.Warn(ctx, "pool exhausted without success", "message", outcome.Message)
	return outcome
}

// tryClaim runs the full per-account attempt: lazy login, claim call,
// and at most one re-login-and-retry when the session key is no
// longer accepted.
func (o *Orchestrator) tryClaim(ctx context.Context, log observability.Logger, code string, account domain.Account) domain.ClaimOutcome {
	session := o.store.Get(account.ID)

	var creds domain.Credentials
	if session.Authenticated() {
		creds = *session.Credentials
	} else {
		fresh, err := o.ensureSession(ctx, account)
		if err != nil {
			return failure(fmt.Sprintf("login required but failed for %s: %v", account.Handle, err))
		}
		creds = fresh
	}

	retried := false
	for {
		msg, err := o.gateway.Claim(ctx, code, creds)
		if err == nil {
			return domain.ClaimOutcome{Succeeded: true, Message: msg, ClaimedBy: account.ID}
		}

		var rejection *domain.RejectionError
		switch {
		case errors.Is(err, domain.ErrAuthExpired):
			if retried {
				return failure(fmt.Sprintf("session for %s expired again after re-login", account.Handle))
			}
			retried = true

			log.Warn(ctx, "session key rejected, re-authenticating", "account", account.ID)
			o.store.Invalidate(account.ID)

			fresh, authErr := o.ensureSession(ctx, account)
			if authErr != nil {
				return failure(fmt.Sprintf("re-login failed for %s after session expiry: %v", account.Handle, authErr))
			}
			creds = fresh

		case errors.As(err, &rejection):
			return failure(fmt.Sprintf("claim failed for %s: %s", account.Handle, rejection.Error()))

		default:
			return failure(fmt.Sprintf("claim error for %s: %v", account.Handle, err))
		}
	}
}

// ensureSession authenticates the account and records the result in
// the session store. It refuses to start a second login while one is
// already in flight for the same account.
func (o *Orchestrator) ensureSession(ctx context.Context, account domain.Account) (domain.Credentials, error) {
	if !o.store.BeginAuth(account.ID) {
		return domain.Credentials{}, domain.ErrAuthPending
	}

	creds, err := o.auth.Authenticate(ctx, account)
	o.store.CompleteAuth(account.ID, creds, err)
	if err != nil {
		return domain.Credentials{}, err
	}

	return creds, nil
}

func failure(message string) domain.ClaimOutcome {
	return domain.ClaimOutcome{Message: message}
}
