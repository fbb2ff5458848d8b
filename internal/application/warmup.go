package application

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WarmUpReport summarizes the best-effort startup logins.
type WarmUpReport struct {
	Authenticated int
	Failed        int
}

// WarmUp fires one login per account concurrently and waits for all
// of them. Individual failures are logged and swallowed; a partially
// warmed pool is still a working pool, the orchestrator re-tries
// lazily on the first claim.
func (o *Orchestrator) WarmUp(ctx context.Context) WarmUpReport {
	o.logger.Info(ctx, "warming up account pool", "pool_size", len(o.pool.Members))

	var g errgroup.Group
	for _, account := range o.pool.Members {
		account := account
		g.Go(func() error {
			if _, err := o.ensureSession(ctx, account); err != nil {
				o.logger.Warn(ctx, "warmup login failed", "account", account.ID, "error", err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()

	var report WarmUpReport
	for _, account := range o.pool.Members {
		if o.store.Get(account.ID).Authenticated() {
			report.Authenticated++
		} else {
			report.Failed++
		}
	}

	o.logger.Info(ctx, "warmup finished",
		"authenticated", report.Authenticated,
		"failed", report.Failed,
	)
	return report
}
