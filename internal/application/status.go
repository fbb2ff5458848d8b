package application

import (
	"time"

	"github.com/avelezco/redbag-claimer/internal/domain"
)

// AccountStatus is the read model behind the status command: one
// account plus the current snapshot of its session.
type AccountStatus struct {
	Account           domain.Account
	Session           domain.Session
	CooldownRemaining time.Duration
}

// Statuses snapshots the whole pool in declaration order.
func (o *Orchestrator) Statuses() []AccountStatus {
	statuses := make([]AccountStatus, 0, len(o.pool.Members))
	for _, account := range o.pool.Members {
		statuses = append(statuses, AccountStatus{
			Account:           account,
			Session:           o.store.Get(account.ID),
			CooldownRemaining: o.store.CooldownRemaining(account.ID),
		})
	}
	return statuses
}
