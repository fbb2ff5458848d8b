package domain

import (
	"fmt"
	"strings"
)

// Pool is the ordered set of accounts a claim is raced across.
// Member order is fixed at startup (declaration order in the
// configuration) and used as the deterministic trial order.
type Pool struct {
	Members []Account
}

func (p Pool) Validate() error {
	if len(p.Members) == 0 {
		return ErrEmptyPool
	}

	seen := make(map[string]struct{}, len(p.Members))
	for i, member := range p.Members {
		if strings.TrimSpace(member.Handle) == "" {
			return fmt.Errorf("account %d: handle is required", i+1)
		}
		if member.Secret == "" {
			return fmt.Errorf("account %d (%s): secret is required", i+1, member.Handle)
		}
		if _, ok := seen[member.Handle]; ok {
			return fmt.Errorf("account %d: duplicate handle %s", i+1, member.Handle)
		}
		seen[member.Handle] = struct{}{}
	}

	return nil
}
