package ports

import (
	"context"

	"github.com/avelezco/redbag-claimer/internal/domain"
)

// AccountSource loads the configured account pool. The pool is read
// once during wiring; the core never re-reads configuration at claim
// time.
type AccountSource interface {
	Load(ctx context.Context) (domain.Pool, error)
}
