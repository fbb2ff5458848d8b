package ports

import (
	"context"

	"github.com/avelezco/redbag-claimer/internal/domain"
)

// Notifier delivers a claim outcome back to whoever sent the code.
// Delivery is best effort; the core never depends on it.
type Notifier interface {
	Notify(ctx context.Context, recipient string, outcome domain.ClaimOutcome) error
}
