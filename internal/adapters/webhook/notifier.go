package webhook

import (
	"context"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/observability"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

// LogNotifier reports claim outcomes to the log only. It stands in
// for a real outbound messaging integration, which needs provider
// credentials this project does not own.
type LogNotifier struct {
	logger observability.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger observability.Logger) *LogNotifier {
	if logger == nil {
		logger = observability.Nop{}
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, recipient string, outcome domain.ClaimOutcome) error {
	if outcome.Succeeded {
		n.logger.Info(ctx, "claim outcome",
			"recipient", recipient,
			"succeeded", true,
			"claimed_by", outcome.ClaimedBy,
			"message", outcome.Message,
		)
		return nil
	}

	n.logger.Warn(ctx, "claim outcome",
		"recipient", recipient,
		"succeeded", false,
		"message", outcome.Message,
	)
	return nil
}
