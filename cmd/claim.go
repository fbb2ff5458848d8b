package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/observability"
)

func newClaimCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <code>",
		Short: "Try to claim a code once, across the whole pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer observability.FlushSentry()

			code := strings.ToUpper(strings.TrimSpace(args[0]))
			if !domain.IsClaimCode(code) {
				return fmt.Errorf("%q is not a claim code (expected 6 characters, A-Z and 0-9)", args[0])
			}

			outcome := app.orchestrator.ClaimCode(cmd.Context(), code)
			if !outcome.Succeeded {
				return fmt.Errorf("claim failed: %s", outcome.Message)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "claimed by account %s: %s\n", outcome.ClaimedBy, outcome.Message)
			return err
		},
	}
}
