package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/avelezco/redbag-claimer/internal/adapters/render/status"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		warm   bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the account pool and its session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if warm {
				app.orchestrator.WarmUp(cmd.Context())
			}

			statuses := app.orchestrator.Statuses()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output statuses as JSON")
	cmd.Flags().BoolVar(&warm, "warm", false, "Authenticate the pool before reporting")

	return cmd
}
