package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rbclaim",
		Short:         "rbclaim: race red-bag claim codes across a pool of accounts",
		Long:          "rbclaim keeps a pool of member accounts warm against the reward API and races incoming 6-character claim codes through the pool, one account at a time, until one of them wins the bag.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newClaimCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
