package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ngubot",
		Short:         "Ngubot: a Discord assistant backed by an LLM",
		Long:          "ngubot bridges a Discord server with an OpenRouter completion endpoint: slash commands and channel chatter become conversational turns, and model replies (including DM directives) are relayed back to the server.",
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
		newRunCmd(app),
	)

	return rootCmd
}
