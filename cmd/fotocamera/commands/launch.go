package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fotocamera/internal/services/launch"
)

func launchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch",
		Short: "Print what the app does on start (and record the first launch)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := launch.Next(wire.Prefs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

// answer yes|no|later [--dont-ask]: reply to the default-camera prompt.
func answerCmd() *cobra.Command {
	var dontAsk bool
	cmd := &cobra.Command{
		Use:       "answer yes|no|later",
		Short:     "Answer the default-camera prompt",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"yes", "no", "later"},
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := launch.ParseChoice(args[0])
			if err != nil {
				return err
			}
			d, err := launch.Answer(wire.Prefs, choice, dontAsk)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dontAsk, "dont-ask", false, "do not ask again (ignored for later)")
	return cmd
}
