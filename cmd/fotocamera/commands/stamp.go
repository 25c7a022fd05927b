package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"fotocamera/internal/domain"
)

// stamp <file>...: burn the badge into existing photos in place.
func stampCmd() *cobra.Command {
	var number string
	cmd := &cobra.Command{
		Use:   "stamp <file>...",
		Short: "Burn the DisplayNumber badge into existing photos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := wire.Session.Number()
			if err != nil {
				return err
			}
			if number != "" {
				if n, err = domain.ParseDisplayNumber(number); err != nil {
					return err
				}
			}
			var failed int
			for _, path := range args {
				g, err := wire.Compositor.Apply(cmd.Context(), path, n)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s at (%d,%d) %dx%d\n",
					path, n, g.X, g.Y, g.Width, g.Height)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files left unchanged", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "use this number instead of the saved one")
	return cmd
}
