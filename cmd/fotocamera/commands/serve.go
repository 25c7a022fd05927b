package commands

import (
	"github.com/spf13/cobra"

	"fotocamera/internal/app"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP control surface, live preview and remote shutter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				wire.Config.HTTP.Addr = addr
			}
			return app.Serve(cmd.Context(), wire)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}
