package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fotocamera/internal/crypto"
	"fotocamera/internal/httpapi"
)

func captureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Take one photo with the configured camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if remote != "" {
				body, err := httpapi.NewClient(remote).Capture(ctx)
				if err != nil {
					return err
				}
				printCapture(cmd.OutOrStdout(), body)
				return nil
			}

			orch, err := wire.Capture(ctx)
			if err != nil {
				return err
			}
			res, err := orch.TakePhoto(ctx)
			if err != nil {
				return err
			}
			g := res.Geometry
			body := httpapi.CaptureBody{Record: res.Record, Path: res.Path}
			if res.OverlayErr != nil {
				body.OverlayError = res.OverlayErr.Error()
			} else {
				body.Badge = &httpapi.Badge{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
			}
			printCapture(cmd.OutOrStdout(), body)
			return nil
		},
	}
	addRemoteFlag(cmd)
	return cmd
}

func printCapture(w io.Writer, b httpapi.CaptureBody) {
	fmt.Fprintf(w, "saved %s\n", b.Path)
	fmt.Fprintf(w, "  id:          %s\n", b.Record.ID)
	fmt.Fprintf(w, "  fingerprint: %s\n", crypto.Short(b.Record.Fingerprint))
	if b.Badge != nil {
		fmt.Fprintf(w, "  badge:       (%d,%d) %dx%d\n", b.Badge.X, b.Badge.Y, b.Badge.Width, b.Badge.Height)
	}
	if b.OverlayError != "" {
		fmt.Fprintf(w, "  no badge:    %s\n", b.OverlayError)
	}
}
