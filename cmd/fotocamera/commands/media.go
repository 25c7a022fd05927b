package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fotocamera/internal/crypto"
	"fotocamera/internal/domain"
	"fotocamera/internal/httpapi"
)

func mediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Inspect the media index",
	}
	cmd.AddCommand(mediaListCmd(), mediaShowCmd())
	return cmd
}

func mediaListCmd() *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List published photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				recs []domain.MediaRecord
				err  error
			)
			if remote != "" {
				recs, err = httpapi.NewClient(remote).Media(cmd.Context(), pending)
			} else {
				idx, ierr := wire.MediaIndex(cmd.Context())
				if ierr != nil {
					return ierr
				}
				recs, err = idx.List(cmd.Context(), pending)
			}
			if err != nil {
				return err
			}
			printMedia(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "include photos still being processed")
	addRemoteFlag(cmd)
	return cmd
}

func mediaShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one media record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rec domain.MediaRecord
				err error
			)
			if remote != "" {
				rec, err = httpapi.NewClient(remote).MediaRecord(cmd.Context(), args[0])
			} else {
				idx, ierr := wire.MediaIndex(cmd.Context())
				if ierr != nil {
					return ierr
				}
				rec, err = idx.Get(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id:          %s\n", rec.ID)
			fmt.Fprintf(w, "name:        %s/%s\n", rec.RelativePath, rec.DisplayName)
			fmt.Fprintf(w, "mime:        %s\n", rec.MimeType)
			fmt.Fprintf(w, "pending:     %t\n", rec.Pending)
			fmt.Fprintf(w, "size:        %d\n", rec.Size)
			fmt.Fprintf(w, "fingerprint: %s\n", rec.Fingerprint)
			fmt.Fprintf(w, "created:     %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}
	addRemoteFlag(cmd)
	return cmd
}

func printMedia(out io.Writer, recs []domain.MediaRecord) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tFINGERPRINT\tSTATE")
	for _, r := range recs {
		state := "published"
		if r.Pending {
			state = "pending"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.DisplayName, r.Size, crypto.Short(r.Fingerprint), state)
	}
	_ = tw.Flush()
}
