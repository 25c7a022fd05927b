package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fotocamera/internal/app"
	"fotocamera/internal/logging"
)

var (
	home       string
	configFile string
	logLevel   string
	remote     string

	wire *app.Wire
	log  *zap.Logger
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := run(ctx, newRootCmd())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// run executes root and releases whatever PersistentPreRunE wired, even when
// the command itself failed.
func run(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if wire != nil {
		if cerr := wire.Close(); cerr != nil && err == nil {
			err = cerr
		}
		wire = nil
	}
	if log != nil {
		_ = log.Sync()
		log = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fotocamera",
		Short:         "Camera that burns a 4-digit number into every photo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(home, configFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			log, err = logging.New(cfg.Logging())
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg, log)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.fotocamera)")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default <home>/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		numberCmd(),
		stampCmd(),
		captureCmd(),
		launchCmd(),
		answerCmd(),
		mediaCmd(),
		serveCmd(),
	)
	return root
}

// addRemoteFlag lets a command talk to a running server instead of local state.
func addRemoteFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&remote, "remote", "", "address of a running fotocamera server (e.g. 127.0.0.1:8080)")
}
