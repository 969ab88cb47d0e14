package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/security-panel/internal/config"
	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/service/client"
	"github.com/oshokin/security-panel/internal/service/replay"
	"github.com/oshokin/security-panel/internal/service/watcher"
	"github.com/oshokin/security-panel/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the server address from the configuration file.
	serverAddress string
	// pollInterval is the watch polling interval.
	pollInterval time.Duration
	// replayCode is the secret code of the in-process replay controller.
	replayCode string

	// rootCmd is the console entry point; the work is done by subcommands.
	rootCmd = &cobra.Command{
		Use:   "security-console",
		Short: "Operate a security panel.",
		Long: `Sends commands to a security panel server, watches its state or replays
a command script against an in-process controller.

The server address is read from the configuration file unless --server is given.`,
		SilenceUsage: true,
	}
)

// Execute runs the security-console CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// commandRunner builds a subcommand sending cmd to the panel.
func commandRunner(cmd security.Command, use, short string) *cobra.Command {
	args := cobra.NoArgs
	if cmd.RequiresCode() {
		args = cobra.ExactArgs(1)
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			opts := &client.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				Command:       cmd,
			}

			if len(args) > 0 {
				opts.Code = args[0]
			}

			_, err := client.Run(ctx, opts)

			return err
		},
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "panel server address, overrides the configuration file")

	rootCmd.AddCommand(
		commandRunner(security.CommandArm, "arm", "Arm the system."),
		commandRunner(security.CommandDisarm, "disarm CODE", "Disarm the system; the fourth wrong code sounds the alarm."),
		commandRunner(security.CommandBreach, "breach", "Report an intrusion detected by a sensor."),
		commandRunner(security.CommandPanic, "panic", "Trigger the alarm manually."),
		commandRunner(security.CommandReset, "reset CODE", "Stop a sounding alarm."),
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current panel state.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			_, err := client.Status(ctx, &client.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
			})

			return err
		},
	})

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the panel and log every state change until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return watcher.Run(ctx, &watcher.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				PollInterval:  pollInterval,
			})
		},
	}
	watchCmd.Flags().DurationVarP(&pollInterval, "interval", "i", watcher.DefaultPollInterval, "polling interval")

	replayCmd := &cobra.Command{
		Use:   "replay [SCRIPT]",
		Short: "Run a command script against an in-process controller.",
		Long: `Runs one command per line (arm, breach, panic, disarm CODE, reset CODE)
against a fresh disarmed controller guarded by --code and prints the final state.
Reads standard input when SCRIPT is omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			opts := &replay.Options{Code: replayCode}
			if len(args) > 0 {
				opts.ScriptPath = args[0]
			}

			status, err := replay.Run(ctx, opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), client.FormatStatus(status))

			return nil
		},
	}
	replayCmd.Flags().StringVar(&replayCode, "code", "", "secret code of the replay controller")

	rootCmd.AddCommand(watchCmd, replayCmd)
}
