package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/security-panel/internal/config"
	"github.com/oshokin/security-panel/internal/service/server"
	"github.com/oshokin/security-panel/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// code overrides the secret code from the configuration file.
	code string
	// logLevel overrides the log level from the configuration file.
	logLevel string

	// rootCmd represents the base command for running the panel server.
	rootCmd = &cobra.Command{
		Use:   "security-panel [listen-address]",
		Short: "Run the security panel gRPC server.",
		Long: `Starts the security panel: a single controller that is disarmed on start
and accepts arm, disarm, breach, panic and reset commands over gRPC.

Only the port from server_addr is used for listening (e.g., :8080) unless a
listen address is given as argument (e.g., :9090, 0.0.0.0:8080).
The secret code is read from the configuration file or the --code flag.
State is kept in memory only and starts disarmed on every launch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				Code:          code,
				LogLevel:      logLevel,
			})
		},
	}
)

// Execute runs the security-panel CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&code, "code", "", "secret code, overrides the configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
}
