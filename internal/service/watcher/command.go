package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/security-panel/internal/config"
	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/logger"
	"github.com/oshokin/security-panel/internal/service/common"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// PollInterval defines the interval between status checks.
	PollInterval time.Duration
}

// DefaultPollInterval is used when no interval is given.
const DefaultPollInterval = 5 * time.Second

// StatusSource returns the current panel status.
type StatusSource interface {
	Status(ctx context.Context) (security.Status, error)
}

// Run polls the panel until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "security-watcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	actor, err := common.DetectActor()
	if err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching panel", "server_address", serverAddress, "interval", opts.PollInterval.String())

	Watch(ctx, client, opts.PollInterval, nil)

	return nil
}

// Watch polls source every interval until ctx is canceled. Each time the state
// differs from the previous observation it is logged and passed to onChange, if set.
// Poll failures are logged and retried on the next tick.
func Watch(ctx context.Context, source StatusSource, interval time.Duration, onChange func(security.Status)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var (
		last  security.Status
		known bool
	)

	check := func() {
		status, err := source.Status(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.ErrorKV(ctx, "Status check failed", "error", err)
			}

			return
		}

		if known && status.State == last.State && status.ChangedAt.Equal(last.ChangedAt) {
			return
		}

		last, known = status, true

		logger.InfoKV(ctx, "Panel state", "state", status.State.String(), "changed_at", status.ChangedAt)

		if status.State == security.StateAlarm || status.State == security.StateSilentAlarm {
			logger.WarnKV(ctx, "Panel is alarming", "state", status.State.String())
		}

		if onChange != nil {
			onChange(status)
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			return
		case <-ticker.C:
			check()
		}
	}
}
