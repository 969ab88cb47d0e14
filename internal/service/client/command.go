package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/security-panel/internal/config"
	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/logger"
	"github.com/oshokin/security-panel/internal/service/common"
)

// Options configures a console command.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Code is the secret code for disarm and reset.
	Code string
	// Command is the command to execute.
	Command security.Command
}

// errCodeRequired is returned when a code-carrying command has no code.
var errCodeRequired = errors.New("command requires a code")

// Run sends the command to the panel and returns the resulting status.
func Run(ctx context.Context, opts *Options) (security.Status, error) {
	ctx = logger.WithName(ctx, "security-console")

	if opts.Command.RequiresCode() && opts.Code == "" {
		return security.Status{}, fmt.Errorf("%w: %s", errCodeRequired, opts.Command)
	}

	client, serverAddress, err := connect(ctx, opts)
	if err != nil {
		return security.Status{}, err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Sending command", "server_address", serverAddress, "command", opts.Command.String())

	status, err := client.Send(ctx, opts.Command, opts.Code)
	if err != nil {
		return security.Status{}, err
	}

	logger.Infof(ctx, "Panel is %s", FormatStatus(status))

	return status, nil
}

// Status fetches the panel status without changing it. Command and Code are ignored.
func Status(ctx context.Context, opts *Options) (security.Status, error) {
	ctx = logger.WithName(ctx, "security-console")

	client, _, err := connect(ctx, opts)
	if err != nil {
		return security.Status{}, err
	}

	defer func() {
		_ = client.Close()
	}()

	status, err := client.Status(ctx)
	if err != nil {
		return security.Status{}, err
	}

	logger.Infof(ctx, "Panel is %s", FormatStatus(status))

	return status, nil
}

// connect loads settings and dials the panel as the current actor.
func connect(ctx context.Context, opts *Options) (*common.Client, string, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, "", err
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	actor, err := common.DetectActor()
	if err != nil {
		return nil, "", err
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return nil, "", err
	}

	return client, serverAddress, nil
}

// FormatStatus renders a status for console output.
func FormatStatus(s security.Status) string {
	result := s.State.String()
	if s.State == security.StateArmed && s.DisarmAttempts > 0 {
		result += fmt.Sprintf(" (%d/%d failed disarm attempts)", s.DisarmAttempts, security.MaxDisarmAttempts)
	}

	if !s.ChangedAt.IsZero() {
		result += " since " + s.ChangedAt.Local().Format("2006-01-02 15:04:05")
	}

	return result
}
