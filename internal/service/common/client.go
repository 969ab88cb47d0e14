//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/security-panel/internal/api/grpc/panel"
	"github.com/oshokin/security-panel/internal/config"
	"github.com/oshokin/security-panel/internal/domain/security"
)

// Client wraps the Panel gRPC client with timeouts and actor propagation.
type Client struct {
	// conn is the underlying gRPC connection, nil when the client wraps an existing one.
	conn *grpc.ClientConn
	// api is the Panel service client.
	api *panel.PanelClient
	// actor identifies the caller in request metadata.
	actor *security.Actor

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor identifies the caller on every request.
func WithActor(actor *security.Actor) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errUnknownCommand is returned for a command the panel does not serve.
	errUnknownCommand = errors.New("unknown command")
)

// Dial creates a client for the panel server at address.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial security panel: %w", err)
	}

	client := NewClient(conn, opts...)
	client.conn = conn

	return client, nil
}

// NewClient wraps an existing connection. Close does not close conn.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	client := &Client{
		api:         panel.NewPanelClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Send executes the command on the panel and returns the resulting status.
// The code is only sent with commands that carry one.
func (c *Client) Send(ctx context.Context, cmd security.Command, code string) (security.Status, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	var (
		msg *structpb.Struct
		err error
	)

	switch cmd {
	case security.CommandArm:
		msg, err = c.api.Arm(callCtx)
	case security.CommandDisarm:
		msg, err = c.api.Disarm(callCtx, code)
	case security.CommandBreach:
		msg, err = c.api.Breach(callCtx)
	case security.CommandPanic:
		msg, err = c.api.Panic(callCtx)
	case security.CommandReset:
		msg, err = c.api.Reset(callCtx, code)
	default:
		return security.Status{}, fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}

	if err != nil {
		return security.Status{}, fmt.Errorf("%s: %w", cmd, err)
	}

	return panel.FromProtoStatus(msg)
}

// Status retrieves the current panel status.
func (c *Client) Status(ctx context.Context) (security.Status, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	msg, err := c.api.GetStatus(callCtx)
	if err != nil {
		return security.Status{}, fmt.Errorf("get status: %w", err)
	}

	return panel.FromProtoStatus(msg)
}

// callContext returns a context carrying the actor and the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = panel.AppendActor(ctx, c.actor)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
