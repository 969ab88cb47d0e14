package security

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/security-panel/internal/logger"
)

// Status is a snapshot of the controller.
type Status struct {
	// ChangedAt is when the current state was entered.
	ChangedAt time.Time
	// DisarmAttempts is the number of disarm calls in the current armed activation.
	// It is always zero outside the armed state.
	DisarmAttempts int
	// State is the active state.
	State StateKind
}

// Controller owns the current state and the secret code and exposes the command surface.
// It is safe for concurrent use: each command is dispatched under one lock, so no
// caller can observe a transition halfway through.
type Controller struct {
	// notifier receives enter/exit and code validation notifications.
	notifier Notifier
	// now returns the current time.
	now func() time.Time
	// state is the active state, replaced wholesale on transition.
	state *state
	// changedAt is when state was entered.
	changedAt time.Time
	// code is the secret code, fixed at construction.
	code string
	// mu serializes command dispatch.
	mu sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the notification sink. Nil keeps the default LogNotifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithClock overrides the time source used for Status.ChangedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a disarmed controller guarded by the given code.
// The disarmed enter hook is not run for the initial state.
func NewController(code string, opts ...Option) *Controller {
	c := &Controller{
		notifier: LogNotifier{},
		now:      time.Now,
		state:    newState(StateDisarmed),
		code:     code,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.changedAt = c.now()

	return c
}

// Arm arms a disarmed system.
func (c *Controller) Arm(ctx context.Context) StateKind {
	return c.Dispatch(ctx, CommandArm, "")
}

// Disarm attempts to disarm an armed system with the given code.
func (c *Controller) Disarm(ctx context.Context, code string) StateKind {
	return c.Dispatch(ctx, CommandDisarm, code)
}

// Breach reports an intrusion detected by a sensor.
func (c *Controller) Breach(ctx context.Context) StateKind {
	return c.Dispatch(ctx, CommandBreach, "")
}

// Panic triggers the alarm manually.
func (c *Controller) Panic(ctx context.Context) StateKind {
	return c.Dispatch(ctx, CommandPanic, "")
}

// Reset stops a sounding alarm with the given code.
func (c *Controller) Reset(ctx context.Context, code string) StateKind {
	return c.Dispatch(ctx, CommandReset, code)
}

// Dispatch forwards the command to the current state and returns the resulting state.
// The code is ignored by commands that do not carry one.
func (c *Controller) Dispatch(ctx context.Context, cmd Command, code string) StateKind {
	return c.Handle(ctx, cmd, code).State
}

// Handle dispatches the command and returns the snapshot taken right after it,
// before any other command can run.
func (c *Controller) Handle(ctx context.Context, cmd Command, code string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = logger.WithKV(ctx, "command", cmd.String())

	from := c.state.kind
	c.state.handle(ctx, c, cmd, code)

	logger.DebugKV(ctx, "Command handled", "from", from.String(), "to", c.state.kind.String())

	return c.snapshot()
}

// State returns the active state.
func (c *Controller) State() StateKind {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.kind
}

// Status returns a snapshot of the controller.
func (c *Controller) Status(ctx context.Context) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger.DebugKV(ctx, "Status requested", "state", c.state.kind.String())

	return c.snapshot()
}

// snapshot copies the observable fields. Callers must hold mu.
func (c *Controller) snapshot() Status {
	return Status{
		ChangedAt:      c.changedAt,
		DisarmAttempts: c.state.disarmAttempts,
		State:          c.state.kind,
	}
}

// isValid compares the code with the secret code and notifies the outcome.
// It never changes the state by itself.
func (c *Controller) isValid(ctx context.Context, code string) bool {
	if code == c.code {
		c.notifier.Notify(ctx, NotificationCodeAccepted)

		return true
	}

	c.notifier.Notify(ctx, NotificationInvalidCode)

	return false
}

// transition runs the exit hook of the current state, installs a fresh state
// of the given kind and runs its enter hook. Callers must hold mu.
func (c *Controller) transition(ctx context.Context, to StateKind) {
	c.state.exit(ctx, c.notifier)
	c.state = newState(to)
	c.changedAt = c.now()
	c.state.enter(ctx, c.notifier)
}
