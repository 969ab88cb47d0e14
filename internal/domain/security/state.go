package security

import (
	"context"
	"strings"
)

// StateKind identifies one of the controller operating states.
type StateKind uint8

const (
	// StateDisarmed is the initial state: sensors are ignored.
	StateDisarmed StateKind = iota
	// StateArmed watches sensors and accepts disarm attempts.
	StateArmed
	// StateAlarm is the sounding alarm, stopped only by a valid reset.
	StateAlarm
	// StateSilentAlarm calls the police and accepts no further commands.
	StateSilentAlarm
)

// MaxDisarmAttempts is the number of failed disarm attempts tolerated
// within one armed activation.
const MaxDisarmAttempts = 3

// String returns the lower-case state name.
func (k StateKind) String() string {
	switch k {
	case StateDisarmed:
		return "disarmed"
	case StateArmed:
		return "armed"
	case StateAlarm:
		return "alarm"
	case StateSilentAlarm:
		return "silent-alarm"
	default:
		return "unknown"
	}
}

// ParseStateKind converts a state name produced by String back to StateKind.
func ParseStateKind(s string) (StateKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disarmed":
		return StateDisarmed, true
	case "armed":
		return StateArmed, true
	case "alarm":
		return StateAlarm, true
	case "silent-alarm":
		return StateSilentAlarm, true
	default:
		return StateDisarmed, false
	}
}

// state is the active variant owned by a Controller.
// A fresh value is built on every transition, so per-activation data starts zeroed.
type state struct {
	// disarmAttempts counts disarm calls during the current armed activation.
	disarmAttempts int
	// kind selects the variant behavior.
	kind StateKind
}

func newState(kind StateKind) *state {
	return &state{kind: kind}
}

// handle reacts to a command. Commands a variant does not react to are no-ops.
func (s *state) handle(ctx context.Context, c *Controller, cmd Command, code string) {
	switch s.kind {
	case StateDisarmed:
		s.handleDisarmed(ctx, c, cmd)
	case StateArmed:
		s.handleArmed(ctx, c, cmd, code)
	case StateAlarm:
		s.handleAlarm(ctx, c, cmd, code)
	case StateSilentAlarm:
		// No command leaves the silent alarm.
	}
}

func (s *state) handleDisarmed(ctx context.Context, c *Controller, cmd Command) {
	switch cmd {
	case CommandArm:
		c.transition(ctx, StateArmed)
	case CommandBreach:
		c.transition(ctx, StateSilentAlarm)
	case CommandPanic:
		c.transition(ctx, StateAlarm)
	case CommandDisarm, CommandReset:
		// Already disarmed.
	}
}

func (s *state) handleArmed(ctx context.Context, c *Controller, cmd Command, code string) {
	switch cmd {
	case CommandDisarm:
		// The attempt is counted before the code is checked.
		s.disarmAttempts++

		switch {
		case c.isValid(ctx, code):
			c.transition(ctx, StateDisarmed)
		case s.disarmAttempts <= MaxDisarmAttempts:
			// Stay armed.
		default:
			c.transition(ctx, StateAlarm)
		}
	case CommandBreach, CommandPanic:
		c.transition(ctx, StateAlarm)
	case CommandArm, CommandReset:
		// Already armed.
	}
}

func (s *state) handleAlarm(ctx context.Context, c *Controller, cmd Command, code string) {
	switch cmd {
	case CommandReset:
		if c.isValid(ctx, code) {
			c.transition(ctx, StateDisarmed)
		}
	case CommandArm, CommandDisarm, CommandBreach, CommandPanic:
		// The alarm does not escalate any further.
	}
}

// enter runs the entry hook of the variant.
func (s *state) enter(ctx context.Context, n Notifier) {
	switch s.kind {
	case StateDisarmed:
		n.Notify(ctx, NotificationDisarmed)
	case StateArmed:
		n.Notify(ctx, NotificationArmed)
	case StateAlarm:
		n.Notify(ctx, NotificationAlarmSounded)
	case StateSilentAlarm:
		n.Notify(ctx, NotificationCallPolice)
	}
}

// exit runs the exit hook of the variant. Only the alarm has one.
func (s *state) exit(ctx context.Context, n Notifier) {
	switch s.kind {
	case StateAlarm:
		n.Notify(ctx, NotificationAlarmStopped)
	case StateDisarmed, StateArmed, StateSilentAlarm:
	}
}
