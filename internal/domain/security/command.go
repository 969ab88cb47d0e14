package security

import "strings"

// Command is one of the operations accepted by the controller.
type Command uint8

const (
	// CommandArm arms the system.
	CommandArm Command = iota
	// CommandDisarm disarms the system when the code is valid.
	CommandDisarm
	// CommandBreach reports an intrusion detected by a sensor.
	CommandBreach
	// CommandPanic is the manual panic trigger.
	CommandPanic
	// CommandReset stops a sounding alarm when the code is valid.
	CommandReset
)

// String returns the lower-case command name.
func (c Command) String() string {
	switch c {
	case CommandArm:
		return "arm"
	case CommandDisarm:
		return "disarm"
	case CommandBreach:
		return "breach"
	case CommandPanic:
		return "panic"
	case CommandReset:
		return "reset"
	default:
		return "unknown"
	}
}

// RequiresCode reports whether the command carries a secret code.
func (c Command) RequiresCode() bool {
	return c == CommandDisarm || c == CommandReset
}

// ParseCommand converts a command name to Command.
func ParseCommand(s string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arm":
		return CommandArm, true
	case "disarm":
		return CommandDisarm, true
	case "breach":
		return CommandBreach, true
	case "panic":
		return CommandPanic, true
	case "reset":
		return CommandReset, true
	default:
		return CommandArm, false
	}
}
