package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/security-panel/internal/domain/security"
	"github.com/oshokin/security-panel/internal/logger"
)

// Options configures a replay run.
type Options struct {
	// ScriptPath is the script file; "-" reads standard input.
	ScriptPath string
	// Code is the secret code of the in-process controller.
	Code string
}

// Step is one parsed script line.
type Step struct {
	// Code is the code passed with disarm and reset.
	Code string
	// Line is the 1-based line number in the script.
	Line int
	// Command is the command to dispatch.
	Command security.Command
}

var (
	// errCodeRequired is returned when the controller code is not set.
	errCodeRequired = errors.New("secret code must be provided")
	// ErrSyntax is returned for a malformed script line.
	ErrSyntax = errors.New("script syntax error")
)

// Run executes the script at opts.ScriptPath and returns the final status.
func Run(ctx context.Context, opts *Options) (security.Status, error) {
	ctx = logger.WithName(ctx, "security-replay")

	if opts.Code == "" {
		return security.Status{}, errCodeRequired
	}

	var script io.Reader = os.Stdin

	if opts.ScriptPath != "" && opts.ScriptPath != "-" {
		file, err := os.Open(filepath.Clean(opts.ScriptPath))
		if err != nil {
			return security.Status{}, fmt.Errorf("open script: %w", err)
		}

		defer func() {
			_ = file.Close()
		}()

		script = file
	}

	steps, err := Parse(script)
	if err != nil {
		return security.Status{}, err
	}

	return Execute(ctx, security.NewController(opts.Code), steps), nil
}

// Parse reads a script into steps.
func Parse(r io.Reader) ([]Step, error) {
	var (
		steps   []Step
		scanner = bufio.NewScanner(r)
		line    int
	)

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)

		cmd, ok := security.ParseCommand(fields[0])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown command %q", ErrSyntax, line, fields[0])
		}

		step := Step{Line: line, Command: cmd}

		switch {
		case cmd.RequiresCode() && len(fields) != 2:
			return nil, fmt.Errorf("%w: line %d: %s takes exactly one code", ErrSyntax, line, cmd)
		case cmd.RequiresCode():
			step.Code = fields[1]
		case len(fields) != 1:
			return nil, fmt.Errorf("%w: line %d: %s takes no arguments", ErrSyntax, line, cmd)
		}

		steps = append(steps, step)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return steps, nil
}

// Execute dispatches the steps in order and returns the final status.
func Execute(ctx context.Context, controller *security.Controller, steps []Step) security.Status {
	for _, step := range steps {
		stepCtx := logger.WithKV(ctx, "line", step.Line)

		controller.Dispatch(stepCtx, step.Command, step.Code)
	}

	status := controller.Status(ctx)

	logger.InfoKV(ctx, "Replay finished", "steps", len(steps), "state", status.State.String())

	return status
}
