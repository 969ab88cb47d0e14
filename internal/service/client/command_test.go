package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/security-panel/internal/domain/security"
)

// TestRun_RequiresCode verifies that disarm and reset are rejected without a code before dialing.
func TestRun_RequiresCode(t *testing.T) {
	t.Parallel()

	for _, cmd := range []security.Command{security.CommandDisarm, security.CommandReset} {
		_, err := Run(context.Background(), &Options{Command: cmd})
		require.ErrorIs(t, err, errCodeRequired)
	}
}

// TestRun_MissingConfig verifies that a missing settings file is reported.
func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Command:    security.CommandArm,
	})
	require.Error(t, err)
}

// TestFormatStatus checks the console rendering of a status.
func TestFormatStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, "disarmed", FormatStatus(security.Status{State: security.StateDisarmed}))
	require.Equal(t, "armed (2/3 failed disarm attempts)", FormatStatus(security.Status{
		State:          security.StateArmed,
		DisarmAttempts: 2,
	}))
	require.Contains(t, FormatStatus(security.Status{
		State:     security.StateAlarm,
		ChangedAt: time.Now(),
	}), "alarm since ")
}

// TestStatus_MissingConfig verifies that Status reports a missing settings file.
func TestStatus_MissingConfig(t *testing.T) {
	t.Parallel()

	_, err := Status(context.Background(), &Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.Error(t, err)
}
