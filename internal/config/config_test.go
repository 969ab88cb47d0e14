package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, defaults and format validations.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Missing address.
	require.Error(t, Validate(new(Config)))

	// Bad address.
	require.Error(t, Validate(&Config{ServerAddress: "bad:address"}))

	// Bad log level.
	require.Error(t, Validate(&Config{ServerAddress: "127.0.0.1:0", LogLevel: "loud"}))

	// Defaults are filled in.
	settings := &Config{ServerAddress: "127.0.0.1:0"}
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)
}

// TestRequireCode verifies that the server-side code check rejects an empty code.
func TestRequireCode(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, (&Config{}).RequireCode(), ErrCodeRequired)
	require.NoError(t, (&Config{Code: "1234"}).RequireCode())
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := &Config{
		ServerAddress: "127.0.0.1:50051",
		Code:          "1234",
		LogLevel:      "debug",
		Timeout:       3 * time.Second,
	}

	require.NoError(t, Save(path, settings))
	require.Error(t, Save(path, nil))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(DefaultFilePermissions), info.Mode().Perm())
}

// TestLoad_Missing verifies that a missing file is reported.
func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
