package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestMonthCommand(t *testing.T) {
	out, err := run(t, "month", "--date", "2025-11-09")

	require.NoError(t, err)
	assert.Contains(t, out, "November 2025")
	assert.Contains(t, out, "[ 9]*")
	assert.Contains(t, out, "2025-11-08  00:00 - 01:30  Daily Standup")
}

func TestMonthCommand_InvalidDate(t *testing.T) {
	_, err := run(t, "month", "--date", "9 Nov")

	assert.Error(t, err)
}

func TestMonthCommand_WithoutSeed(t *testing.T) {
	t.Setenv("EVENTCAL_CALENDAR_SEED", "false")

	out, err := run(t, "month", "--date", "2025-11-09")

	require.NoError(t, err)
	assert.NotContains(t, out, "Daily Standup")
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("EVENTCAL_CALENDAR_WEEKSTART", "sunday")

	out, err := run(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "8181")
	assert.Contains(t, out, "weekstart: sunday")
	assert.Contains(t, out, "interval: 1m0s")
}
