package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jngu/ngubot/internal/version"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version.Version)
}

func TestRunWithoutDiscordTokenFails(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	_, _, err := executeCLI(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_BOT_TOKEN")
}

func TestUnknownCommandFails(t *testing.T) {
	_, _, err := executeCLI(t, "definitely-not-a-command")
	require.Error(t, err)
}
