package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRootCmd tests command registration and flag defaults
func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "codemetry", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.Contains(t, names, "version")

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "codemetry.yaml", flag.DefValue)
}

// TestVersionCommand runs the version subcommand
func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

// TestUnknownCommand rejects unrecognized subcommands
func TestUnknownCommand(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"bogus"})
	assert.Error(t, cmd.Execute())
}
