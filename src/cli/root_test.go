package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savesync/src/cli"
	"savesync/src/version"
)

// runCLI executes the root command with its own stdio buffers and returns
// what it wrote.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd(&out, &errOut)
	if stdin != "" {
		root.SetIn(bytes.NewBufferString(stdin))
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestBareInvocationShowsUsageAndFails(t *testing.T) {
	out, _, err := runCLI(t, "")
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "sync")
	assert.Contains(t, out, "apply")
}

func TestUnknownSubcommandFails(t *testing.T) {
	_, _, err := runCLI(t, "", "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}

func TestSyncFailsWhenConfigIsMissing(t *testing.T) {
	_, _, err := runCLI(t, "", "sync", "--config", "/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}
