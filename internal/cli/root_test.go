package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "reactive", cmd.Use)

	subCmd, _, err := cmd.Find([]string{"scenario"})
	require.NoError(t, err)
	assert.Equal(t, "scenario", subCmd.Name())
	assert.ElementsMatch(t, []string{"a", "b", "c", "batch", "scope"}, subCmd.ValidArgs)
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	require.NotNil(t, cmd.PersistentFlags().Lookup("metrics"))
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInvalidInput(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		_, _, err := execute(t, "scenario", "a", "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("scenario", func(t *testing.T) {
		_, _, err := execute(t, "scenario", "z")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), `unknown scenario "z"`)
	})

	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644))

		_, _, err := execute(t, "--config", path, "scenario", "a")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "scenario", "scope", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stderr, "scenario starting")
	assert.Contains(t, stderr, "write to destroyed scope dropped")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactive.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: warn
  format: json
metrics:
  enabled: true
  namespace: demo
tracing:
  enabled: true
`), 0o644))

	stdout, stderr, err := execute(t, "--config", path, "--metrics", "scenario", "scope")
	require.NoError(t, err)

	assert.Contains(t, stdout, "demo_writes_dropped_total 1")
	assert.Contains(t, stderr, `"msg":"write to destroyed scope dropped"`)
	assert.NotContains(t, stderr, "scenario starting")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "wrapped", assert.AnError)))
	assert.EqualError(t, WrapExitError(ExitFailure, "wrapped", assert.AnError), "wrapped: "+assert.AnError.Error())
}
