package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(file, []byte("<html></html>"), 0o600))

	configPath := filepath.Join(dir, "gateway.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"routes:\n"+
			"  - route: /index\n"+
			"    file:\n"+
			"      path: "+file+"\n"+
			"  - route: /mock\n"+
			"    mock:\n"+
			"      status: 204\n"), 0o600))

	out, err := runCommand(t, "validate", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 route(s)")
	assert.Contains(t, out, "/index")
	assert.Contains(t, out, "file")
}

func TestValidateCommandRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gateway.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"routes:\n"+
			"  - route: /broken\n"), 0o600))

	_, err := runCommand(t, "validate", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler kind")
}

func TestValidateCommandMissingConfig(t *testing.T) {
	_, err := runCommand(t, "validate", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
