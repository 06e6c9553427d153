package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMigrate_SQLite(t *testing.T) {
	t.Setenv("USER_STORE", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "users.db"))

	out, err := runCLI(t, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 0, dirty: false")

	out, err = runCLI(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1, dirty: false")

	out, err = runCLI(t, "migrate", "down", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 0, dirty: false")
}

func TestMigrate_RejectsBadInput(t *testing.T) {
	t.Setenv("USER_STORE", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "users.db"))

	_, err := runCLI(t, "migrate", "down", "zero")
	assert.Error(t, err)

	t.Setenv("USER_STORE", "mongo")
	_, err = runCLI(t, "migrate", "up")
	assert.Error(t, err)
}
