package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/heredity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTables(t *testing.T, mutation float64) string {
	t.Helper()

	tables := heredity.DefaultTables()
	tables.Mutation = mutation

	var buf bytes.Buffer
	require.NoError(t, heredity.WriteTablesYAML(&buf, tables))

	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func runCommand(t *testing.T, cfg *config, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd(cfg)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestConfigFromEnv(t *testing.T) {
	envTables := writeTables(t, 0.02)
	t.Setenv("HEREDITY_TABLES", envTables)
	t.Setenv("HEREDITY_WORKERS", "3")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, envTables, cfg.Tables)

	out := runCommand(t, &cfg, "tables")
	assert.Contains(t, out, "mutation: 0.02")
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("HEREDITY_TABLES", writeTables(t, 0.02))
	t.Setenv("HEREDITY_WORKERS", "3")

	cfg, err := loadConfig()
	require.NoError(t, err)

	flagTables := writeTables(t, 0.05)
	out := runCommand(t, &cfg, "tables", "--tables", flagTables)
	assert.Equal(t, flagTables, cfg.Tables)
	assert.Contains(t, out, "mutation: 0.05")
	assert.NotContains(t, out, "mutation: 0.02")

	cfg, err = loadConfig()
	require.NoError(t, err)
	out = runCommand(t, &cfg, "infer", "--workers", "2", "--tables", flagTables, filepath.Join("..", "..", "testdata", "family0.csv"))
	assert.Equal(t, 2, cfg.Workers)
	assert.Contains(t, out, "Harry:")
}

func TestConfigDefaults(t *testing.T) {
	for _, key := range []string{"HEREDITY_WORKERS", "HEREDITY_DB", "HEREDITY_TABLES", "HEREDITY_METRICS_FILE", "HEREDITY_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config{Workers: 1}, cfg)
}

func TestInvalidEnv(t *testing.T) {
	t.Setenv("HEREDITY_WORKERS", "many")

	_, err := loadConfig()
	assert.Error(t, err)
}
