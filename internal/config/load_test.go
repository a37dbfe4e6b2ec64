package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "0.8.19", viper.GetString("solidity_version"))
	assert.Equal(t, "MIT", viper.GetString("license"))
	assert.Equal(t, "sqlite", viper.GetString("store.type"))
	assert.Equal(t, 200, viper.GetInt("optimizer.runs"))
	assert.Equal(t, 8080, viper.GetInt("port"))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "solgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solidity_version: \"0.8.24\"\nlicense: GPL-3.0\n"), 0644))

	Load(path)

	assert.Equal(t, "0.8.24", viper.GetString("solidity_version"))
	assert.Equal(t, "GPL-3.0", viper.GetString("license"))
	// Untouched keys keep defaults.
	assert.Equal(t, "sqlite", viper.GetString("store.type"))
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("SOLGRAPH_COMPILER_URL", "http://solc.internal:9000")

	Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "http://solc.internal:9000", viper.GetString("compiler.url"))
}
