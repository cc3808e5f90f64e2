package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btr13010/virtual-machine/pkg/config"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "lc3vm.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestLoadOverridesStartPCHex(t *testing.T) {
	path := writeConfig(t, `start_pc = "0x4000"`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4000), cfg.StartPC)
}

func TestLoadOverridesStartPCDecimal(t *testing.T) {
	path := writeConfig(t, `start_pc = "12288"`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3000), cfg.StartPC)
}

func TestLoadOverridesTraceAndRawTerminal(t *testing.T) {
	path := writeConfig(t, "trace = true\nraw_terminal = false\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Trace)
	assert.False(t, cfg.RawTerminal)
}

func TestLoadRawTerminalDefaultsToTrueWhenAbsent(t *testing.T) {
	path := writeConfig(t, `trace = true`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.RawTerminal)
}

func TestLoadMalformedTomlIsConfigError(t *testing.T) {
	path := writeConfig(t, "this is not valid = = toml")

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoadInvalidStartPCIsConfigError(t *testing.T) {
	path := writeConfig(t, `start_pc = "not-a-word"`)

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lc3vm.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}
