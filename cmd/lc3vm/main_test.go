package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// image builds a minimal big-endian object file: a two-byte origin word
// followed by the given payload words.
func image(t *testing.T, origin uint16, words ...uint16) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, origin))
	for _, w := range words {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, w))
	}

	path := filepath.Join(t.TempDir(), "prog.obj")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lc3vm.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunUsageErrorWhenNoImagesGiven(t *testing.T) {
	var out, trace bytes.Buffer

	code := run(nil, &out, &trace)
	assert.Equal(t, 2, code)
	assert.Equal(t, usage, out.String())
	assert.Empty(t, trace.String())
}

func TestRunHelpPrintsUsageAndExitsZero(t *testing.T) {
	var out, trace bytes.Buffer

	code := run([]string{"-help"}, &out, &trace)
	assert.Equal(t, 0, code)
	assert.Equal(t, usage, out.String())
	assert.Empty(t, trace.String())
}

func TestRunFailedLoadReturnsOne(t *testing.T) {
	var out, trace bytes.Buffer
	missing := filepath.Join(t.TempDir(), "does-not-exist.obj")

	code := run([]string{missing}, &out, &trace)
	assert.Equal(t, 1, code)
	assert.Equal(t, "failed to load image: "+missing+"\n", out.String())
	assert.Empty(t, trace.String())
}

func TestRunInvalidConfigReturnsOne(t *testing.T) {
	var out, trace bytes.Buffer

	cfgPath := writeConfig(t, "this is not valid = = toml")
	imgPath := image(t, 0x3000, 0xF025) // HALT

	code := run([]string{"-config", cfgPath, imgPath}, &out, &trace)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "invalid config:")
	assert.Empty(t, trace.String())
}

// TestRunStartPCOverride exercises S7: a config file's start_pc overrides
// the default entry point, and the machine begins executing from the
// overridden address.
func TestRunStartPCOverride(t *testing.T) {
	var out, trace bytes.Buffer

	cfgPath := writeConfig(t, `start_pc = "0x4000"`)
	imgPath := image(t, 0x4000, 0xF025) // HALT at the overridden start

	code := run([]string{"-config", cfgPath, imgPath}, &out, &trace)
	assert.Equal(t, 0, code)
	assert.Equal(t, "HALT\n", out.String())
	assert.Empty(t, trace.String())
}

func TestRunTraceGoesToTraceStreamNotOut(t *testing.T) {
	var out, trace bytes.Buffer

	cfgPath := writeConfig(t, "trace = true\nraw_terminal = false\n")
	imgPath := image(t, 0x3000, 0xF025) // HALT

	code := run([]string{"-config", cfgPath, imgPath}, &out, &trace)
	assert.Equal(t, 0, code)
	assert.Equal(t, "HALT\n", out.String())
	assert.NotEmpty(t, trace.String())
}
