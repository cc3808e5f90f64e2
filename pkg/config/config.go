// Package config loads the optional on-disk settings that tune a run of
// the simulator without touching its command-line contract.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/btr13010/virtual-machine/pkg/encoding"
)

// ErrConfig wraps a malformed configuration file. A missing file is never
// wrapped in ErrConfig; it simply yields Defaults().
var ErrConfig = errors.New("invalid config")

// Config holds the values a lc3vm.toml file may override.
type Config struct {
	// StartPC is the address execution begins at, given as a hex ("0x3000")
	// or decimal string in the file.
	StartPC uint16
	// Trace, when true, makes the machine write one line per executed
	// instruction to stderr.
	Trace bool
	// RawTerminal, when true, puts the controlling tty into raw mode for
	// the duration of the run so GETC/IN see keystrokes unbuffered.
	RawTerminal bool
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		StartPC:     0x3000,
		Trace:       false,
		RawTerminal: true,
	}
}

// fileConfig mirrors the TOML schema on disk; StartPC is parsed there as a
// string so both "0x3000" and "12288" are accepted.
type fileConfig struct {
	StartPC     string `toml:"start_pc"`
	Trace       bool   `toml:"trace"`
	RawTerminal *bool  `toml:"raw_terminal"`
}

// Load reads path and overlays it onto Defaults(). A missing file is not an
// error. A file that exists but fails to parse, or whose start_pc is not a
// valid hex or decimal word, is reported as ErrConfig.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if fc.StartPC != "" {
		pc, err := parseWord(fc.StartPC)
		if err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		cfg.StartPC = pc
	}

	cfg.Trace = fc.Trace

	if fc.RawTerminal != nil {
		cfg.RawTerminal = *fc.RawTerminal
	}

	return cfg, nil
}

// parseWord accepts start_pc written as either a hex literal ("0x3000") or a
// plain decimal address ("12288").
func parseWord(s string) (uint16, error) {
	if strings.ContainsAny(s, "xX") {
		return encoding.DecodeHex(s)
	}

	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}

	return uint16(v), nil
}
