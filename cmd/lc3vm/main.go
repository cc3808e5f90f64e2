// Command lc3vm runs one or more LC-3 object images against the simulator
// in pkg/machine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/btr13010/virtual-machine/pkg/config"
	"github.com/btr13010/virtual-machine/pkg/loader"
	"github.com/btr13010/virtual-machine/pkg/machine"
)

const usage = "lc3 [image-file1] ...\n"

// run parses args and executes one simulator session, writing every
// user-visible message to out and reserving trace solely for the opt-in
// per-instruction trace stream. It mirrors the teacher's run()-returns-
// exit-code shape so main stays a one-line os.Exit(run(...)) wrapper, and
// so tests can drive a full session without touching the process's real
// argv or stdio.
func run(args []string, out io.Writer, trace io.Writer) int {
	fs := flag.NewFlagSet("lc3", flag.ContinueOnError)
	fs.SetOutput(out)

	configPath := fs.String("config", "lc3vm.toml", "path to an optional configuration file")
	help := fs.Bool("help", false, "display command usage")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		fmt.Fprint(out, usage)
		return 0
	}

	images := fs.Args()
	if len(images) == 0 {
		fmt.Fprint(out, usage)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(out, "invalid config: %v\n", err)
		return 1
	}

	var mc machine.Machine
	mc.State.Reset()
	mc.State.PC = cfg.StartPC

	for _, path := range images {
		if _, err := loader.LoadFile(&mc.State.Memory, path); err != nil {
			fmt.Fprintf(out, "failed to load image: %s\n", path)
			return 1
		}
	}

	term, err := newRawTerminal(cfg.RawTerminal)
	if err != nil {
		fmt.Fprintf(out, "failed to configure terminal: %v\n", err)
		return 1
	}
	defer term.Restore()

	mc.Devices = &machine.DeviceHandler{Keyboard: term, Output: out}
	if cfg.Trace {
		mc.Trace = trace
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		term.Restore()
		fmt.Fprintln(out)
		os.Exit(-2)
	}()

	if err := mc.Run(); err != nil {
		term.Restore()
		fmt.Fprintf(out, "%v\n", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
