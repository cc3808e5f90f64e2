package machine

import (
	"errors"
	"io"
)

// ErrIllegalInstruction is returned by Step when the fetched instruction
// decodes to the reserved RES opcode or to RTI, neither of which this
// simulator implements.
var ErrIllegalInstruction = errors.New("illegal instruction")

// Terminal is the external collaborator the core depends on for console
// input. It is implemented by the host terminal adapter (see cmd/lc3vm),
// never by this package.
type Terminal interface {
	// CheckKey reports, without blocking, whether a byte is available to
	// read from the keyboard.
	CheckKey() bool
	// ReadChar blocks until one byte is available and returns it.
	ReadChar() (byte, error)
}

// DeviceHandler groups the injected I/O collaborators a Machine reads and
// writes through. Keyboard may be nil, in which case MR_KBSR polling is
// skipped and the register simply reflects whatever was last stored there.
// Output defaults to io.Discard semantics if left nil is never dereferenced
// directly; callers should always set it before running a program that
// performs console output.
type DeviceHandler struct {
	Keyboard Terminal
	Output   io.Writer
}

// MachineState is the complete architectural state of one LC-3 guest:
// eight general registers, the program counter, the condition-code
// register, and the full 65536-word memory.
type MachineState struct {
	Registers [8]uint16
	PC        uint16
	Cond      uint16
	Memory    [1 << 16]uint16
}

// Reset restores a MachineState to its power-on values: all registers
// zeroed, PC at the default entry point, and COND set to Z (exactly one
// condition flag must always be set).
func (ms *MachineState) Reset() {
	for i := range ms.Registers {
		ms.Registers[i] = 0x0000
	}

	for i := range ms.Memory {
		ms.Memory[i] = 0x0000
	}

	ms.PC = DefaultPC
	ms.Cond = FLAG_ZRO
}

// Machine is the fetch-decode-execute loop plus the console-I/O and trap
// behavior wired around one MachineState.
type Machine struct {
	Devices *DeviceHandler
	State   MachineState

	// Trace, when non-nil, receives one line per executed instruction.
	// It is never written to by anything other than Step, and it is kept
	// entirely separate from Devices.Output so that enabling it cannot
	// corrupt the console-I/O contract traced programs rely on.
	Trace io.Writer
}
