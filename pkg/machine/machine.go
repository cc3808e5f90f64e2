package machine

import (
	"fmt"

	"github.com/btr13010/virtual-machine/pkg/encoding"
)

var opcodeNames = map[uint16]string{
	OP_BR: "BR", OP_ADD: "ADD", OP_LD: "LD", OP_ST: "ST", OP_JSR: "JSR",
	OP_AND: "AND", OP_LDR: "LDR", OP_STR: "STR", OP_RTI: "RTI", OP_NOT: "NOT",
	OP_LDI: "LDI", OP_STI: "STI", OP_JMP: "JMP", OP_RES: "RES", OP_LEA: "LEA",
	OP_TRAP: "TRAP",
}

// read returns the word at addr, polling the keyboard adapter when addr is
// the keyboard status register.
func (mc *Machine) read(addr uint16) uint16 {
	if addr == DEV_KBSR {
		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			if mc.Devices.Keyboard.CheckKey() {
				char, err := mc.Devices.Keyboard.ReadChar()
				if err != nil {
					panic(err)
				}

				mc.State.Memory[DEV_KBSR] = 1 << 15
				mc.State.Memory[DEV_KBDR] = uint16(char)
			} else {
				mc.State.Memory[DEV_KBSR] = 0
			}
		}
	}

	return mc.State.Memory[addr]
}

// write stores value at addr unconditionally.
func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value
}

// updateFlags sets COND from the sign of the register just written.
func (mc *Machine) updateFlags(r uint16) {
	value := mc.State.Registers[r]

	if value == 0 {
		mc.State.Cond = FLAG_ZRO
	} else if value>>15 == 1 {
		mc.State.Cond = FLAG_NEG
	} else {
		mc.State.Cond = FLAG_POS
	}
}

// blockingRead performs a blocking character read through the keyboard
// adapter, used by TRAP GETC and TRAP IN. It panics if no keyboard adapter
// is attached, since those traps cannot proceed without one.
func (mc *Machine) blockingRead() byte {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		panic("machine: blocking read requested with no keyboard attached")
	}

	char, err := mc.Devices.Keyboard.ReadChar()
	if err != nil {
		panic(err)
	}

	return char
}

func (mc *Machine) output(p []byte) {
	if mc.Devices == nil || mc.Devices.Output == nil {
		return
	}

	if _, err := mc.Devices.Output.Write(p); err != nil {
		panic(err)
	}

	if f, ok := mc.Devices.Output.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			panic(err)
		}
	}
}

// Run executes instructions until Step reports the machine has halted or
// returns an error.
func (mc *Machine) Run() error {
	for {
		halted, err := mc.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step fetches, decodes, and executes exactly one instruction. It reports
// halted=true once TRAP HALT has run, and returns ErrIllegalInstruction if
// the fetched word decodes to RES or RTI.
func (mc *Machine) Step() (halted bool, err error) {
	instr := mc.read(mc.State.PC)
	op := instr >> 12
	mc.State.PC++

	if mc.Trace != nil {
		fmt.Fprintf(mc.Trace, "pc=%#04x op=%s\n", mc.State.PC-1, opcodeNames[op])
	}

	switch op {
	// ADD  |0001|DR |SR1|0|00|SR2 | Register  addition
	// ADD  |0001|DR |SR1|1|imm5   | Immediate addition
	case OP_ADD:
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7

		var operand uint16
		if (instr>>5)&0x1 == 1 {
			operand = encoding.SignExtend(instr&0x1F, 5)
		} else {
			operand = mc.State.Registers[instr&0x7]
		}

		mc.State.Registers[dr] = mc.State.Registers[sr1] + operand
		mc.updateFlags(dr)

	// AND  |0101|DR |SR1|0|00|SR2 | Register  bitwise
	// AND  |0101|DR |SR1|1|imm5   | Immediate bitwise
	case OP_AND:
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7

		var operand uint16
		if (instr>>5)&0x1 == 1 {
			operand = encoding.SignExtend(instr&0x1F, 5)
		} else {
			operand = mc.State.Registers[instr&0x7]
		}

		mc.State.Registers[dr] = mc.State.Registers[sr1] & operand
		mc.updateFlags(dr)

	// NOT  |1001|DR |SR |1|11111  | Bitwise complement
	case OP_NOT:
		dr := (instr >> 9) & 0x7
		sr := (instr >> 6) & 0x7

		mc.State.Registers[dr] = ^mc.State.Registers[sr]
		mc.updateFlags(dr)

	// BR   |0000|n|z|p|PCoffset9  | Conditional branch
	case OP_BR:
		nzp := (instr >> 9) & 0x7

		if nzp&mc.State.Cond != 0 {
			mc.State.PC += encoding.SignExtend(instr&0x1FF, 9)
		}

	// JMP  |1100|000|BaseR|000000 | Jump (BaseR=R7 is RET)
	case OP_JMP:
		baseR := (instr >> 6) & 0x7
		mc.State.PC = mc.State.Registers[baseR]

	// JSR  |0100|1|PCoffset11          | Jump to subroutine
	// JSRR |0100|0|00|BaseR|000000     | Jump to subroutine register
	case OP_JSR:
		mc.State.Registers[7] = mc.State.PC

		if (instr>>11)&0x1 == 1 {
			mc.State.PC += encoding.SignExtend(instr&0x7FF, 11)
		} else {
			baseR := (instr >> 6) & 0x7
			mc.State.PC = mc.State.Registers[baseR]
		}

	// LD   |0010|DR |PCoffset9   | Load
	case OP_LD:
		dr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)

		mc.State.Registers[dr] = mc.read(addr)
		mc.updateFlags(dr)

	// LDI  |1010|DR |PCoffset9   | Load indirect
	case OP_LDI:
		dr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)

		mc.State.Registers[dr] = mc.read(mc.read(addr))
		mc.updateFlags(dr)

	// LDR  |0110|DR |BaseR|offset6 | Load base+offset
	case OP_LDR:
		dr := (instr >> 9) & 0x7
		baseR := (instr >> 6) & 0x7
		addr := mc.State.Registers[baseR] + encoding.SignExtend(instr&0x3F, 6)

		mc.State.Registers[dr] = mc.read(addr)
		mc.updateFlags(dr)

	// LEA  |1110|DR |PCoffset9   | Load effective address
	case OP_LEA:
		dr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)

		mc.State.Registers[dr] = addr
		mc.updateFlags(dr)

	// ST   |0011|SR |PCoffset9   | Store
	case OP_ST:
		sr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)

		mc.write(addr, mc.State.Registers[sr])

	// STI  |1011|SR |PCoffset9   | Store indirect
	case OP_STI:
		sr := (instr >> 9) & 0x7
		addr := mc.State.PC + encoding.SignExtend(instr&0x1FF, 9)

		mc.write(mc.read(addr), mc.State.Registers[sr])

	// STR  |0111|SR |BaseR|offset6 | Store base+offset
	case OP_STR:
		sr := (instr >> 9) & 0x7
		baseR := (instr >> 6) & 0x7
		addr := mc.State.Registers[baseR] + encoding.SignExtend(instr&0x3F, 6)

		mc.write(addr, mc.State.Registers[sr])

	// TRAP |1111|0000|trapvect8   | Console I/O and halt
	case OP_TRAP:
		mc.State.Registers[7] = mc.State.PC
		return mc.trap(instr & 0xFF)

	// RES  |1101| Reserved (illegal)
	// RTI  |1000| Return from interrupt (unimplemented)
	default:
		return false, ErrIllegalInstruction
	}

	return false, nil
}
