package machine

// trap dispatches on a trap vector and returns halted=true once TRAP_HALT
// has run. Unlike the general-purpose trap-vector table some LC-3
// simulators implement, these six codes are fixed simulator behaviors:
// there is no supervisor-mode indirection to a handler address in memory.
func (mc *Machine) trap(vector uint16) (halted bool, err error) {
	switch vector {
	case TRAP_GETC:
		char := mc.blockingRead()
		mc.State.Registers[0] = uint16(char)
		mc.updateFlags(0)

	case TRAP_OUT:
		mc.output([]byte{byte(mc.State.Registers[0] & 0xFF)})

	case TRAP_PUTS:
		addr := mc.State.Registers[0]

		var out []byte
		for {
			word := mc.read(addr)
			if word == 0 {
				break
			}

			out = append(out, byte(word&0xFF))
			addr++
		}

		mc.output(out)

	case TRAP_IN:
		mc.output([]byte("Enter a character: "))

		char := mc.blockingRead()
		mc.output([]byte{char})

		mc.State.Registers[0] = uint16(char)
		mc.updateFlags(0)

	case TRAP_PUTSP:
		addr := mc.State.Registers[0]

		var out []byte
		for {
			word := mc.read(addr)
			if word == 0 {
				break
			}

			out = append(out, byte(word&0xFF))
			if hi := byte(word >> 8); hi != 0 {
				out = append(out, hi)
			}

			addr++
		}

		mc.output(out)

	case TRAP_HALT:
		mc.output([]byte("HALT\n"))
		return true, nil

	default:
		return false, ErrIllegalInstruction
	}

	return false, nil
}
