// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"fmt"

	"github.com/lassandro/golc3as/pkg/isa"
)

type TrapError struct {
	Trap    isa.TrapType
	Address uint16
}

func (err *TrapError) Error() string {
	return fmt.Sprintf("%#04x: No routine for trap vector %#02x", err.Address, uint16(err.Trap))
}

// serviceTrap runs the built-in routine for a trap whose table entry is
// empty. R0 carries the character or string address.
func (mc *Machine) serviceTrap(pc uint16, trap isa.TrapType) error {
	registers := &mc.State.Registers

	switch trap {
	case isa.TRAP_GETC:
		char, err := mc.getc()

		if err != nil {
			return err
		}

		registers[0] = uint16(char)

	case isa.TRAP_OUT:
		return mc.putc(byte(registers[0]))

	case isa.TRAP_PUTS:
		addr := registers[0]

		// At most one pass over memory
		for count := 0; count < len(mc.State.Memory); count++ {
			if mc.State.Memory[addr] == 0 {
				break
			}

			if err := mc.putc(byte(mc.State.Memory[addr])); err != nil {
				return err
			}

			addr++
		}

	case isa.TRAP_IN:
		for _, char := range []byte(PROMPT_IN) {
			if err := mc.putc(char); err != nil {
				return err
			}
		}

		char, err := mc.getc()

		if err != nil {
			return err
		}

		registers[0] = uint16(char)

		return mc.putc(char)

	// Two characters per word, low byte first
	case isa.TRAP_PUTSP:
		addr := registers[0]

		for count := 0; count < len(mc.State.Memory); count++ {
			word := mc.State.Memory[addr]

			if word == 0 {
				break
			}

			if err := mc.putc(byte(word)); err != nil {
				return err
			}

			if word>>8 == 0 {
				break
			}

			if err := mc.putc(byte(word >> 8)); err != nil {
				return err
			}

			addr++
		}

	case isa.TRAP_HALT:
		mc.Halted = true

	default:
		return &TrapError{trap, pc}
	}

	return nil
}
