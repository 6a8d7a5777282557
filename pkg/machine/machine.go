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
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/lassandro/golc3as/pkg/encoding"
	"github.com/lassandro/golc3as/pkg/isa"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	// Programs start in user mode at the bottom of user space
	mc.Program = isa.MEMSPACE_USER
	mc.Procstat = isa.FLAG_ZERO

	// R6 is USP, SSP is saved in state
	mc.Registers[6] = isa.MEMSPACE_DEVICES
	mc.Stack = isa.MEMSPACE_USER
}

// LoadImage resets the machine, copies an assembled image to its origin and
// points the program counter at it.
func (mc *Machine) LoadImage(r io.Reader) error {
	origin, words, err := encoding.ReadImage(r)

	if err != nil {
		return err
	}

	if int(origin)+len(words) > len(mc.State.Memory) {
		return ErrImageTooLarge
	}

	mc.State.Reset()
	copy(mc.State.Memory[origin:], words)

	mc.State.Program = origin
	mc.Halted = false

	glog.V(1).Infof("loaded %d words at %#04x", len(words), origin)

	return nil
}

// Run steps the machine until it halts, fails or ctx is done.
func (mc *Machine) Run(ctx context.Context) error {
	for !mc.Halted {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := mc.Step(); err != nil {
			return err
		}
	}

	glog.V(1).Infof("halted at %#04x", mc.State.Program)

	return nil
}

func (mc *Machine) push(value uint16) {
	mc.State.Registers[6]--
	mc.write(mc.State.Registers[6], value)
}

func (mc *Machine) pop() uint16 {
	result := mc.read(mc.State.Registers[6])
	mc.State.Registers[6]++
	return result
}

func (mc *Machine) fail(err error) {
	if mc.fault == nil {
		mc.fault = err
	}
}

// getc blocks for the next keyboard byte.
func (mc *Machine) getc() (byte, error) {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return 0, ErrInputClosed
	}

	key, err := mc.Devices.Keyboard.ReadByte()

	if err == io.EOF {
		return 0, ErrInputClosed
	}

	return key, err
}

// putc writes one byte to the display. Output is dropped when no display is
// attached.
func (mc *Machine) putc(char byte) error {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return nil
	}

	if err := mc.Devices.Display.WriteByte(char); err != nil {
		return err
	}

	return mc.Devices.Display.Flush()
}

func (mc *Machine) read(addr uint16) uint16 {
	switch addr {
	case isa.DEV_KBSR:
		if mc.State.Memory[isa.DEV_KBSR]&DEV_READY == 0 {
			key, err := mc.getc()

			if err == nil {
				mc.State.Memory[isa.DEV_KBSR] = DEV_READY
				mc.State.Memory[isa.DEV_KBDR] = uint16(key)
			} else if err != ErrInputClosed {
				mc.fail(err)
			}
		}

	case isa.DEV_KBDR:
		mc.State.Memory[isa.DEV_KBSR] &^= DEV_READY

	case isa.DEV_DSR:
		display := mc.Devices != nil && mc.Devices.Display != nil

		if !display || mc.Devices.Display.Available() > 0 {
			mc.State.Memory[isa.DEV_DSR] = DEV_READY
		} else {
			mc.State.Memory[isa.DEV_DSR] = 0
		}

	case isa.DEV_DDR:
		return 0
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	switch addr {
	case isa.DEV_DDR:
		if err := mc.putc(byte(value & 0xFF)); err != nil {
			mc.fail(err)
		}

	case isa.DEV_KBDR:
		return
	}

	mc.State.Memory[addr] = value
}

func (mc *Machine) setPrivilege(privileged bool) {
	if privileged != mc.getPrivilege() {
		// Swap USP/SSP
		currentStack := mc.State.Registers[6]
		mc.State.Registers[6] = mc.State.Stack
		mc.State.Stack = currentStack
	}

	if privileged {
		mc.State.Procstat |= PSR_PRIVILEGE
	} else {
		mc.State.Procstat &^= PSR_PRIVILEGE
	}
}

func (mc *Machine) getPrivilege() bool {
	return mc.State.Procstat&PSR_PRIVILEGE != 0
}

func (mc *Machine) setPriority(value uint8) {
	if value > 0x7 {
		panic("Invalid priority value")
	}

	mc.State.Procstat &^= PSR_PRIORITY
	mc.State.Procstat |= uint16(value&0x7) << 8
}

func (mc *Machine) getPriority() uint8 {
	return uint8((mc.State.Procstat & PSR_PRIORITY) >> 8)
}

// raiseException enters the handler installed for vector in supervisor mode,
// saving the status word and program counter on the supervisor stack.
func (mc *Machine) raiseException(vector uint8, pc uint16) error {
	handler := mc.read(isa.MEMSPACE_INT_TABLE | uint16(vector))

	if handler == 0 {
		return &ExceptionError{vector, pc}
	}

	procstat := mc.State.Procstat

	mc.setPrivilege(true)
	mc.push(procstat)
	mc.push(mc.State.Program)
	mc.State.Program = handler

	return nil
}

func (mc *Machine) setFlags(value uint16) {
	// Reset condition flags, but preserve privilege and priority bits
	mc.State.Procstat &^= PSR_FLAGS

	if value == 0 {
		mc.State.Procstat |= isa.FLAG_ZERO
	} else if value>>15 == 1 {
		mc.State.Procstat |= isa.FLAG_NEG
	} else {
		mc.State.Procstat |= isa.FLAG_POS
	}
}

// relative returns the target of a PC-relative operand. Offsets count from
// the address of the instruction itself.
func relative(pc uint16, instruction uint16, width uint16) uint16 {
	mask := uint16(1)<<width - 1
	return pc + encoding.SignExtend(instruction&mask, width)
}

// Step executes the instruction under the program counter.
func (mc *Machine) Step() error {
	if mc.Halted {
		return nil
	}

	mc.fault = nil

	pc := mc.State.Program
	instruction := mc.read(pc)

	mc.State.Program++

	if err := mc.execute(pc, instruction); err != nil {
		return err
	}

	return mc.fault
}

func (mc *Machine) execute(pc uint16, instruction uint16) error {
	registers := &mc.State.Registers

	switch instruction >> 12 {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise and
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise and
	// XOR  |1001    |DR   |SR1  |0|00 |SR2   | Register  exclusive or
	// XOR  |1001    |DR   |SR1  |1|imm5      | Immediate exclusive or
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_ADD, isa.OP_AND, isa.OP_XOR:
		dest := (instruction >> isa.SHIFT_DR) & 0x7
		src1 := (instruction >> isa.SHIFT_SR) & 0x7

		var operand uint16

		if instruction&isa.BIT_IMMEDIATE != 0 {
			operand = encoding.SignExtend(instruction&0x1F, 5)
		} else {
			operand = registers[instruction&0x7]
		}

		switch instruction >> 12 {
		case isa.OP_ADD:
			registers[dest] = registers[src1] + operand
		case isa.OP_AND:
			registers[dest] = registers[src1] & operand
		case isa.OP_XOR:
			registers[dest] = registers[src1] ^ operand
		}

		mc.setFlags(registers[dest])

	// LSHF |1101    |DR   |SR   |0|0|imm4    | Shift left
	// RSHFL|1101    |DR   |SR   |0|1|imm4    | Shift right logical
	// RSHFA|1101    |DR   |SR   |1|1|imm4    | Shift right arithmetic
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_SHF:
		dest := (instruction >> isa.SHIFT_DR) & 0x7
		src := (instruction >> isa.SHIFT_SR) & 0x7
		amount := instruction & 0xF
		value := registers[src]

		switch instruction & (isa.BIT_SHIFT_RIGHT | isa.BIT_SHIFT_ARITH) {
		case 0:
			value <<= amount
		case isa.BIT_SHIFT_RIGHT:
			value >>= amount
		case isa.BIT_SHIFT_RIGHT | isa.BIT_SHIFT_ARITH:
			value = uint16(int16(value) >> amount)
		default:
			return mc.raiseException(VECTOR_ILLEGAL, pc)
		}

		registers[dest] = value
		mc.setFlags(value)

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_BR:
		flags := (instruction >> isa.SHIFT_DR) & 0x7

		if flags&(mc.State.Procstat&PSR_FLAGS) != 0 {
			mc.State.Program = relative(pc, instruction, 9)
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// JMPT |1100    |000  |BaseR|000001      | Jump (Clear Privilege)
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_JMP:
		src := (instruction >> isa.SHIFT_SR) & 0x7

		if instruction&0x1 == 1 {
			if !mc.getPrivilege() {
				return mc.raiseException(VECTOR_PRIVILEGE, pc)
			}

			mc.State.Program = registers[src]
			mc.setPrivilege(false)
		} else {
			mc.State.Program = registers[src]
		}

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_JSR:
		target := registers[(instruction>>isa.SHIFT_SR)&0x7]

		if instruction&isa.BIT_JSR_OFFSET != 0 {
			target = relative(pc, instruction, 11)
		}

		registers[7] = mc.State.Program
		mc.State.Program = target

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_LD:
		dest := (instruction >> isa.SHIFT_DR) & 0x7

		registers[dest] = mc.read(relative(pc, instruction, 9))
		mc.setFlags(registers[dest])

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_LDI:
		dest := (instruction >> isa.SHIFT_DR) & 0x7

		registers[dest] = mc.read(mc.read(relative(pc, instruction, 9)))
		mc.setFlags(registers[dest])

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_LDR:
		dest := (instruction >> isa.SHIFT_DR) & 0x7
		base := (instruction >> isa.SHIFT_SR) & 0x7
		addr := registers[base] + encoding.SignExtend(instruction&0x3F, 6)

		registers[dest] = mc.read(addr)
		mc.setFlags(registers[dest])

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_LEA:
		dest := (instruction >> isa.SHIFT_DR) & 0x7

		registers[dest] = relative(pc, instruction, 9)
		mc.setFlags(registers[dest])

	// RTI  |1000    |000000000000            | Return from interrupt
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_RTI:
		if !mc.getPrivilege() {
			return mc.raiseException(VECTOR_PRIVILEGE, pc)
		}

		mc.State.Program = mc.pop()
		procstat := mc.pop()

		mc.setPrivilege(procstat&PSR_PRIVILEGE != 0)
		mc.State.Procstat = procstat

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_ST:
		src := (instruction >> isa.SHIFT_DR) & 0x7

		mc.write(relative(pc, instruction, 9), registers[src])

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_STI:
		src := (instruction >> isa.SHIFT_DR) & 0x7

		mc.write(mc.read(relative(pc, instruction, 9)), registers[src])

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_STR:
		src := (instruction >> isa.SHIFT_DR) & 0x7
		base := (instruction >> isa.SHIFT_SR) & 0x7
		addr := registers[base] + encoding.SignExtend(instruction&0x3F, 6)

		mc.write(addr, registers[src])

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case isa.OP_TRAP:
		vector := encoding.ZeroExtend(instruction&0xFF, 8)

		registers[7] = mc.State.Program

		// An installed routine takes precedence over the built-in service
		if handler := mc.read(isa.MEMSPACE_TRAP_TABLE | vector); handler != 0 {
			mc.setPrivilege(true)
			mc.State.Program = handler
			return nil
		}

		return mc.serviceTrap(pc, isa.TrapType(vector))
	}

	return nil
}
