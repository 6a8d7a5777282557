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

package isa

type InstructionType uint
type DirectiveType uint
type RegisterType uint
type TrapType uint16

// Hardware opcodes, bits 15..12 of every instruction word
const (
	OP_BR   uint16 = 0b0000
	OP_ADD  uint16 = 0b0001
	OP_LD   uint16 = 0b0010
	OP_ST   uint16 = 0b0011
	OP_JSR  uint16 = 0b0100
	OP_AND  uint16 = 0b0101
	OP_LDR  uint16 = 0b0110
	OP_STR  uint16 = 0b0111
	OP_RTI  uint16 = 0b1000
	OP_XOR  uint16 = 0b1001
	OP_LDI  uint16 = 0b1010
	OP_STI  uint16 = 0b1011
	OP_JMP  uint16 = 0b1100
	OP_SHF  uint16 = 0b1101
	OP_LEA  uint16 = 0b1110
	OP_TRAP uint16 = 0b1111

	// NOT is XOR against an all-ones immediate
	OP_NOT = OP_XOR
)

const (
	INSTRUCTION_RET InstructionType = iota
	INSTRUCTION_RTI
	INSTRUCTION_JSR
	INSTRUCTION_BR
	INSTRUCTION_BRn
	INSTRUCTION_BRz
	INSTRUCTION_BRp
	INSTRUCTION_BRnz
	INSTRUCTION_BRnp
	INSTRUCTION_BRzp
	INSTRUCTION_BRnzp
	INSTRUCTION_TRAP
	INSTRUCTION_JSRR
	INSTRUCTION_JMP
	INSTRUCTION_LD
	INSTRUCTION_ST
	INSTRUCTION_LDI
	INSTRUCTION_STI
	INSTRUCTION_LEA
	INSTRUCTION_NOT
	INSTRUCTION_ADD
	INSTRUCTION_AND
	INSTRUCTION_LDR
	INSTRUCTION_STR
	INSTRUCTION_LSHF
	INSTRUCTION_RSHFL
	INSTRUCTION_RSHFA
	INSTRUCTION_XOR

	INSTRUCTION_COUNT
)

const (
	DIRECTIVE_ORIG DirectiveType = iota
	DIRECTIVE_FILL
	DIRECTIVE_BLKW
	DIRECTIVE_STRINGZ
	DIRECTIVE_END

	DIRECTIVE_COUNT
)

const (
	REGISTER_R0 RegisterType = iota
	REGISTER_R1
	REGISTER_R2
	REGISTER_R3
	REGISTER_R4
	REGISTER_R5
	REGISTER_R6
	REGISTER_R7

	REGISTER_COUNT
)

// Trap mnemonics carry their trap vector as value
const (
	TRAP_GETC  TrapType = 0x20
	TRAP_OUT   TrapType = 0x21
	TRAP_PUTS  TrapType = 0x22
	TRAP_IN    TrapType = 0x23
	TRAP_PUTSP TrapType = 0x24
	TRAP_HALT  TrapType = 0x25
)

// Condition codes as stored in the processor status word and in bits 11..9
// of a branch
const (
	FLAG_POS  uint16 = 1 << 0
	FLAG_ZERO uint16 = 1 << 1
	FLAG_NEG  uint16 = 1 << 2
)

const (
	MEMSPACE_TRAP_TABLE uint16 = 0x0000
	MEMSPACE_INT_TABLE  uint16 = 0x0100
	MEMSPACE_SUPERVISOR uint16 = 0x0200
	MEMSPACE_USER       uint16 = 0x3000
	MEMSPACE_USER_END   uint16 = 0xFDFF
	MEMSPACE_DEVICES    uint16 = 0xFE00
)

const (
	DEV_KBSR uint16 = 0xFE00
	DEV_KBDR uint16 = 0xFE02
	DEV_DSR  uint16 = 0xFE04
	DEV_DDR  uint16 = 0xFE06
)

var instructionNames = [INSTRUCTION_COUNT]string{
	INSTRUCTION_RET:   "RET",
	INSTRUCTION_RTI:   "RTI",
	INSTRUCTION_JSR:   "JSR",
	INSTRUCTION_BR:    "BR",
	INSTRUCTION_BRn:   "BRn",
	INSTRUCTION_BRz:   "BRz",
	INSTRUCTION_BRp:   "BRp",
	INSTRUCTION_BRnz:  "BRnz",
	INSTRUCTION_BRnp:  "BRnp",
	INSTRUCTION_BRzp:  "BRzp",
	INSTRUCTION_BRnzp: "BRnzp",
	INSTRUCTION_TRAP:  "TRAP",
	INSTRUCTION_JSRR:  "JSRR",
	INSTRUCTION_JMP:   "JMP",
	INSTRUCTION_LD:    "LD",
	INSTRUCTION_ST:    "ST",
	INSTRUCTION_LDI:   "LDI",
	INSTRUCTION_STI:   "STI",
	INSTRUCTION_LEA:   "LEA",
	INSTRUCTION_NOT:   "NOT",
	INSTRUCTION_ADD:   "ADD",
	INSTRUCTION_AND:   "AND",
	INSTRUCTION_LDR:   "LDR",
	INSTRUCTION_STR:   "STR",
	INSTRUCTION_LSHF:  "LSHF",
	INSTRUCTION_RSHFL: "RSHFL",
	INSTRUCTION_RSHFA: "RSHFA",
	INSTRUCTION_XOR:   "XOR",
}

var directiveNames = [DIRECTIVE_COUNT]string{
	DIRECTIVE_ORIG:    ".ORIG",
	DIRECTIVE_FILL:    ".FILL",
	DIRECTIVE_BLKW:    ".BLKW",
	DIRECTIVE_STRINGZ: ".STRINGZ",
	DIRECTIVE_END:     ".END",
}

var trapNames = map[TrapType]string{
	TRAP_GETC:  "GETC",
	TRAP_OUT:   "OUT",
	TRAP_PUTS:  "PUTS",
	TRAP_IN:    "IN",
	TRAP_PUTSP: "PUTSP",
	TRAP_HALT:  "HALT",
}

// Traps lists the trap mnemonics in vector order.
var Traps = []TrapType{
	TRAP_GETC, TRAP_OUT, TRAP_PUTS, TRAP_IN, TRAP_PUTSP, TRAP_HALT,
}

func (inst InstructionType) String() string {
	if inst < INSTRUCTION_COUNT {
		return instructionNames[inst]
	}

	return "<invalid>"
}

func (dir DirectiveType) String() string {
	if dir < DIRECTIVE_COUNT {
		return directiveNames[dir]
	}

	return "<invalid>"
}

func (reg RegisterType) String() string {
	if reg < REGISTER_COUNT {
		return "R" + string(rune('0'+reg))
	}

	return "<invalid>"
}

func (trap TrapType) String() string {
	if name, ok := trapNames[trap]; ok {
		return name
	}

	return "<invalid>"
}

// Vector returns the 8-bit trap vector serviced by the mnemonic.
func (trap TrapType) Vector() uint16 {
	return uint16(trap) & 0xFF
}
