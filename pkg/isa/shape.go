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

// Constant bits shared by the assembler and the machine
const (
	BIT_IMMEDIATE   uint16 = 1 << 5  // ADD/AND/XOR second operand is imm5
	BIT_JSR_OFFSET  uint16 = 1 << 11 // JSR (PCoffset11) rather than JSRR
	BIT_SHIFT_RIGHT uint16 = 1 << 4
	BIT_SHIFT_ARITH uint16 = 1 << 5
	MASK_NOT        uint16 = 0x3F

	SHIFT_DR = 9
	SHIFT_SR = 6
)

// A Shape describes how the operands of one instruction are laid out in its
// machine word. Operand indices count from 1 (the first token after the
// mnemonic); 0 means the slot is not fed by an operand.
//
//	|15 14 13 12|11 10  9| 8  7  6| 5  4  3  2  1  0|
//	|  Opcode   |   DR   |   SR   |   Imm (Width)   |
type Shape struct {
	Opcode   uint16 // Hardware opcode
	DR       int    // Operand placed in bits 11..9
	SR       int    // Operand placed in bits 8..6
	Imm      int    // Operand placed in the low Width bits
	Width    uint   // Width of Imm
	Unsigned bool   // Numbers in Imm range over [0, 2^Width-1]
	ImmFlag  bool   // BIT_IMMEDIATE is set when Imm holds a number
	Fixed    uint16 // Constant bits or'd into every word
}

func branch(flags uint16) Shape {
	return Shape{Opcode: OP_BR, Imm: 1, Width: 9, Fixed: flags << SHIFT_DR}
}

func pcRelative(opcode uint16) Shape {
	return Shape{Opcode: opcode, DR: 1, Imm: 2, Width: 9}
}

func baseOffset(opcode uint16) Shape {
	return Shape{Opcode: opcode, DR: 1, SR: 2, Imm: 3, Width: 6}
}

func arithmetic(opcode uint16) Shape {
	return Shape{Opcode: opcode, DR: 1, SR: 2, Imm: 3, Width: 5, ImmFlag: true}
}

func shift(fixed uint16) Shape {
	return Shape{
		Opcode: OP_SHF, DR: 1, SR: 2, Imm: 3, Width: 4, Unsigned: true,
		Fixed: fixed,
	}
}

// Shapes is the opcode classification table, indexed by instruction.
var Shapes = [INSTRUCTION_COUNT]Shape{
	// RET  |1100    |000  |111  |000000      | Return
	INSTRUCTION_RET: {Opcode: OP_JMP, Fixed: 7 << SHIFT_SR},

	// RTI  |1000    |000000000000            | Return from interrupt
	INSTRUCTION_RTI: {Opcode: OP_RTI},

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	INSTRUCTION_JSR: {
		Opcode: OP_JSR, Imm: 1, Width: 11, Fixed: BIT_JSR_OFFSET,
	},

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	INSTRUCTION_BR:    branch(FLAG_NEG | FLAG_ZERO | FLAG_POS),
	INSTRUCTION_BRn:   branch(FLAG_NEG),
	INSTRUCTION_BRz:   branch(FLAG_ZERO),
	INSTRUCTION_BRp:   branch(FLAG_POS),
	INSTRUCTION_BRnz:  branch(FLAG_NEG | FLAG_ZERO),
	INSTRUCTION_BRnp:  branch(FLAG_NEG | FLAG_POS),
	INSTRUCTION_BRzp:  branch(FLAG_ZERO | FLAG_POS),
	INSTRUCTION_BRnzp: branch(FLAG_NEG | FLAG_ZERO | FLAG_POS),

	// TRAP |1111    |0000   |trapvect8       | System call
	INSTRUCTION_TRAP: {Opcode: OP_TRAP, Imm: 1, Width: 8, Unsigned: true},

	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// JMP  |1100    |000  |BaseR|000000      | Jump
	INSTRUCTION_JSRR: {Opcode: OP_JSR, SR: 1},
	INSTRUCTION_JMP:  {Opcode: OP_JMP, SR: 1},

	// LD   |0010    |DR   |PCoffset9         | Load
	// ST   |0011    |SR   |PCoffset9         | Store
	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	INSTRUCTION_LD:  pcRelative(OP_LD),
	INSTRUCTION_ST:  pcRelative(OP_ST),
	INSTRUCTION_LDI: pcRelative(OP_LDI),
	INSTRUCTION_STI: pcRelative(OP_STI),
	INSTRUCTION_LEA: pcRelative(OP_LEA),

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	INSTRUCTION_NOT: {Opcode: OP_NOT, DR: 1, SR: 2, Fixed: MASK_NOT},

	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	INSTRUCTION_ADD: arithmetic(OP_ADD),
	INSTRUCTION_AND: arithmetic(OP_AND),

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	INSTRUCTION_LDR: baseOffset(OP_LDR),
	INSTRUCTION_STR: baseOffset(OP_STR),

	// LSHF |1101    |DR   |SR   |0|0|imm4    | Shift left
	// RSHFL|1101    |DR   |SR   |0|1|imm4    | Shift right logical
	// RSHFA|1101    |DR   |SR   |1|1|imm4    | Shift right arithmetic
	INSTRUCTION_LSHF:  shift(0),
	INSTRUCTION_RSHFL: shift(BIT_SHIFT_RIGHT),
	INSTRUCTION_RSHFA: shift(BIT_SHIFT_RIGHT | BIT_SHIFT_ARITH),

	// XOR  |1001    |DR   |SR1  |0|00 |SR2   | Register  exclusive or
	// XOR  |1001    |DR   |SR1  |1|imm5      | Immediate exclusive or
	INSTRUCTION_XOR: arithmetic(OP_XOR),
}

// Mask returns the bit mask of the low field.
func (s Shape) Mask() uint16 {
	return uint16((uint32(1) << s.Width) - 1)
}

// Range returns the inclusive bounds a number must respect to fit the low
// field.
func (s Shape) Range() (min, max int) {
	if s.Unsigned {
		return 0, (1 << s.Width) - 1
	}

	return -(1 << (s.Width - 1)), (1 << (s.Width - 1)) - 1
}

// Operands returns the number of operand tokens the instruction consumes.
func (s Shape) Operands() int {
	count := s.DR

	if s.SR > count {
		count = s.SR
	}

	if s.Imm > count {
		count = s.Imm
	}

	return count
}
