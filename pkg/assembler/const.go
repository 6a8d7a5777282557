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

package assembler

import (
	"github.com/lassandro/golc3as/pkg/isa"
)

// Bounds on pseudo-op operands
const (
	ORIG_MIN = int(isa.MEMSPACE_USER)
	ORIG_MAX = int(isa.MEMSPACE_USER_END)

	WORD_MIN = -0x8000
	WORD_MAX = 0xFFFF

	BLKW_MIN = 1
	BLKW_MAX = 0xFFFF
)

const (
	opR = TOKEN_REGISTER
	opN = TOKEN_NUMBER
	opL = TOKEN_LABEL
	opS = TOKEN_STRING
)

// Accepted operand kinds, per instruction
var instructionFormats = [isa.INSTRUCTION_COUNT][][]Kind{
	isa.INSTRUCTION_ADD: {{opR, opR, opR}, {opR, opR, opN}},
	isa.INSTRUCTION_AND: {{opR, opR, opR}, {opR, opR, opN}},
	isa.INSTRUCTION_XOR: {{opR, opR, opR}, {opR, opR, opN}},

	isa.INSTRUCTION_NOT:  {{opR, opR}},
	isa.INSTRUCTION_JMP:  {{opR}},
	isa.INSTRUCTION_JSRR: {{opR}},
	isa.INSTRUCTION_RET:  {{}},
	isa.INSTRUCTION_RTI:  {{}},

	isa.INSTRUCTION_LDR:   {{opR, opR, opN}},
	isa.INSTRUCTION_STR:   {{opR, opR, opN}},
	isa.INSTRUCTION_LSHF:  {{opR, opR, opN}},
	isa.INSTRUCTION_RSHFL: {{opR, opR, opN}},
	isa.INSTRUCTION_RSHFA: {{opR, opR, opN}},

	isa.INSTRUCTION_BR:    {{opL}},
	isa.INSTRUCTION_BRn:   {{opL}},
	isa.INSTRUCTION_BRz:   {{opL}},
	isa.INSTRUCTION_BRp:   {{opL}},
	isa.INSTRUCTION_BRnz:  {{opL}},
	isa.INSTRUCTION_BRnp:  {{opL}},
	isa.INSTRUCTION_BRzp:  {{opL}},
	isa.INSTRUCTION_BRnzp: {{opL}},
	isa.INSTRUCTION_JSR:   {{opL}},

	isa.INSTRUCTION_LD:  {{opR, opL}},
	isa.INSTRUCTION_LDI: {{opR, opL}},
	isa.INSTRUCTION_LEA: {{opR, opL}},
	isa.INSTRUCTION_ST:  {{opR, opL}},
	isa.INSTRUCTION_STI: {{opR, opL}},

	isa.INSTRUCTION_TRAP: {{opN}},
}

// Accepted operand kinds, per pseudo-op
var directiveFormats = [isa.DIRECTIVE_COUNT][][]Kind{
	isa.DIRECTIVE_ORIG:    {{opN}},
	isa.DIRECTIVE_FILL:    {{opN}, {opL}},
	isa.DIRECTIVE_BLKW:    {{opN}, {opN, opN}},
	isa.DIRECTIVE_STRINGZ: {{opS}},
	isa.DIRECTIVE_END:     {{}},
}
