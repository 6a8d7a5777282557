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
	"github.com/lassandro/golc3as/pkg/encoding"
	"github.com/lassandro/golc3as/pkg/isa"
)

// Encode produces the words of one resolved line. Label operands are looked
// up in labels and must be bound.
func Encode(line *Line, labels *LabelTable) ([]uint16, error) {
	declared := line.declared()
	body := line.Body()

	if len(body) == 0 {
		return nil, nil
	}

	operands := body[1:]

	switch head := body[0].(type) {
	case Instruction:
		word, err := encodeInstruction(line, declared+1, head.Op, operands, labels)

		if err != nil {
			return nil, err
		}

		return []uint16{word}, nil

	// Trap mnemonics are TRAP with an implied vector
	case Trap:
		operands = []Token{Number{int(head.Trap.Vector())}}
		word, err := encodeInstruction(line, declared+1, isa.INSTRUCTION_TRAP, operands, labels)

		if err != nil {
			return nil, err
		}

		return []uint16{word}, nil

	case PseudoOp:
		return encodeDirective(line, declared, head.Op, operands, labels)
	}

	return nil, invalidToken(line, declared)
}

func encodeInstruction(
	line *Line,
	offset int,
	op isa.InstructionType,
	operands []Token,
	labels *LabelTable,
) (uint16, error) {
	shape := isa.Shapes[op]

	if len(operands) != shape.Operands() {
		return 0, &InvalidFormatError{
			line.position(offset - 1), op.String(), instructionFormats[op],
			Kinds(operands),
		}
	}

	register := func(index int) (uint16, error) {
		reg, ok := operands[index-1].(Register)

		if !ok {
			return 0, &InvalidFormatError{
				line.position(offset - 1), op.String(), instructionFormats[op],
				Kinds(operands),
			}
		}

		return uint16(reg.Reg), nil
	}

	word := shape.Opcode<<12 | shape.Fixed

	if shape.DR > 0 {
		reg, err := register(shape.DR)

		if err != nil {
			return 0, err
		}

		word |= reg << isa.SHIFT_DR
	}

	if shape.SR > 0 {
		reg, err := register(shape.SR)

		if err != nil {
			return 0, err
		}

		word |= reg << isa.SHIFT_SR
	}

	if shape.Imm == 0 {
		return word, nil
	}

	switch operand := operands[shape.Imm-1].(type) {
	case Register:
		word |= uint16(operand.Reg)

	case Number:
		if shape.ImmFlag {
			word |= isa.BIT_IMMEDIATE
		}

		word |= encoding.Truncate(operand.Value, shape.Width)

	case Label:
		position := line.position(offset + shape.Imm - 1)
		address, ok := labels.Lookup(operand.Name)

		if !ok {
			return 0, &UnknownLabelError{position, operand.Name}
		}

		// Offsets count from the address of the instruction itself
		distance := int(address) - int(line.Address)
		min, max := shape.Range()

		if distance < min || distance > max {
			return 0, &LabelTooFarError{
				position, op.String(), operand.Name, min, max, distance,
			}
		}

		word |= encoding.Truncate(distance, shape.Width)

	default:
		return 0, &InvalidFormatError{
			line.position(offset - 1), op.String(), instructionFormats[op],
			Kinds(operands),
		}
	}

	return word, nil
}

func encodeDirective(
	line *Line,
	declared int,
	op isa.DirectiveType,
	operands []Token,
	labels *LabelTable,
) ([]uint16, error) {
	switch op {
	case isa.DIRECTIVE_FILL:
		switch operand := operands[0].(type) {
		case Number:
			return []uint16{encoding.Truncate(operand.Value, 16)}, nil
		case Label:
			address, ok := labels.Lookup(operand.Name)

			if !ok {
				return nil, &UnknownLabelError{
					line.position(declared + 1), operand.Name,
				}
			}

			return []uint16{address}, nil
		}

	case isa.DIRECTIVE_BLKW:
		count := operands[0].(Number).Value
		fill := uint16(0)

		if len(operands) > 1 {
			fill = encoding.Truncate(operands[1].(Number).Value, 16)
		}

		words := make([]uint16, count)

		for i := range words {
			words[i] = fill
		}

		return words, nil

	case isa.DIRECTIVE_STRINGZ:
		text := operands[0].(String).Text
		words := make([]uint16, 0, len(text)+1)

		for i := 0; i < len(text); i++ {
			words = append(words, uint16(text[i]))
		}

		return append(words, 0), nil

	case isa.DIRECTIVE_ORIG, isa.DIRECTIVE_END:
		return nil, nil
	}

	return nil, &InvalidFormatError{
		line.position(declared), op.String(), directiveFormats[op],
		Kinds(operands),
	}
}
