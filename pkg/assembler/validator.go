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
	"strings"

	"github.com/lassandro/golc3as/pkg/isa"
)

func matchFormat(formats [][]Kind, have []Kind) bool {
	for _, want := range formats {
		if len(want) != len(have) {
			continue
		}

		match := true

		for i := range want {
			if want[i] != have[i] {
				match = false
				break
			}
		}

		if match {
			return true
		}
	}

	return false
}

func isDirective(tok Token, dirs ...isa.DirectiveType) bool {
	op, ok := tok.(PseudoOp)

	if !ok {
		return false
	}

	for _, dir := range dirs {
		if op.Op == dir {
			return true
		}
	}

	return false
}

// Validate checks one line against the grammar and declares its labels.
// Lines that only draw a Warning are marked Skipped and take no further part
// in assembly.
func (session *Session) Validate(line *Line) error {
	if session.endFound {
		line.Skipped = true
		return &ContentAfterEndWarning{line.position(0)}
	}

	if err := checkTokens(line); err != nil {
		return err
	}

	declared := line.declared()
	body := line.Body()

	// .ORIG and .END do not occupy an address a label could name
	if declared > 0 && len(body) > 0 {
		if isDirective(body[0], isa.DIRECTIVE_ORIG, isa.DIRECTIVE_END) {
			op := body[0].(PseudoOp).Op
			return &InvalidPseudoOpError{line.position(declared), op}
		}
	}

	if !session.originFound {
		if len(body) == 0 || !isDirective(body[0], isa.DIRECTIVE_ORIG) {
			line.Skipped = true
			return &InstructionBeforeOrigWarning{line.position(0)}
		}
	}

	if len(body) > 0 {
		var err error

		switch head := body[0].(type) {
		case Instruction:
			err = checkInstruction(line, declared, head.Op)
		case Trap:
			if count := len(body) - 1; count != 0 {
				err = &InvalidTrapCallError{line.position(declared), head.Trap, count}
			}
		case PseudoOp:
			err = session.checkDirective(line, declared, head.Op)
		default:
			err = invalidToken(line, declared)
		}

		if err != nil {
			return err
		}
	}

	for i, tok := range line.Labels() {
		name := tok.(Label).Name

		if err := session.Labels.Declare(name); err != nil {
			return &DuplicateLabelError{line.position(i), name}
		}
	}

	return nil
}

// checkTokens rejects lines holding tokens that could not be classified.
func checkTokens(line *Line) error {
	if len(line.Tokens) == 1 {
		switch tok := line.Tokens[0].(type) {
		case Number, String, Register:
			return &InvalidLabelNameError{line.position(0), line.source(0)}
		case Undefined:
			if labelPattern.MatchString(tok.Text) {
				return &InvalidLabelNameError{line.position(0), tok.Text}
			}
		}
	}

	for i, tok := range line.Tokens {
		undefined, ok := tok.(Undefined)

		if !ok {
			continue
		}

		if strings.HasPrefix(undefined.Text, `"`) {
			return &MalformedStringError{line.position(i), undefined.Text}
		}

		return &InvalidTokenError{line.position(i), undefined.Text, ""}
	}

	return nil
}

// invalidToken reports a body that starts with an operand. The last label
// was most likely a misspelt keyword.
func invalidToken(line *Line, declared int) error {
	if declared == 0 {
		return &InvalidTokenError{
			line.position(0), line.source(0), "",
		}
	}

	name := line.Tokens[declared-1].(Label).Name
	suggestion, _ := isa.Suggest(name)

	return &InvalidTokenError{line.position(declared - 1), name, suggestion}
}

func checkRange(line *Line, keyword string, index int, min, max int) error {
	number := line.Tokens[index].(Number)

	if number.Value < min || number.Value > max {
		return &OutOfRangeError{
			line.position(index), keyword, min, max, number.Value,
		}
	}

	return nil
}

func checkInstruction(line *Line, declared int, op isa.InstructionType) error {
	operands := line.Tokens[declared+1:]
	have := Kinds(operands)

	if !matchFormat(instructionFormats[op], have) {
		return &InvalidFormatError{
			line.position(declared), op.String(), instructionFormats[op], have,
		}
	}

	if op == isa.INSTRUCTION_TRAP {
		return &TrapDisabledError{line.position(declared)}
	}

	shape := isa.Shapes[op]

	if shape.Imm > 0 {
		index := declared + shape.Imm

		if _, ok := line.Tokens[index].(Number); ok {
			min, max := shape.Range()
			return checkRange(line, op.String(), index, min, max)
		}
	}

	return nil
}

func (session *Session) checkDirective(line *Line, declared int, op isa.DirectiveType) error {
	if op == isa.DIRECTIVE_ORIG && session.originFound {
		line.Skipped = true
		return &DoubleOrigWarning{line.position(declared)}
	}

	operands := line.Tokens[declared+1:]
	have := Kinds(operands)

	if !matchFormat(directiveFormats[op], have) {
		return &InvalidFormatError{
			line.position(declared), op.String(), directiveFormats[op], have,
		}
	}

	switch op {
	case isa.DIRECTIVE_ORIG:
		if err := checkRange(line, op.String(), declared+1, ORIG_MIN, ORIG_MAX); err != nil {
			return err
		}

		session.originFound = true
		session.Origin = uint16(operands[0].(Number).Value)

	case isa.DIRECTIVE_END:
		session.endFound = true

	case isa.DIRECTIVE_FILL:
		if _, ok := operands[0].(Number); ok {
			return checkRange(line, op.String(), declared+1, WORD_MIN, WORD_MAX)
		}

	case isa.DIRECTIVE_BLKW:
		if err := checkRange(line, op.String(), declared+1, BLKW_MIN, BLKW_MAX); err != nil {
			return err
		}

		if len(operands) > 1 {
			return checkRange(line, op.String(), declared+2, WORD_MIN, WORD_MAX)
		}

	case isa.DIRECTIVE_STRINGZ:
		for _, char := range operands[0].(String).Text {
			if char > 0x7F {
				return &OversizedCharacterError{line.position(declared + 1), char}
			}
		}
	}

	return nil
}
