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

// WordCount returns the number of words a validated line body emits.
func WordCount(body []Token) int {
	if len(body) == 0 {
		return 0
	}

	switch head := body[0].(type) {
	case Instruction, Trap:
		return 1
	case PseudoOp:
		switch head.Op {
		case isa.DIRECTIVE_FILL:
			return 1
		case isa.DIRECTIVE_BLKW:
			return body[1].(Number).Value
		case isa.DIRECTIVE_STRINGZ:
			return len(body[1].(String).Text) + 1
		}
	}

	return 0
}

// Resolve assigns an address to every line and binds every label, walking
// the validated program with a running counter.
func (session *Session) Resolve() error {
	if !session.originFound {
		return &MissingOrigError{}
	}

	counter := int(session.Origin)
	endFound := false

	for _, line := range session.Program {
		if line.Skipped {
			continue
		}

		for i, tok := range line.Labels() {
			name := tok.(Label).Name

			if err := session.Labels.Bind(name, uint16(counter)); err != nil {
				return &DuplicateLabelError{line.position(i), name}
			}
		}

		declared := line.declared()
		body := line.Body()

		for i, tok := range body {
			if label, ok := tok.(Label); ok && !session.Labels.Contains(label.Name) {
				return &UnknownLabelError{line.position(declared + i), label.Name}
			}
		}

		if isDirective(firstToken(body), isa.DIRECTIVE_END) {
			endFound = true
		}

		line.Address = uint16(counter)
		counter += WordCount(body)

		if counter > int(isa.MEMSPACE_DEVICES) {
			return &OutOfMemoryError{line.position(0), counter}
		}
	}

	if !endFound {
		return &MissingEndError{}
	}

	return nil
}

func firstToken(tokens []Token) Token {
	if len(tokens) == 0 {
		return nil
	}

	return tokens[0]
}
