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

import (
	"strings"

	"github.com/beevik/prefixtree/v2"
)

type KeywordKind uint

const (
	KEYWORD_INSTRUCTION KeywordKind = iota
	KEYWORD_DIRECTIVE
	KEYWORD_REGISTER
	KEYWORD_TRAP
)

// A Keyword is a reserved word of the assembly language. Only the field
// matching Kind is meaningful.
type Keyword struct {
	Kind        KeywordKind
	Instruction InstructionType
	Directive   DirectiveType
	Register    RegisterType
	Trap        TrapType
}

var keywords map[string]Keyword
var suggestions *prefixtree.Tree[string]

func init() {
	keywords = make(map[string]Keyword)
	suggestions = prefixtree.New[string]()

	add := func(name string, keyword Keyword) {
		keywords[strings.ToUpper(name)] = keyword
		suggestions.Add(strings.ToUpper(name), name)
	}

	for inst := InstructionType(0); inst < INSTRUCTION_COUNT; inst++ {
		add(inst.String(), Keyword{Kind: KEYWORD_INSTRUCTION, Instruction: inst})
	}

	for dir := DirectiveType(0); dir < DIRECTIVE_COUNT; dir++ {
		add(dir.String(), Keyword{Kind: KEYWORD_DIRECTIVE, Directive: dir})
	}

	for reg := RegisterType(0); reg < REGISTER_COUNT; reg++ {
		add(reg.String(), Keyword{Kind: KEYWORD_REGISTER, Register: reg})
	}

	for _, trap := range Traps {
		add(trap.String(), Keyword{Kind: KEYWORD_TRAP, Trap: trap})
	}
}

// Lookup reports the keyword spelled by text, ignoring case.
func Lookup(text string) (Keyword, bool) {
	keyword, ok := keywords[strings.ToUpper(text)]
	return keyword, ok
}

// Suggest returns the only keyword that text is a prefix of, ignoring case.
// It fails when text names no keyword or more than one.
func Suggest(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	name, err := suggestions.FindValue(strings.ToUpper(text))

	if err != nil {
		return "", false
	}

	return name, true
}
