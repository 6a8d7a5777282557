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
	"strconv"

	"github.com/lassandro/golc3as/pkg/isa"
)

type Kind uint

const (
	TOKEN_INSTRUCTION Kind = iota
	TOKEN_REGISTER
	TOKEN_NUMBER
	TOKEN_LABEL
	TOKEN_PSEUDOOP
	TOKEN_TRAP
	TOKEN_STRING
	TOKEN_UNDEFINED
)

var kindNames = [...]string{
	TOKEN_INSTRUCTION: "Instruction",
	TOKEN_REGISTER:    "Register",
	TOKEN_NUMBER:      "Number",
	TOKEN_LABEL:       "Label",
	TOKEN_PSEUDOOP:    "PseudoOp",
	TOKEN_TRAP:        "Trap",
	TOKEN_STRING:      "String",
	TOKEN_UNDEFINED:   "Undefined",
}

func (kind Kind) String() string {
	if int(kind) < len(kindNames) {
		return kindNames[kind]
	}

	return "<invalid>"
}

// A Token is one classified word of a source line. The set of
// implementations is closed; consumers switch on the concrete type.
type Token interface {
	Kind() Kind
	String() string

	token()
}

type Instruction struct{ Op isa.InstructionType }
type Register struct{ Reg isa.RegisterType }
type Number struct{ Value int }
type Label struct{ Name string }
type PseudoOp struct{ Op isa.DirectiveType }
type Trap struct{ Trap isa.TrapType }
type String struct{ Text string }

// Undefined holds text that matched no other kind, verbatim.
type Undefined struct{ Text string }

func (Instruction) Kind() Kind { return TOKEN_INSTRUCTION }
func (Register) Kind() Kind    { return TOKEN_REGISTER }
func (Number) Kind() Kind      { return TOKEN_NUMBER }
func (Label) Kind() Kind       { return TOKEN_LABEL }
func (PseudoOp) Kind() Kind    { return TOKEN_PSEUDOOP }
func (Trap) Kind() Kind        { return TOKEN_TRAP }
func (String) Kind() Kind      { return TOKEN_STRING }
func (Undefined) Kind() Kind   { return TOKEN_UNDEFINED }

func (tok Instruction) String() string { return tok.Op.String() }
func (tok Register) String() string    { return tok.Reg.String() }
func (tok Number) String() string      { return "#" + strconv.Itoa(tok.Value) }
func (tok Label) String() string       { return tok.Name }
func (tok PseudoOp) String() string    { return tok.Op.String() }
func (tok Trap) String() string        { return tok.Trap.String() }
func (tok String) String() string      { return strconv.Quote(tok.Text) }
func (tok Undefined) String() string   { return tok.Text }

func (Instruction) token() {}
func (Register) token()    {}
func (Number) token()      {}
func (Label) token()       {}
func (PseudoOp) token()    {}
func (Trap) token()        {}
func (String) token()      {}
func (Undefined) token()   {}

// Kinds lists the kind of every token in order.
func Kinds(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))

	for i, tok := range tokens {
		kinds[i] = tok.Kind()
	}

	return kinds
}
