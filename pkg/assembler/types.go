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
	"fmt"
	"strings"

	"github.com/lassandro/golc3as/pkg/isa"
)

// A Cursor locates a token in the source. Line and Column are 1-based, Size
// counts bytes.
type Cursor struct {
	Line   int
	Column int
	Size   int
}

type TokenError interface {
	GetPosition() Cursor
}

// A Warning is a diagnostic about content the assembler ignored.
type Warning interface {
	error
	TokenError
	IsWarning() bool
}

func formatKinds(kinds []Kind) string {
	names := make([]string, len(kinds))

	for i, kind := range kinds {
		names[i] = kind.String()
	}

	return "[" + strings.Join(names, " ") + "]"
}

type InvalidTokenError struct {
	Position   Cursor
	Received   string
	Suggestion string
}

func (err *InvalidTokenError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidTokenError) Error() string {
	if err.Suggestion != "" {
		return fmt.Sprintf(
			"%02d:%02d: Invalid token '%s'\n\twant:%s\n\thave:%s",
			err.Position.Line,
			err.Position.Column,
			err.Received,
			err.Suggestion,
			err.Received,
		)
	}

	return fmt.Sprintf(
		"%02d:%02d: Invalid token '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type MalformedStringError struct {
	Position Cursor
	Received string
}

func (err *MalformedStringError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedStringError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid string literal %s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidLabelNameError struct {
	Position Cursor
	Received string
}

func (err *InvalidLabelNameError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLabelNameError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid label name '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidPseudoOpError struct {
	Position Cursor
	Received isa.DirectiveType
}

func (err *InvalidPseudoOpError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidPseudoOpError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s cannot follow a label",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidFormatError struct {
	Position Cursor
	Keyword  string
	Want     [][]Kind
	Have     []Kind
}

func (err *InvalidFormatError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidFormatError) Error() string {
	wantStrings := make([]string, len(err.Want))

	for i, kinds := range err.Want {
		wantStrings[i] = formatKinds(kinds)
	}

	return fmt.Sprintf(
		"%02d:%02d: Invalid operands for %s\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Keyword,
		strings.Join(wantStrings, " or "),
		formatKinds(err.Have),
	)
}

type OutOfRangeError struct {
	Position Cursor
	Keyword  string
	Min      int
	Max      int
	Received int
}

func (err *OutOfRangeError) GetPosition() Cursor {
	return err.Position
}

func (err *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Literal exceeds allowed size for %s\n\twant:[%d, %d]\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Keyword,
		err.Min,
		err.Max,
		err.Received,
	)
}

type TrapDisabledError struct {
	Position Cursor
}

func (err *TrapDisabledError) GetPosition() Cursor {
	return err.Position
}

func (err *TrapDisabledError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: TRAP with a literal vector is disabled, "+
			"use GETC, OUT, PUTS, IN, PUTSP or HALT",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidTrapCallError struct {
	Position Cursor
	Trap     isa.TrapType
	Received int
}

func (err *InvalidTrapCallError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidTrapCallError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s takes no operands\n\twant:0\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Trap,
		err.Received,
	)
}

type OversizedCharacterError struct {
	Position Cursor
	Received rune
}

func (err *OversizedCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedCharacterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Character %q exceeds ASCII limit",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type DuplicateLabelError struct {
	Position Cursor
	Received string
}

func (err *DuplicateLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *DuplicateLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownLabelError struct {
	Position Cursor
	Received string
}

func (err *UnknownLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type LabelTooFarError struct {
	Position Cursor
	Keyword  string
	Received string
	Min      int
	Max      int
	Offset   int
}

func (err *LabelTooFarError) GetPosition() Cursor {
	return err.Position
}

func (err *LabelTooFarError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Label '%s' exceeds allowed distance for %s\n"+
			"\twant:[%d, %d]\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Keyword,
		err.Min,
		err.Max,
		err.Offset,
	)
}

type OutOfMemoryError struct {
	Position Cursor
	Received int
}

func (err *OutOfMemoryError) GetPosition() Cursor {
	return err.Position
}

func (err *OutOfMemoryError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Program exceeds user memory\n\twant:<=%#04x\n\thave:%#04x",
		err.Position.Line,
		err.Position.Column,
		isa.MEMSPACE_DEVICES,
		err.Received,
	)
}

type MissingOrigError struct{}

func (err *MissingOrigError) Error() string {
	return "Missing .ORIG directive"
}

type MissingEndError struct{}

func (err *MissingEndError) Error() string {
	return "Missing .END directive"
}

type DoubleOrigWarning struct {
	Position Cursor
}

func (err *DoubleOrigWarning) GetPosition() Cursor {
	return err.Position
}

func (err *DoubleOrigWarning) IsWarning() bool {
	return true
}

func (err *DoubleOrigWarning) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: .ORIG already declared, ignoring line",
		err.Position.Line,
		err.Position.Column,
	)
}

type InstructionBeforeOrigWarning struct {
	Position Cursor
}

func (err *InstructionBeforeOrigWarning) GetPosition() Cursor {
	return err.Position
}

func (err *InstructionBeforeOrigWarning) IsWarning() bool {
	return true
}

func (err *InstructionBeforeOrigWarning) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Content before .ORIG, ignoring line",
		err.Position.Line,
		err.Position.Column,
	)
}

type ContentAfterEndWarning struct {
	Position Cursor
}

func (err *ContentAfterEndWarning) GetPosition() Cursor {
	return err.Position
}

func (err *ContentAfterEndWarning) IsWarning() bool {
	return true
}

func (err *ContentAfterEndWarning) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Content after .END, ignoring line",
		err.Position.Line,
		err.Position.Column,
	)
}
