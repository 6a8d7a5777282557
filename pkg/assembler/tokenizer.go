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
	"regexp"
	"strconv"

	"github.com/lassandro/golc3as/pkg/encoding"
	"github.com/lassandro/golc3as/pkg/isa"
)

var (
	numberPattern   = regexp.MustCompile(`^(#[+-]?[0-9]+|[xX][+-]?[0-9a-fA-F]+)$`)
	labelPattern    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	digitsPattern   = regexp.MustCompile(`^[0-9]+$`)
	registerPattern = regexp.MustCompile(`^[rR][0-9]+$`)
)

// Tokenize splits a source line into classified tokens. Comments and
// separators are dropped; a blank line yields no tokens.
func Tokenize(line string) []Token {
	tokens, _ := Scan(line)
	return tokens
}

// Scan is Tokenize that also reports where each token starts and how many
// bytes it spans. Cursor.Line is left for the caller to fill.
func Scan(line string) ([]Token, []Cursor) {
	var tokens []Token
	var positions []Cursor

	emit := func(start, end int, tok Token) {
		tokens = append(tokens, tok)
		positions = append(positions, Cursor{Column: start + 1, Size: end - start})
	}

	for i := 0; i < len(line); {
		char := line[i]

		switch {
		// Comments
		case char == ';':
			return tokens, positions

		// Operand separators
		case char == ',' || isSpace(char):
			i++

		// String literal
		case char == '"':
			end := scanString(line, i)
			emit(i, end, classifyString(line[i:end]))
			i = end

		default:
			start := i

			for i < len(line) && !isBoundary(line[i]) {
				i++
			}

			emit(start, i, classify(line[start:i]))
		}
	}

	return tokens, positions
}

func isBoundary(char byte) bool {
	return char == ';' || char == ',' || char == '"' ||
		isSpace(char)
}

// Only ASCII whitespace separates tokens, so multi-byte UTF-8 text stays whole.
func isSpace(char byte) bool {
	switch char {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

// scanString returns the index just past the quote closing the string that
// opens at start, or the end of the line when it is never closed.
func scanString(line string, start int) int {
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}

	return len(line)
}

func classifyString(raw string) Token {
	text, err := strconv.Unquote(raw)

	if err != nil {
		return Undefined{raw}
	}

	return String{text}
}

func classify(word string) Token {
	if keyword, ok := isa.Lookup(word); ok {
		switch keyword.Kind {
		case isa.KEYWORD_INSTRUCTION:
			return Instruction{keyword.Instruction}
		case isa.KEYWORD_DIRECTIVE:
			return PseudoOp{keyword.Directive}
		case isa.KEYWORD_REGISTER:
			return Register{keyword.Register}
		case isa.KEYWORD_TRAP:
			return Trap{keyword.Trap}
		}
	}

	if numberPattern.MatchString(word) {
		value, err := encoding.ParseNumber(word)

		if err != nil {
			return Undefined{word}
		}

		return Number{value}
	}

	if isLabelName(word) {
		return Label{word}
	}

	return Undefined{word}
}

func isLabelName(word string) bool {
	return labelPattern.MatchString(word) &&
		!digitsPattern.MatchString(word) &&
		!registerPattern.MatchString(word)
}
