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
	"bufio"
	"io"

	"github.com/golang/glog"

	"github.com/lassandro/golc3as/pkg/debugsym"
	"github.com/lassandro/golc3as/pkg/encoding"
)

// A Line is one non-blank source line and what the passes learn about it.
type Line struct {
	Number    int
	Text      string
	Tokens    []Token
	Positions []Cursor
	Address   uint16
	Skipped   bool
}

func NewLine(number int, text string) *Line {
	tokens, positions := Scan(text)

	for i := range positions {
		positions[i].Line = number
	}

	return &Line{
		Number:    number,
		Text:      text,
		Tokens:    tokens,
		Positions: positions,
	}
}

// declared counts the leading label declarations.
func (line *Line) declared() int {
	count := 0

	for _, tok := range line.Tokens {
		if _, ok := tok.(Label); !ok {
			break
		}

		count++
	}

	return count
}

// Labels returns the labels declared by the line.
func (line *Line) Labels() []Token {
	return line.Tokens[:line.declared()]
}

// Body returns the tokens following the label declarations.
func (line *Line) Body() []Token {
	return line.Tokens[line.declared():]
}

func (line *Line) position(index int) Cursor {
	if index < len(line.Positions) {
		return line.Positions[index]
	}

	if count := len(line.Positions); count > 0 {
		last := line.Positions[count-1]
		return Cursor{Line: line.Number, Column: last.Column + last.Size}
	}

	return Cursor{Line: line.Number, Column: 1}
}

// source returns the token at index as written in the line.
func (line *Line) source(index int) string {
	if index >= len(line.Positions) {
		return line.Tokens[index].String()
	}

	start := line.Positions[index].Column - 1
	end := start + line.Positions[index].Size

	if start < 0 || end > len(line.Text) || start >= end {
		return line.Tokens[index].String()
	}

	return line.Text[start:end]
}

// An Image is an assembled program: the words to load at Origin and the
// source location of each of them.
type Image struct {
	Origin  uint16
	Words   []uint16
	Symbols debugsym.Table
}

// WriteTo writes the origin and the words big-endian.
func (image *Image) WriteTo(w io.Writer) (int64, error) {
	return encoding.WriteImage(w, image.Origin, image.Words)
}

// A Session assembles one translation unit. Its label table and counters are
// not shared with other sessions.
type Session struct {
	Source   string
	Labels   *LabelTable
	Program  []*Line
	Warnings []error
	Origin   uint16

	originFound bool
	endFound    bool
}

func NewSession(source string) *Session {
	return &Session{
		Source: source,
		Labels: NewLabelTable(),
	}
}

// Read tokenizes every non-blank line of r into the session's program.
func (session *Session) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	number := 0

	for scanner.Scan() {
		number++

		line := NewLine(number, scanner.Text())

		if len(line.Tokens) == 0 {
			continue
		}

		session.Program = append(session.Program, line)
	}

	return scanner.Err()
}

// Assemble runs every pass over r and stops at the first fatal error.
// Warnings are kept in session.Warnings.
func (session *Session) Assemble(r io.Reader) (*Image, error) {
	if err := session.Read(r); err != nil {
		return nil, err
	}

	glog.V(1).Infof("%s: %d lines read", session.Source, len(session.Program))

	for _, line := range session.Program {
		if err := session.Validate(line); err != nil {
			if warning, ok := err.(Warning); ok && warning.IsWarning() {
				session.Warnings = append(session.Warnings, err)
				continue
			}

			return nil, err
		}
	}

	if err := session.Resolve(); err != nil {
		return nil, err
	}

	glog.V(1).Infof(
		"%s: %d labels resolved", session.Source, len(session.Labels.Names()),
	)

	image := &Image{Origin: session.Origin}

	for _, line := range session.Program {
		if line.Skipped {
			continue
		}

		words, err := Encode(line, session.Labels)

		if err != nil {
			return nil, err
		}

		for i := range words {
			address := line.Address + uint16(i)

			if err := image.Symbols.Add(address, session.Source, line.Number); err != nil {
				return nil, err
			}
		}

		image.Words = append(image.Words, words...)
	}

	for _, name := range session.Labels.Names() {
		address, _ := session.Labels.Lookup(name)
		image.Symbols.Label(name, address)
	}

	glog.V(1).Infof(
		"%s: %d words at %#04x", session.Source, len(image.Words), image.Origin,
	)

	return image, nil
}

// Assemble assembles r in a fresh session named source.
func Assemble(source string, r io.Reader) (*Image, []error, error) {
	session := NewSession(source)
	image, err := session.Assemble(r)
	return image, session.Warnings, err
}
