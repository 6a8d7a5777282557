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

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lassandro/golc3as/pkg/assembler"
)

func prefix(path string) string {
	name := filepath.Base(path)

	if path == "-" {
		name = "<stdin>"
	}

	if colorEnabled {
		return fmt.Sprintf("\033[1m%s:\033[0m", name)
	}

	return name + ":"
}

// underline marks a token with a caret under its first byte followed by
// tildes for the rest.
func underline(cursor assembler.Cursor) string {
	tail := cursor.Size - 1

	if tail < 0 {
		tail = 0
	}

	underlinefmt := fmt.Sprintf(
		"%% %ds%s", cursor.Column, strings.Repeat("~", tail),
	)

	return fmt.Sprintf(underlinefmt, "^")
}

// diagnostic formats err with the offending source line when the error
// carries a position.
func diagnostic(lines []string, err error) string {
	var tokenErr assembler.TokenError

	if !errors.As(err, &tokenErr) {
		return err.Error()
	}

	cursor := tokenErr.GetPosition()

	if cursor.Line < 1 || cursor.Line > len(lines) {
		return err.Error()
	}

	line := strings.TrimRight(lines[cursor.Line-1], "\r")
	caret := underline(cursor)

	if colorEnabled {
		caret = "\033[31m" + caret + "\033[0m"
	}

	return fmt.Sprintf("%s\n%s\n%s", err, line, caret)
}
