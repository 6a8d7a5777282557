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

package machine

import (
	"bufio"
	"errors"
	"fmt"
)

var ErrInputClosed = errors.New("Keyboard input closed")
var ErrImageTooLarge = errors.New("Image does not fit in memory")

type DeviceHandler struct {
	Keyboard *bufio.Reader
	Display  *bufio.Writer
}

type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Procstat  uint16
	Stack     uint16
	Memory    [1 << 16]uint16
}

type Machine struct {
	Devices *DeviceHandler
	State   MachineState
	Halted  bool

	// First device failure seen during the current step
	fault error
}

// An ExceptionError is raised for an exception whose vector table entry is
// empty. Without a handler the machine cannot continue.
type ExceptionError struct {
	Vector  uint8
	Address uint16
}

func (err *ExceptionError) Error() string {
	switch err.Vector {
	case VECTOR_PRIVILEGE:
		return fmt.Sprintf("%#04x: Privilege mode violation", err.Address)
	case VECTOR_ILLEGAL:
		return fmt.Sprintf("%#04x: Illegal opcode", err.Address)
	}

	return fmt.Sprintf("%#04x: Unhandled exception %#02x", err.Address, err.Vector)
}
