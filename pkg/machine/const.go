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

// Exception vectors, offsets into MEMSPACE_INT_TABLE
const (
	VECTOR_PRIVILEGE uint8 = 0x00
	VECTOR_ILLEGAL   uint8 = 0x01
)

// Processor status word
const (
	PSR_PRIVILEGE uint16 = 1 << 15
	PSR_PRIORITY  uint16 = 0x7 << 8
	PSR_FLAGS     uint16 = 0x7

	// Keyboard and display status registers signal readiness in bit 15
	DEV_READY uint16 = 1 << 15
)

// Prompt written by the IN trap before reading a character
const PROMPT_IN = "Input a character> "
