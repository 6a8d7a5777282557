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

package encoding

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("Invalid numeric literal")

// Decodes a hexadecimal string in the formats: xFFFF, X1f, x-10, x+7
func DecodeHex(s string) (int, error) {
	if len(s) < 2 || (s[0] != 'x' && s[0] != 'X') {
		return 0, ErrInvalidNumber
	}

	return parseSigned(s[1:], 16)
}

// Decodes a base-10 string in the formats: #123, #-5, #+7
func DecodeInt(s string) (int, error) {
	if len(s) < 2 || s[0] != '#' {
		return 0, ErrInvalidNumber
	}

	return parseSigned(s[1:], 10)
}

// ParseNumber decodes a numeric literal written either in decimal with a
// '#' prefix or in hexadecimal with an 'x' prefix. Values must fit in 32 bits.
func ParseNumber(s string) (int, error) {
	if strings.HasPrefix(s, "#") {
		return DecodeInt(s)
	}

	return DecodeHex(s)
}

func parseSigned(digits string, base int) (int, error) {
	negative := false

	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}

	// ParseInt would otherwise accept a second sign or an underscore
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return 0, ErrInvalidNumber
	}

	if negative {
		digits = "-" + digits
	}

	result, err := strconv.ParseInt(digits, base, 32)

	if err != nil {
		return 0, err
	}

	return int(result), nil
}

// Truncate keeps the low width bits of the two's complement of value.
func Truncate(value int, width uint) uint16 {
	return uint16(value) & uint16((uint32(1)<<width)-1)
}

func SignExtend(value uint16, bitcount uint16) uint16 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= (0xFFFF << bitcount)
	}

	return value
}

func ZeroExtend(value uint16, bitcount uint16) uint16 {
	return value & uint16((uint32(1)<<bitcount)-1)
}
