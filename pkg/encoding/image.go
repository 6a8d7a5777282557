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
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

var ErrTruncatedImage = errors.New("Image ends in the middle of a word")
var ErrEmptyImage = errors.New("Image is missing its origin word")

// WriteImage writes origin followed by words, every word big-endian.
func WriteImage(w io.Writer, origin uint16, words []uint16) (int64, error) {
	buffer := bufio.NewWriter(w)

	if err := binary.Write(buffer, binary.BigEndian, origin); err != nil {
		return 0, err
	}

	if err := binary.Write(buffer, binary.BigEndian, words); err != nil {
		return 0, err
	}

	if err := buffer.Flush(); err != nil {
		return 0, err
	}

	return int64(2 * (len(words) + 1)), nil
}

// ReadImage reads an image written by WriteImage.
func ReadImage(r io.Reader) (origin uint16, words []uint16, err error) {
	reader := bufio.NewReader(r)
	scratch := make([]byte, 2)

	if _, err = io.ReadFull(reader, scratch); err == io.EOF {
		return 0, nil, ErrEmptyImage
	} else if err == io.ErrUnexpectedEOF {
		return 0, nil, ErrTruncatedImage
	} else if err != nil {
		return 0, nil, err
	}

	origin = binary.BigEndian.Uint16(scratch)

	for {
		_, err = io.ReadFull(reader, scratch)

		if err == io.EOF {
			return origin, words, nil
		} else if err == io.ErrUnexpectedEOF {
			return 0, nil, ErrTruncatedImage
		} else if err != nil {
			return 0, nil, err
		}

		words = append(words, binary.BigEndian.Uint16(scratch))
	}
}
