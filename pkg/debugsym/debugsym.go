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

// Package debugsym maps image addresses back to the source lines that
// produced them.
package debugsym

import (
	"encoding/gob"
	"fmt"
	"io"
	"sort"
)

type Symbol struct {
	Address uint16
	File    string
	Line    int
}

func (sym Symbol) String() string {
	return fmt.Sprintf("%#04x %s:%d", sym.Address, sym.File, sym.Line)
}

// A Table holds symbols in increasing address order.
type Table struct {
	Symbols []Symbol
	Labels  map[string]uint16
}

type OutOfOrderError struct {
	Previous uint16
	Received uint16
}

func (err *OutOfOrderError) Error() string {
	return fmt.Sprintf(
		"Symbol address out of order\n\twant:>%#04x\n\thave:%#04x",
		err.Previous,
		err.Received,
	)
}

// Add appends a symbol. Addresses must be strictly increasing.
func (table *Table) Add(address uint16, file string, line int) error {
	if count := len(table.Symbols); count > 0 {
		if last := table.Symbols[count-1].Address; address <= last {
			return &OutOfOrderError{last, address}
		}
	}

	table.Symbols = append(table.Symbols, Symbol{address, file, line})
	return nil
}

// Label records the address of a named label for display by tools.
func (table *Table) Label(name string, address uint16) {
	if table.Labels == nil {
		table.Labels = make(map[string]uint16)
	}

	table.Labels[name] = address
}

// Lookup returns the symbol recorded for address.
func (table *Table) Lookup(address uint16) (Symbol, bool) {
	i := sort.Search(len(table.Symbols), func(i int) bool {
		return table.Symbols[i].Address >= address
	})

	if i < len(table.Symbols) && table.Symbols[i].Address == address {
		return table.Symbols[i], true
	}

	return Symbol{}, false
}

func (table *Table) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	err := gob.NewEncoder(counter).Encode(table)
	return counter.n, err
}

func (table *Table) ReadFrom(r io.Reader) (int64, error) {
	var decoded Table

	counter := &countingReader{r: r}

	if err := gob.NewDecoder(counter).Decode(&decoded); err != nil {
		return counter.n, err
	}

	for i := 1; i < len(decoded.Symbols); i++ {
		if decoded.Symbols[i].Address <= decoded.Symbols[i-1].Address {
			return counter.n, &OutOfOrderError{
				decoded.Symbols[i-1].Address,
				decoded.Symbols[i].Address,
			}
		}
	}

	*table = decoded
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
