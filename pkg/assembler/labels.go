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
	"errors"
	"sort"
)

var (
	ErrLabelDeclared = errors.New("Label already declared")
	ErrLabelBound    = errors.New("Label already bound")
	ErrLabelUnknown  = errors.New("Label not declared")
)

type labelEntry struct {
	address uint16
	bound   bool
}

// A LabelTable maps case-sensitive label names to addresses. Names are
// declared during validation and bound once during resolution.
type LabelTable struct {
	entries map[string]*labelEntry
}

func NewLabelTable() *LabelTable {
	return &LabelTable{entries: make(map[string]*labelEntry)}
}

func (table *LabelTable) Declare(name string) error {
	if _, exists := table.entries[name]; exists {
		return ErrLabelDeclared
	}

	table.entries[name] = &labelEntry{}
	return nil
}

func (table *LabelTable) Bind(name string, address uint16) error {
	entry, exists := table.entries[name]

	if !exists {
		return ErrLabelUnknown
	} else if entry.bound {
		return ErrLabelBound
	}

	entry.address = address
	entry.bound = true
	return nil
}

// Lookup returns the address of a bound label.
func (table *LabelTable) Lookup(name string) (uint16, bool) {
	if entry, exists := table.entries[name]; exists && entry.bound {
		return entry.address, true
	}

	return 0, false
}

// Contains reports whether name was declared, bound or not.
func (table *LabelTable) Contains(name string) bool {
	_, exists := table.entries[name]
	return exists
}

// Names returns the bound labels ordered by address, then by name.
func (table *LabelTable) Names() []string {
	names := make([]string, 0, len(table.entries))

	for name, entry := range table.entries {
		if entry.bound {
			names = append(names, name)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		a := table.entries[names[i]].address
		b := table.entries[names[j]].address

		if a != b {
			return a < b
		}

		return names[i] < names[j]
	})

	return names
}
