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

package machine_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/lassandro/golc3as/pkg/machine"
)

type testMachineState struct {
	Registers [8]uint16
	Program   uint16
	Privilege bool
	Priority  uint16
	Condition uint16
	Memory    map[uint16]uint16
	Stack     uint16
	Halted    bool
}

type testCase struct {
	Name     string
	Steps    uint
	Keyboard string
	Display  string
	Input    testMachineState
	Output   testMachineState
}

func testMachineSuccess(t *testing.T, test *testCase) {
	if test.Input.Priority > 0x7 {
		panic("Priority must be 0x7 or lower")
	}

	if test.Input.Condition > 0x7 {
		panic("Condition must be 0x7 or lower")
	}

	if test.Input.Memory == nil && test.Output.Memory == nil {
		panic("No memory maps provided")
	}

	var mc machine.Machine
	var devices machine.DeviceHandler
	var displayBuf bytes.Buffer

	if len(test.Keyboard) > 0 {
		devices.Keyboard = bufio.NewReader(
			bytes.NewReader([]byte(test.Keyboard)),
		)
	}

	if len(test.Display) > 0 {
		devices.Display = bufio.NewWriter(&displayBuf)
	}

	if devices.Keyboard != nil || devices.Display != nil {
		mc.Devices = &devices
	}

	mc.State.Reset()
	mc.State.Registers = test.Input.Registers
	mc.State.Program = test.Input.Program
	mc.State.Stack = test.Input.Stack

	if test.Input.Privilege {
		mc.State.Procstat = machine.PSR_PRIVILEGE
	} else {
		mc.State.Procstat = 0
	}
	mc.State.Procstat |= test.Input.Priority << 8
	mc.State.Procstat |= test.Input.Condition

	for addr, value := range test.Input.Memory {
		mc.State.Memory[addr] = value
	}

	if test.Steps == 0 {
		test.Steps = 1
	}

	for i := uint(0); i < test.Steps; i++ {
		if err := mc.Step(); err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
	}

	for i := 0; i < 8; i++ {
		want := test.Output.Registers[i]
		have := mc.State.Registers[i]
		if have != want {
			t.Errorf(
				"Register mismatch"+
					"\nwant:%#04x (test.Output.Registers[%d])\nhave:%#04x",
				want,
				i,
				have,
			)
		}
	}

	if mc.State.Program != test.Output.Program {
		t.Errorf(
			"Program register mismatch"+
				"\nwant:%#04x (test.Output.Program)\nhave:%#04x",
			test.Output.Program,
			mc.State.Program,
		)
	}

	if privileged := mc.State.Procstat&machine.PSR_PRIVILEGE != 0; privileged != test.Output.Privilege {
		t.Errorf(
			"Privilege level mismatch"+
				"\nwant:%t (test.Output.Privilege)\nhave:%t",
			test.Output.Privilege,
			privileged,
		)
	}

	if have := ((mc.State.Procstat >> 8) & 0x7); have != test.Output.Priority {
		t.Errorf(
			"Priority level mismatch"+
				"\nwant:%#01x (test.Output.Priority)\nhave:%#01x",
			test.Output.Priority,
			have,
		)
	}

	if have := (mc.State.Procstat & 0x7); have != test.Output.Condition {
		t.Errorf(
			"Condition flag mismatch"+
				"\nwant:%#03b (test.Output.Condition)\nhave:%#03b",
			test.Output.Condition,
			have,
		)
	}

	if have := mc.State.Stack; have != test.Output.Stack {
		t.Errorf(
			"Saved stack mismatch"+
				"\nwant:%#04x (test.Output.Stack)\nhave:%#04x",
			test.Output.Stack,
			have,
		)
	}

	if mc.Halted != test.Output.Halted {
		t.Errorf(
			"Halt state mismatch\nwant:%t (test.Output.Halted)\nhave:%t",
			test.Output.Halted,
			mc.Halted,
		)
	}

	for i, value := range mc.State.Memory {
		input, expectingInput := test.Input.Memory[uint16(i)]
		output, expectingOutput := test.Output.Memory[uint16(i)]

		if expectingOutput {
			// Value was supposed to change
			if value != output {
				t.Fatalf(
					"Memory value mismatch"+
						"\nwant:%#02x (test.Output.Memory[%#04x])\nhave:%#02x",
					output,
					i,
					value,
				)
			}
		} else if expectingInput {
			// Value was supposed to remain
			if value != input {
				t.Fatalf(
					"Memory value mismatch"+
						"\nwant:%#02x (test.Input.Memory[%#04x])\nhave:%#02x",
					input,
					i,
					value,
				)
			}
		} else if value != 0 {
			// Value was expected to remain unitialized
			t.Fatalf(
				"Memory unexpectedly changed"+
					"\nwant:0x00 (test.Output.Memory[%#04x])\nhave:%#02x",
				i,
				value,
			)
		}
	}

	if len(test.Display) > 0 {
		if have := displayBuf.String(); have != test.Display {
			t.Errorf(
				"Display output mismatch"+
					"\nwant:%q (test.Display)\nhave:%q",
				test.Display,
				have,
			)
		}
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testMachineSuccess(t, &test)
			})
		}
	})
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestAdd(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "ADD SR2 Negative",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE, // DR
					1: 0x0001, // SR1
					2: 0x8001, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b100,
				Registers: [8]uint16{
					0: 0x8002, // DR
					1: 0x0001, // SR1
					2: 0x8001, // SR2
				},
			},
		},
		{
			Name: "ADD Overflow SR2 Zero",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE, // DR
					1: 0xFFFF, // SR1
					2: 0x0001, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b010,
				Registers: [8]uint16{
					0: 0x0000, // DR
					1: 0xFFFF, // SR1
					2: 0x0001, // SR2
				},
			},
		},
		{
			Name: "ADD imm5 Negative",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xCAFE, // DR
					1: 0x0005, // SR1
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0001_000_001_1_11111,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{
					0: 0x0004, // DR
					1: 0x0005, // SR1
				},
			},
		},
	})
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise and
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise and
// XOR  |1001    |DR   |SR1  |0|00 |SR2   | Register  exclusive or
// XOR  |1001    |DR   |SR1  |1|imm5      | Immediate exclusive or
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestLogic(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "AND SR2",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0x0F0F, // SR1
					2: 0x00FF, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{
					0: 0x000F, // DR
					1: 0x0F0F, // SR1
					2: 0x00FF, // SR2
				},
			},
		},
		{
			Name: "AND SR2 High Register",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0xFFFF, // SR1
					4: 0x8000, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_000_001_000_100,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b100,
				Registers: [8]uint16{
					0: 0x8000, // DR
					1: 0xFFFF, // SR1
					4: 0x8000, // SR2
				},
			},
		},
		{
			Name: "AND imm5 Clear",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0x1234, // DR, SR1
				},
				Memory: map[uint16]uint16{
					0x3000: 0b0101_000_000_1_00000,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b010,
			},
		},
		{
			Name: "XOR SR2",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0x00FF, // SR1
					2: 0x0F0F, // SR2
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1001_000_001_000_010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{
					0: 0x0FF0, // DR
					1: 0x00FF, // SR1
					2: 0x0F0F, // SR2
				},
			},
		},
		{
			Name: "NOT",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					1: 0x00FF, // SR
				},
				Memory: map[uint16]uint16{
					0x3000: 0b1001_000_001_1_11111,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b100,
				Registers: [8]uint16{
					0: 0xFF00, // DR
					1: 0x00FF, // SR
				},
			},
		},
	})
}

// LSHF |1101    |DR   |SR   |0|0|imm4    | Shift left
// RSHFL|1101    |DR   |SR   |0|1|imm4    | Shift right logical
// RSHFA|1101    |DR   |SR   |1|1|imm4    | Shift right arithmetic
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestShift(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "LSHF",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{1: 0x0123},
				Memory: map[uint16]uint16{
					0x3000: 0b1101_000_001_00_0100,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{0: 0x1230, 1: 0x0123},
			},
		},
		{
			Name: "RSHFL",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{1: 0x8000},
				Memory: map[uint16]uint16{
					0x3000: 0b1101_000_001_01_0100,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{0: 0x0800, 1: 0x8000},
			},
		},
		{
			Name: "RSHFA",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{1: 0x8000},
				Memory: map[uint16]uint16{
					0x3000: 0b1101_000_001_11_0100,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b100,
				Registers: [8]uint16{0: 0xF800, 1: 0x8000},
			},
		},
		{
			Name: "Illegal Shift",
			Input: testMachineState{
				Program:   0x3000,
				Condition: 0b010,
				Stack:     0x3000, // SSP
				Registers: [8]uint16{
					6: 0xFE00, // USP
				},
				Memory: map[uint16]uint16{
					0x0101: 0x6000,
					0x3000: 0b1101_000_001_10_0100,
				},
			},
			Output: testMachineState{
				Privilege: true,
				Program:   0x6000,
				Condition: 0b010,
				Stack:     0xFE00, // USP
				Registers: [8]uint16{
					6: 0x2FFE, // SSP
				},
				Memory: map[uint16]uint16{
					0x2FFF: 0x0002, // Procstat
					0x2FFE: 0x3001, // Program
				},
			},
		},
	})
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestBranch(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "BRz Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: 0b010,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_010_000000101,
				},
			},
			Output: testMachineState{
				Program:   0x3005,
				Condition: 0b010,
			},
		},
		{
			Name: "BRn Not Taken",
			Input: testMachineState{
				Program:   0x3000,
				Condition: 0b001,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_100_000000101,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
			},
		},
		{
			Name: "BRnzp Backwards",
			Input: testMachineState{
				Program:   0x3000,
				Condition: 0b010,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_111_111111110,
				},
			},
			Output: testMachineState{
				Program:   0x2FFE,
				Condition: 0b010,
			},
		},
		{
			Name: "BRnzp Self",
			Input: testMachineState{
				Program:   0x3000,
				Condition: 0b100,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_111_000000000,
				},
			},
			Output: testMachineState{
				Program:   0x3000,
				Condition: 0b100,
			},
		},
		{
			Name: "No Condition",
			Input: testMachineState{
				Program:   0x3000,
				Condition: 0b010,
				Memory: map[uint16]uint16{
					0x3000: 0b0000_000_000000101,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b010,
			},
		},
	})
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestJump(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "JMP",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{2: 0x4000},
				Memory: map[uint16]uint16{
					0x3000: 0b1100_000_010_000000,
				},
			},
			Output: testMachineState{
				Program:   0x4000,
				Registers: [8]uint16{2: 0x4000},
			},
		},
		{
			Name: "RET",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{7: 0x3050},
				Memory: map[uint16]uint16{
					0x3000: 0b1100_000_111_000000,
				},
			},
			Output: testMachineState{
				Program:   0x3050,
				Registers: [8]uint16{7: 0x3050},
			},
		},
		{
			Name: "JSR Forward",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0100_1_00000010000,
				},
			},
			Output: testMachineState{
				Program:   0x3010,
				Registers: [8]uint16{7: 0x3001},
			},
		},
		{
			Name: "JSR Backwards",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0100_1_11111111111,
				},
			},
			Output: testMachineState{
				Program:   0x2FFF,
				Registers: [8]uint16{7: 0x3001},
			},
		},
		{
			Name: "JSRR",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{3: 0x5000},
				Memory: map[uint16]uint16{
					0x3000: 0b0100_0_00_011_000000,
				},
			},
			Output: testMachineState{
				Program:   0x5000,
				Registers: [8]uint16{3: 0x5000, 7: 0x3001},
			},
		},
		{
			Name: "JSRR R7",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{7: 0x5000},
				Memory: map[uint16]uint16{
					0x3000: 0b0100_0_00_111_000000,
				},
			},
			Output: testMachineState{
				Program:   0x5000,
				Registers: [8]uint16{7: 0x3001},
			},
		},
	})
}

func TestLoadStore(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "LD",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b0010_000_000000010,
					0x3002: 0xBEEF,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b100,
				Registers: [8]uint16{0: 0xBEEF},
			},
		},
		{
			Name: "LDI",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b1010_001_000000001,
					0x3001: 0x4000,
					0x4000: 0x0042,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{1: 0x0042},
			},
		},
		{
			Name: "LDR Negative Offset",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{3: 0x4001},
				Memory: map[uint16]uint16{
					0x3000: 0b0110_010_011_111111,
					0x4000: 0x7FFF,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{2: 0x7FFF, 3: 0x4001},
			},
		},
		{
			Name: "LEA",
			Input: testMachineState{
				Program: 0x3000,
				Memory: map[uint16]uint16{
					0x3000: 0b1110_100_111111111,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Condition: 0b001,
				Registers: [8]uint16{4: 0x2FFF},
			},
		},
		{
			Name: "ST",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{5: 0xCAFE},
				Memory: map[uint16]uint16{
					0x3000: 0b0011_101_000000011,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{5: 0xCAFE},
				Memory: map[uint16]uint16{
					0x3003: 0xCAFE,
				},
			},
		},
		{
			Name: "STI",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{6: 0x1234},
				Memory: map[uint16]uint16{
					0x3000: 0b1011_110_000000001,
					0x3001: 0x4000,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{6: 0x1234},
				Memory: map[uint16]uint16{
					0x4000: 0x1234,
				},
			},
		},
		{
			Name: "STR",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{0: 0x00AA, 1: 0x4000},
				Memory: map[uint16]uint16{
					0x3000: 0b0111_000_001_000010,
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{0: 0x00AA, 1: 0x4000},
				Memory: map[uint16]uint16{
					0x4002: 0x00AA,
				},
			},
		},
	})
}

// RTI  |1000    |000000000000            | Return from interrupt
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestRti(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "RTI To User Mode",
			Input: testMachineState{
				Privilege: true,
				Program:   0x3000,
				Stack:     0xFE00, // USP
				Registers: [8]uint16{
					6: 0x2FFE, // SSP
				},
				Memory: map[uint16]uint16{
					0x2FFE: 0x3005, // Program
					0x2FFF: 0x0001, // Procstat
					0x3000: 0b1000_000000000000,
				},
			},
			Output: testMachineState{
				Program:   0x3005,
				Condition: 0b001,
				Stack:     0x3000, // SSP
				Registers: [8]uint16{
					6: 0xFE00, // USP
				},
			},
		},
	})
}

// TRAP |1111    |0000   |trapvect8       | System call
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestTrap(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Installed Routine",
			Input: testMachineState{
				Program: 0x3000,
				Stack:   0x3000, // SSP
				Registers: [8]uint16{
					6: 0xFE00, // USP
					7: 0xCAFE,
				},
				Memory: map[uint16]uint16{
					0x0025: 0x6000, // TRAP Vector value
					0x3000: 0xF025,
				},
			},
			Output: testMachineState{
				Privilege: true,
				Program:   0x6000,
				Stack:     0xFE00, // USP
				Registers: [8]uint16{
					6: 0x3000, // SSP
					7: 0x3001,
				},
			},
		},
		{
			Name:    "OUT",
			Display: "a",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{0: 'a'},
				Memory:    map[uint16]uint16{0x3000: 0xF021},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{0: 'a', 7: 0x3001},
			},
		},
		{
			Name:    "PUTS",
			Display: "hi",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{0: 0x4000},
				Memory: map[uint16]uint16{
					0x3000: 0xF022,
					0x4000: 'h',
					0x4001: 'i',
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{0: 0x4000, 7: 0x3001},
			},
		},
		{
			Name:    "PUTSP",
			Display: "hi!",
			Input: testMachineState{
				Program:   0x3000,
				Registers: [8]uint16{0: 0x4000},
				Memory: map[uint16]uint16{
					0x3000: 0xF024,
					0x4000: 'i'<<8 | 'h',
					0x4001: '!',
				},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{0: 0x4000, 7: 0x3001},
			},
		},
		{
			Name:     "GETC",
			Keyboard: "xyz",
			Input: testMachineState{
				Program: 0x3000,
				Memory:  map[uint16]uint16{0x3000: 0xF020},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{0: 'x', 7: 0x3001},
			},
		},
		{
			Name:     "IN",
			Keyboard: "y",
			Display:  machine.PROMPT_IN + "y",
			Input: testMachineState{
				Program: 0x3000,
				Memory:  map[uint16]uint16{0x3000: 0xF023},
			},
			Output: testMachineState{
				Program:   0x3001,
				Registers: [8]uint16{0: 'y', 7: 0x3001},
			},
		},
		{
			Name:  "HALT",
			Steps: 3,
			Input: testMachineState{
				Program: 0x3000,
				Memory:  map[uint16]uint16{0x3000: 0xF025},
			},
			Output: testMachineState{
				Program:   0x3001,
				Halted:    true,
				Registers: [8]uint16{7: 0x3001},
			},
		},
	})
}

func TestKeyboard(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:     "Read Keyboard",
			Steps:    2,
			Keyboard: "foobar",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xDEAD, // LDR[0] DR
					1: 0xFE00, // LDR[0] BaseR (Keyboard Status Register)
					2: 0xDEAD, // LDR[1] DR
					3: 0xFE02, // LDR[1] BaseR (Keyboard Data Register)
				},
				Memory: map[uint16]uint16{
					// LDR R0 R1 0x0
					0x3000: 0b0110_000_001_000000,
					// LDR R2 R3 0x0
					0x3001: 0b0110_010_011_000000,
				},
			},
			Output: testMachineState{
				Program:   0x3002,
				Condition: 0b001, // Positive LDR[1] DR (#102)
				Registers: [8]uint16{
					0: 0x8000, // LDR[0] DR (KBSR: 1 << 15)
					1: 0xFE00, // LDR[0] BaseR (Keyboard Status Register)
					2: 0x0066, // LDR[1] DR (KBDR: 'f', #102)
					3: 0xFE02, // LDR[1] BaseR (Keyboard Data Register)
				},
				Memory: map[uint16]uint16{
					// KBSR: cleared by reading KBDR
					0xFE00: 0x0000,
					// KBDR: 'f', #102
					0xFE02: 0x0066,
				},
			},
		},
	})
}

func TestDisplay(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:    "Write Display",
			Steps:   8,
			Display: "aaa",
			Input: testMachineState{
				Program: 0x3000,
				Registers: [8]uint16{
					0: 0xDEAD, // LDR DR
					1: 0xFE04, // LDR BaseR (Display Status Register)
					2: 0x0061, // STR SR ('a', #97)
					3: 0xFE06, // STR BaseR (Display Data Register)
					4: 0x3000, // JMP BaseR
				},
				Memory: map[uint16]uint16{
					// LDR R0 R1 0x0
					0x3000: 0b0110_000_001_000000,
					// STR R2 R3 0x0
					0x3001: 0b0111_010_011_000000,
					// JMP R4
					0x3002: 0b1100_000_100_000000,
				},
			},
			Output: testMachineState{
				Program:   0x3002,
				Condition: 0b100, // Negative LDR DR (1<<15)
				Registers: [8]uint16{
					0: 0x8000, // LDR DR (DSR: 1 << 15)
					1: 0xFE04, // LDR BaseR (Display Status Register)
					2: 0x0061, // STR SR ('a', #97)
					3: 0xFE06, // STR BaseR (Display Data Register)
					4: 0x3000, // JMP BaseR
				},
				Memory: map[uint16]uint16{
					// DSR: 1 << 15
					0xFE04: 0x8000,
					// DDR: Contains last written character
					0xFE06: 0x0061,
				},
			},
		},
	})
}
