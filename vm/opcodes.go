// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vm

import (
	"strconv"

	"github.com/pkg/errors"
)

// Opcode is the operation part of an opcode word (word % 100).
type Opcode Cell

// Intcode operations.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpIfTrue
	OpJumpIfFalse
	OpLessThan
	OpEquals
	OpAdjustBase
	OpHalt Opcode = 99
)

var opcodes = map[Opcode]string{
	OpAdd:         "add",
	OpMul:         "mul",
	OpIn:          "in",
	OpOut:         "out",
	OpJumpIfTrue:  "jnz",
	OpJumpIfFalse: "jz",
	OpLessThan:    "lt",
	OpEquals:      "eq",
	OpAdjustBase:  "arb",
	OpHalt:        "hlt",
}

func (op Opcode) String() string {
	if s, ok := opcodes[op]; ok {
		return s
	}
	return "op(" + strconv.FormatInt(int64(op), 10) + ")"
}

// ArgCount returns the number of arguments expected by op. The boolean result
// is false if op is not a known opcode.
func ArgCount(op Opcode) (int, bool) {
	switch op {
	case OpHalt:
		return 0, true
	case OpIn, OpOut, OpAdjustBase:
		return 1, true
	case OpJumpIfTrue, OpJumpIfFalse:
		return 2, true
	case OpAdd, OpMul, OpLessThan, OpEquals:
		return 3, true
	}
	return 0, false
}

// Mode is an argument addressing mode.
type Mode int

// Addressing modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "pos"
	case Immediate:
		return "imm"
	case Relative:
		return "rel"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Decode splits an opcode word into its operation and the addressing modes of
// its arguments. Digit positions not present in word default to Position.
// Mode digits past the argument count of the operation are ignored.
func Decode(word Cell) (Opcode, []Mode, error) {
	op := Opcode(word % 100)
	n, ok := ArgCount(op)
	if !ok {
		return op, nil, errors.Wrapf(ErrUnknownOpcode, "opcode word %d", word)
	}
	modes := make([]Mode, n)
	m := word / 100
	for k := range modes {
		switch d := Mode(m % 10); d {
		case Position, Immediate, Relative:
			modes[k] = d
		default:
			return op, nil, errors.Wrapf(ErrUnknownMode, "digit %d for argument %d of opcode word %d", d, k+1, word)
		}
		m /= 10
	}
	return op, modes, nil
}
