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


package asm

import (
	"io"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

var mnemonics = map[string]vm.Opcode{
	"add":  vm.OpAdd,
	"mul":  vm.OpMul,
	"in":   vm.OpIn,
	"out":  vm.OpOut,
	"jnz":  vm.OpJumpIfTrue,
	"jt":   vm.OpJumpIfTrue,
	"jz":   vm.OpJumpIfFalse,
	"jf":   vm.OpJumpIfFalse,
	"lt":   vm.OpLessThan,
	"eq":   vm.OpEquals,
	"arb":  vm.OpAdjustBase,
	"rb":   vm.OpAdjustBase,
	"hlt":  vm.OpHalt,
	"halt": vm.OpHalt,
}

// writeArg returns the index of the operand op writes to, or -1.
func writeArg(op vm.Opcode) int {
	switch op {
	case vm.OpAdd, vm.OpMul, vm.OpLessThan, vm.OpEquals:
		return 2
	case vm.OpIn:
		return 0
	}
	return -1
}

// ErrAsmEntry is a single assembler error.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

// ErrAsm is the error type returned by Assemble. It holds at most 10 entries.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, err := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	return newParser().Parse(name, r)
}

// encode returns the canonical opcode word for ins.
func encode(ins vm.Instruction) vm.Cell {
	w := vm.Cell(ins.Opcode())
	for k, a := range ins.Args() {
		w += vm.Cell(a.Mode) * pow10[k]
	}
	return w
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction.
//
// Words that do not decode to an instruction that Assemble would produce
// verbatim, including instructions truncated by the end of mem, are written
// as a .dat directive.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	if pc < 0 || pc >= len(mem) {
		return pc, io.EOF
	}
	ew := iox.NewErrWriter(w)
	ins, err := vm.DecodeAt(vm.Image(mem), vm.Cell(pc))
	if err == nil {
		args := ins.Args()
		if wa := writeArg(ins.Opcode()); pc+len(args) >= len(mem) ||
			encode(ins) != mem[pc] ||
			wa >= 0 && args[wa].Mode == vm.Immediate {
			err = vm.ErrUnknownOpcode
		}
	}
	if err != nil {
		ew.WriteString(".dat ")
		ew.WriteInt(int64(mem[pc]))
		return pc + 1, ew.Err
	}
	ew.WriteString(ins.String())
	return pc + 1 + len(ins.Args()), ew.Err
}

// DisassembleAll disassembles the cells in the given slice and writes them to
// w, one instruction per line. Each line is prefixed with a comment holding the
// instruction address plus base, so that the output can be fed back to
// Assemble.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		ew.WriteString("( ")
		ew.WriteInt(int64(base + pc))
		ew.WriteString(" )\t")
		pc, _ = Disassemble(mem, pc, ew)
		ew.WriteString("\n")
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
