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
	"strings"

	"github.com/pkg/errors"
)

// Arg is an instruction argument: a raw value and its addressing mode.
type Arg struct {
	Value Cell
	Mode  Mode
}

// String returns the argument in assembler syntax.
func (a Arg) String() string {
	s := strconv.FormatInt(int64(a.Value), 10)
	switch a.Mode {
	case Immediate:
		return "#" + s
	case Relative:
		return "@" + s
	}
	return s
}

// Instruction is a decoded instruction. The set of implementations is closed:
// Add, Mul, In, Out, JumpIfTrue, JumpIfFalse, LessThan, Equals, AdjustBase and
// Halt.
type Instruction interface {
	Opcode() Opcode
	// Args returns the instruction arguments in order.
	Args() []Arg
	// String returns the instruction in assembler syntax.
	String() string
	instruction()
}

type (
	// Add stores A + B in Dst.
	Add struct{ A, B, Dst Arg }
	// Mul stores A * B in Dst.
	Mul struct{ A, B, Dst Arg }
	// In stores the next input value in Dst.
	In struct{ Dst Arg }
	// Out emits Src.
	Out struct{ Src Arg }
	// JumpIfTrue jumps to Target if Test is not 0.
	JumpIfTrue struct{ Test, Target Arg }
	// JumpIfFalse jumps to Target if Test is 0.
	JumpIfFalse struct{ Test, Target Arg }
	// LessThan stores 1 in Dst if A < B, 0 otherwise.
	LessThan struct{ A, B, Dst Arg }
	// Equals stores 1 in Dst if A == B, 0 otherwise.
	Equals struct{ A, B, Dst Arg }
	// AdjustBase adds Delta to the relative base.
	AdjustBase struct{ Delta Arg }
	// Halt stops the VM.
	Halt struct{}
)

func (Add) Opcode() Opcode         { return OpAdd }
func (Mul) Opcode() Opcode         { return OpMul }
func (In) Opcode() Opcode          { return OpIn }
func (Out) Opcode() Opcode         { return OpOut }
func (JumpIfTrue) Opcode() Opcode  { return OpJumpIfTrue }
func (JumpIfFalse) Opcode() Opcode { return OpJumpIfFalse }
func (LessThan) Opcode() Opcode    { return OpLessThan }
func (Equals) Opcode() Opcode      { return OpEquals }
func (AdjustBase) Opcode() Opcode  { return OpAdjustBase }
func (Halt) Opcode() Opcode        { return OpHalt }

func (i Add) Args() []Arg         { return []Arg{i.A, i.B, i.Dst} }
func (i Mul) Args() []Arg         { return []Arg{i.A, i.B, i.Dst} }
func (i In) Args() []Arg          { return []Arg{i.Dst} }
func (i Out) Args() []Arg         { return []Arg{i.Src} }
func (i JumpIfTrue) Args() []Arg  { return []Arg{i.Test, i.Target} }
func (i JumpIfFalse) Args() []Arg { return []Arg{i.Test, i.Target} }
func (i LessThan) Args() []Arg    { return []Arg{i.A, i.B, i.Dst} }
func (i Equals) Args() []Arg      { return []Arg{i.A, i.B, i.Dst} }
func (i AdjustBase) Args() []Arg  { return []Arg{i.Delta} }
func (Halt) Args() []Arg          { return nil }

func (i Add) String() string         { return format(i) }
func (i Mul) String() string         { return format(i) }
func (i In) String() string          { return format(i) }
func (i Out) String() string         { return format(i) }
func (i JumpIfTrue) String() string  { return format(i) }
func (i JumpIfFalse) String() string { return format(i) }
func (i LessThan) String() string    { return format(i) }
func (i Equals) String() string      { return format(i) }
func (i AdjustBase) String() string  { return format(i) }
func (i Halt) String() string        { return format(i) }

func (Add) instruction()         {}
func (Mul) instruction()         {}
func (In) instruction()          {}
func (Out) instruction()         {}
func (JumpIfTrue) instruction()  {}
func (JumpIfFalse) instruction() {}
func (LessThan) instruction()    {}
func (Equals) instruction()      {}
func (AdjustBase) instruction()  {}
func (Halt) instruction()        {}

func format(ins Instruction) string {
	var b strings.Builder
	b.WriteString(ins.Opcode().String())
	for k, a := range ins.Args() {
		if k == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	return b.String()
}

// Reader is the interface to any address space that instructions can be
// decoded from. It is implemented by Memory and Image.
type Reader interface {
	Read(addr Cell) (Cell, error)
}

// DecodeAt decodes the instruction at address ip.
func DecodeAt(r Reader, ip Cell) (Instruction, error) {
	word, err := r.Read(ip)
	if err != nil {
		return nil, err
	}
	op, modes, err := Decode(word)
	if err != nil {
		return nil, errors.Wrapf(err, "ip=%d", ip)
	}
	args := make([]Arg, len(modes))
	for k, m := range modes {
		v, err := r.Read(ip + 1 + Cell(k))
		if err != nil {
			return nil, err
		}
		args[k] = Arg{v, m}
	}
	switch op {
	case OpAdd:
		return Add{args[0], args[1], args[2]}, nil
	case OpMul:
		return Mul{args[0], args[1], args[2]}, nil
	case OpIn:
		return In{args[0]}, nil
	case OpOut:
		return Out{args[0]}, nil
	case OpJumpIfTrue:
		return JumpIfTrue{args[0], args[1]}, nil
	case OpJumpIfFalse:
		return JumpIfFalse{args[0], args[1]}, nil
	case OpLessThan:
		return LessThan{args[0], args[1], args[2]}, nil
	case OpEquals:
		return Equals{args[0], args[1], args[2]}, nil
	case OpAdjustBase:
		return AdjustBase{args[0]}, nil
	default: // OpHalt, Decode has already rejected anything else
		return Halt{}, nil
	}
}
