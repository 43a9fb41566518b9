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
	"fmt"

	"github.com/pkg/errors"
)

// load returns the value of a read argument.
func (i *Instance) load(a Arg) (Cell, error) {
	switch a.Mode {
	case Position:
		return i.Mem.Read(a.Value)
	case Immediate:
		return a.Value, nil
	case Relative:
		return i.Mem.Read(i.Base + a.Value)
	}
	return 0, errors.Wrapf(ErrUnknownMode, "%d", a.Mode)
}

// address returns the effective address of a write target.
func (i *Instance) address(a Arg) (Cell, error) {
	switch a.Mode {
	case Position:
		return a.Value, nil
	case Relative:
		return i.Base + a.Value, nil
	case Immediate:
		return 0, errors.Wrapf(ErrImmediateWrite, "operand %s", a)
	}
	return 0, errors.Wrapf(ErrUnknownMode, "%d", a.Mode)
}

func (i *Instance) store(a Arg, v Cell) error {
	addr, err := i.address(a)
	if err != nil {
		return err
	}
	return i.Mem.Write(addr, v)
}

func (i *Instance) binop(a, b, dst Arg, f func(x, y Cell) Cell) error {
	x, err := i.load(a)
	if err != nil {
		return err
	}
	y, err := i.load(b)
	if err != nil {
		return err
	}
	if err = i.store(dst, f(x, y)); err != nil {
		return err
	}
	i.PC += 4
	return nil
}

func (i *Instance) jump(test, target Arg, nonZero bool) error {
	v, err := i.load(test)
	if err != nil {
		return err
	}
	if (v != 0) != nonZero {
		i.PC += 3
		return nil
	}
	pc, err := i.load(target)
	if err != nil {
		return err
	}
	i.PC = pc
	return nil
}

func add(x, y Cell) Cell { return x + y }
func mul(x, y Cell) Cell { return x * y }

func lessThan(x, y Cell) Cell {
	if x < y {
		return 1
	}
	return 0
}

func equals(x, y Cell) Cell {
	if x == y {
		return 1
	}
	return 0
}

// execute runs a single decoded instruction. It returns false if the VM
// must stop, either because it halted or suspended.
func (i *Instance) execute(ins Instruction) (bool, error) {
	switch ins := ins.(type) {
	case Add:
		return true, i.binop(ins.A, ins.B, ins.Dst, add)
	case Mul:
		return true, i.binop(ins.A, ins.B, ins.Dst, mul)
	case In:
		// resolve the destination first: an invalid target must not consume
		// input.
		addr, err := i.address(ins.Dst)
		if err != nil {
			return false, err
		}
		v, err := i.in()
		if err != nil {
			if isSuspend(err) {
				i.state = Suspended
				return false, nil
			}
			return false, errors.Wrap(err, "input")
		}
		if err = i.Mem.Write(addr, v); err != nil {
			return false, err
		}
		i.PC += 2
	case Out:
		v, err := i.load(ins.Src)
		if err != nil {
			return false, err
		}
		err = i.out(v)
		i.PC += 2
		if err != nil {
			if isSuspend(err) {
				i.state = Suspended
				return false, nil
			}
			return false, errors.Wrap(err, "output")
		}
	case JumpIfTrue:
		return true, i.jump(ins.Test, ins.Target, true)
	case JumpIfFalse:
		return true, i.jump(ins.Test, ins.Target, false)
	case LessThan:
		return true, i.binop(ins.A, ins.B, ins.Dst, lessThan)
	case Equals:
		return true, i.binop(ins.A, ins.B, ins.Dst, equals)
	case AdjustBase:
		v, err := i.load(ins.Delta)
		if err != nil {
			return false, err
		}
		i.Base += v
		i.PC += 2
	case Halt:
		i.state = Halted
		return false, nil
	default:
		panic(fmt.Sprintf("vm: unhandled instruction type %T", ins))
	}
	return true, nil
}
