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
	"io"
	"log/slog"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the execution state of an Instance.
type State int

// VM states.
const (
	Running State = iota
	Suspended
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       Cell    // Program Counter (aka. Instruction Pointer)
	Base     Cell    // Relative base
	Mem      *Memory // Memory
	state    State
	insCount int64
	input    Source
	output   Sink
	outputs  []Cell
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// Logger enables execution tracing. Each executed instruction is logged at
// log.LevelTrace, suspension and halting at slog.LevelDebug.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		i.log = l
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The VM works on its own copy of image, so the same image can be used to
// create any number of independent instances.
//
// If no input Source is configured, the IN instruction fails with
// ErrExhaustedInput. If no output Sink is configured, output values are
// buffered and can be retrieved with Outputs.
//
// Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem: NewMemory(image),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current execution state.
func (i *Instance) State() State {
	return i.state
}

// InstructionCount returns the number of instructions executed so far.
// Executions of hlt and suspended instructions are not counted.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Outputs returns the values emitted while no output Sink was configured.
func (i *Instance) Outputs() []Cell {
	return i.outputs
}

// Peek returns the value at address addr.
func (i *Instance) Peek(addr Cell) (Cell, error) {
	return i.Mem.Read(addr)
}

// Poke sets the value at address addr. This is typically used to patch a
// program before running it.
func (i *Instance) Poke(addr, v Cell) error {
	return i.Mem.Write(addr, v)
}

// Dump dumps the VM memory to the specified io.Writer. See Memory.Dump.
func (i *Instance) Dump(w io.Writer) error {
	return i.Mem.Dump(w)
}
