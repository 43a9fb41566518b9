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

import "github.com/pkg/errors"

// Source supplies input values to a VM. Input is called synchronously each
// time an IN instruction is executed.
//
// Returning an error whose cause is ErrSuspend suspends the VM on the IN
// instruction: nothing is written and the PC is left untouched so that the
// instruction will be retried when the VM is resumed. Any other error aborts
// the VM.
type Source interface {
	Input() (Cell, error)
}

// Sink receives output values from a VM. Output is called synchronously each
// time an OUT instruction is executed.
//
// Returning an error whose cause is ErrSuspend suspends the VM right after
// the OUT instruction: the value is considered delivered. Any other error
// aborts the VM.
type Sink interface {
	Output(v Cell) error
}

// Adapter is implemented by types that handle both input and output for a
// VM.
type Adapter interface {
	Source
	Sink
}

// SourceFunc is an adapter to allow the use of ordinary functions as input
// sources.
type SourceFunc func() (Cell, error)

// Input calls f().
func (f SourceFunc) Input() (Cell, error) { return f() }

// SinkFunc is an adapter to allow the use of ordinary functions as output
// sinks.
type SinkFunc func(v Cell) error

// Output calls f(v).
func (f SinkFunc) Output(v Cell) error { return f(v) }

// Input configures the input Source.
func Input(s Source) Option {
	return func(i *Instance) error {
		if s == nil {
			return errors.New("nil input source")
		}
		i.input = s
		return nil
	}
}

// Output configures the output Sink.
func Output(s Sink) Option {
	return func(i *Instance) error {
		if s == nil {
			return errors.New("nil output sink")
		}
		i.output = s
		return nil
	}
}

// IO configures a as both the input Source and output Sink.
func IO(a Adapter) Option {
	return func(i *Instance) error {
		return i.SetOptions(Input(a), Output(a))
	}
}

func (i *Instance) in() (Cell, error) {
	if i.input == nil {
		return 0, errors.Wrap(ErrExhaustedInput, "no input source")
	}
	return i.input.Input()
}

func (i *Instance) out(v Cell) error {
	if i.output == nil {
		i.outputs = append(i.outputs, v)
		return nil
	}
	return i.output.Output(v)
}
