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
	"context"
	"log/slog"

	"github.com/db47h/intcode/internal/log"
	"github.com/pkg/errors"
)

// Decode decodes the instruction at address ip.
func (i *Instance) Decode(ip Cell) (Instruction, error) {
	return DecodeAt(i.Mem, ip)
}

// Step decodes and executes the instruction at PC. It returns false if the VM
// halted or suspended, or if an error occurred. In the latter case, the VM
// state is set to Halted.
//
// Stepping a halted VM executes the hlt instruction again.
func (i *Instance) Step() (bool, error) {
	i.state = Running
	pc := i.PC
	ins, err := i.Decode(pc)
	if err != nil {
		i.state = Halted
		return false, err
	}
	if i.log != nil && i.log.Enabled(context.Background(), log.LevelTrace) {
		i.log.Log(context.Background(), log.LevelTrace, "step", "pc", pc, "base", i.Base, "ins", ins.String())
	}
	ok, err := i.execute(ins)
	if err != nil {
		i.state = Halted
		return false, errors.Wrapf(err, "ip=%d: %s", pc, ins)
	}
	if ok || i.PC != pc {
		i.insCount++
	}
	if !ok && i.log != nil {
		i.log.Debug("stop", "state", i.state, "pc", i.PC, "count", i.insCount)
	}
	return ok, nil
}

// Run starts execution of the VM at the current PC. It returns nil once the
// VM halts or suspends. Use State to tell them apart. A suspended VM is
// resumed by calling Run again.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error.
//
// Panics raised by I/O adapters with an error value are recovered and
// returned as errors.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				i.state = Halted
				err = errors.Wrapf(e, "Recovered error @pc=%d, base=%d", i.PC, i.Base)
			default:
				panic(e)
			}
		}
	}()
	if i.log != nil {
		i.log.Debug("run", slog.Int64("pc", int64(i.PC)), slog.String("state", i.state.String()))
	}
	var ok bool
	for {
		if ok, err = i.Step(); err != nil || !ok {
			return err
		}
	}
}
