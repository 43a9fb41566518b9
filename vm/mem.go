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
	"maps"
	"slices"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// Memory is the address space of a VM instance. Addresses covered by the
// loaded program are backed by a dense slice, anything past it by a sparse
// map. Unwritten addresses read as 0.
type Memory struct {
	dense  []Cell
	sparse map[Cell]Cell
}

// NewMemory returns a new Memory initialized with a copy of program.
func NewMemory(program []Cell) *Memory {
	dense := make([]Cell, len(program))
	copy(dense, program)
	return &Memory{dense: dense, sparse: make(map[Cell]Cell)}
}

// Read returns the value stored at addr.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "read @%d", addr)
	}
	if addr < Cell(len(m.dense)) {
		return m.dense[addr], nil
	}
	return m.sparse[addr], nil
}

// Write stores v at addr.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrNegativeAddress, "write @%d", addr)
	}
	if addr < Cell(len(m.dense)) {
		m.dense[addr] = v
		return nil
	}
	m.sparse[addr] = v
	return nil
}

// Len returns the size of the dense part of the memory, i.e. the size of the
// program it was loaded with.
func (m *Memory) Len() int { return len(m.dense) }

// Sparse returns the number of cells written past the dense part.
func (m *Memory) Sparse() int { return len(m.sparse) }

// Dense returns the dense part of the memory. Note that value changes will be
// reflected in the VM memory.
func (m *Memory) Dense() []Cell { return m.dense }

func appendCells(b []byte, cells []Cell) []byte {
	for k, v := range cells {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return b
}

// Dump writes the dense memory as a comma separated line, in the same format
// as accepted by Parse. If any cell past the dense part has been written to,
// a second line lists them as addr:value pairs sorted by address.
func (m *Memory) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	b := appendCells(make([]byte, 0, len(m.dense)*4), m.dense)
	b = append(b, '\n')
	ew.Write(b)
	if len(m.sparse) == 0 {
		return ew.Err
	}
	b = b[:0]
	for k, addr := range slices.Sorted(maps.Keys(m.sparse)) {
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(addr), 10)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(m.sparse[addr]), 10)
	}
	b = append(b, '\n')
	ew.Write(b)
	return ew.Err
}
