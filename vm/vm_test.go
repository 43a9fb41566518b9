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


package vm_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/intcode/internal/log"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

func setup(code C, opts ...vm.Option) *vm.Instance {
	i, err := vm.New(vm.Image(code), opts...)
	if err != nil {
		panic(err)
	}
	return i
}

func equal(a, b []vm.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// check runs i and compares the final PC, dense memory and outputs. A
// negative pc or nil mem skips the corresponding check.
func check(t *testing.T, testName string, i *vm.Instance, pc vm.Cell, mem C, out C) bool {
	t.Helper()
	err := i.Run()
	if err != nil {
		t.Errorf("%s: %+v", testName, err)
		return false
	}
	if i.State() != vm.Halted {
		t.Errorf("%s: Bad state %v", testName, i.State())
		return false
	}
	if pc >= 0 && pc != i.PC {
		t.Errorf("%v", fmt.Errorf("%s: Bad IP %d != %d", testName, i.PC, pc))
		return false
	}
	if mem != nil && !equal(mem, i.Mem.Dense()) {
		t.Errorf("%v", fmt.Errorf("%s: Memory error: expected %d, got %d", testName, mem, i.Mem.Dense()))
		return false
	}
	if !equal(out, i.Outputs()) {
		t.Errorf("%v", fmt.Errorf("%s: Output error: expected %d, got %d", testName, out, i.Outputs()))
		return false
	}
	return true
}

var quine = C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

var cmp8 = C{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
	1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
	999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99}

var tests = [...]struct {
	name string
	code C
	in   C
	mem  C
	out  C
	pc   vm.Cell
}{
	{"add", C{1, 0, 0, 0, 99}, nil, C{2, 0, 0, 0, 99}, nil, 4},
	{"mul", C{2, 3, 0, 3, 99}, nil, C{2, 3, 0, 6, 99}, nil, 4},
	{"mul2", C{2, 4, 4, 5, 99, 0}, nil, C{2, 4, 4, 5, 99, 9801}, nil, 4},
	{"self-modifying", C{1, 1, 1, 4, 99, 5, 6, 0, 99}, nil, C{30, 1, 1, 4, 2, 5, 6, 0, 99}, nil, 8},
	{"mul-imm", C{1002, 4, 3, 4, 33}, nil, C{1002, 4, 3, 4, 99}, nil, 4},
	{"add-imm", C{1101, 100, -1, 4, 0}, nil, C{1101, 100, -1, 4, 99}, nil, 4},
	{"echo", C{3, 0, 4, 0, 99}, C{42}, C{42, 0, 4, 0, 99}, C{42}, 4},
	{"eq-pos-8", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, C{8}, nil, C{1}, 8},
	{"eq-pos-1", C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, C{1}, nil, C{0}, 8},
	{"lt-pos", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, C{5}, nil, C{1}, 8},
	{"lt-pos-false", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, C{8}, nil, C{0}, 8},
	{"eq-imm", C{3, 3, 1108, -1, 8, 3, 4, 3, 99}, C{8}, nil, C{1}, 8},
	{"lt-imm", C{3, 3, 1107, -1, 8, 3, 4, 3, 99}, C{9}, nil, C{0}, 8},
	{"jz-pos", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, C{0}, nil, C{0}, 11},
	{"jz-pos-true", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, C{5}, nil, C{1}, 11},
	{"jnz-imm", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, C{0}, nil, C{0}, 11},
	{"jnz-imm-true", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, C{-3}, nil, C{1}, 11},
	{"cmp8-below", cmp8, C{7}, nil, C{999}, 46},
	{"cmp8-equal", cmp8, C{8}, nil, C{1000}, 46},
	{"cmp8-above", cmp8, C{9}, nil, C{1001}, 46},
	{"quine", quine, nil, nil, quine, 15},
	{"large-mul", C{1102, 34915192, 34915192, 7, 4, 7, 99, 0}, nil, nil, C{1219070632396864}, 6},
	{"large-out", C{104, 1125899906842624, 99}, nil, nil, C{1125899906842624}, 2},
	{"rel-read", C{109, 7, 109, -2, 204, -5, 99, 0}, nil, nil, C{109}, 6},
	{"rel-write", C{109, 10, 21101, 2, 3, 1, 99}, nil, C{109, 10, 21101, 2, 3, 1, 99}, nil, 6},
}

func TestRun(t *testing.T) {
	for _, test := range tests {
		i := setup(test.code, vm.Input(vm.Values(test.in...)))
		check(t, test.name, i, test.pc, test.mem, test.out)
	}
}

func TestRun_relativeBase(t *testing.T) {
	i := setup(C{109, 10, 21101, 2, 3, 1, 109, -4, 204, 5, 99})
	if !check(t, "relative base", i, 10, nil, C{5}) {
		return
	}
	if i.Base != 6 {
		t.Errorf("Bad base %d != 6", i.Base)
	}
	if v, _ := i.Peek(11); v != 5 {
		t.Errorf("Bad value @11: %d != 5", v)
	}
}

func TestRun_errors(t *testing.T) {
	data := [...]struct {
		name string
		code C
		in   C
		err  error
		pc   vm.Cell
	}{
		{"unknown opcode", C{77}, nil, vm.ErrUnknownOpcode, 0},
		{"unknown opcode after jump", C{1105, 1, 4, 99, 42}, nil, vm.ErrUnknownOpcode, 4},
		{"negative opcode", C{-1}, nil, vm.ErrUnknownOpcode, 0},
		{"unknown mode", C{301, 0, 0, 0, 99}, nil, vm.ErrUnknownMode, 0},
		{"immediate write", C{11101, 1, 1, 0, 99}, nil, vm.ErrImmediateWrite, 0},
		{"immediate input", C{103, 0, 99}, C{5}, vm.ErrImmediateWrite, 0},
		{"negative address", C{1, -1, 0, 0, 99}, nil, vm.ErrNegativeAddress, 0},
		{"negative relative", C{109, -5, 204, 0, 99}, nil, vm.ErrNegativeAddress, 2},
		{"no input", C{3, 0, 99}, nil, vm.ErrExhaustedInput, 0},
		{"input exhausted", C{3, 0, 3, 0, 99}, C{1}, vm.ErrExhaustedInput, 2},
		{"run away", C{1101, 0, 0, 10}, nil, vm.ErrUnknownOpcode, 4},
	}
	for _, d := range data {
		src := vm.NewQueue(vm.FailWhenEmpty, d.in...)
		i := setup(d.code, vm.Input(src))
		err := i.Run()
		if errors.Cause(err) != d.err {
			t.Errorf("%s: expected error %v, got %+v", d.name, d.err, err)
			continue
		}
		if i.State() != vm.Halted {
			t.Errorf("%s: Bad state %v", d.name, i.State())
		}
		if i.PC != d.pc {
			t.Errorf("%s: Bad IP %d != %d", d.name, i.PC, d.pc)
		}
	}
}

func TestRun_immediateInputKeepsValue(t *testing.T) {
	src := vm.NewQueue(vm.FailWhenEmpty, 5)
	i := setup(C{103, 0, 99}, vm.Input(src))
	if err := i.Run(); errors.Cause(err) != vm.ErrImmediateWrite {
		t.Fatalf("Unexpected error: %v", err)
	}
	if src.Len() != 1 {
		t.Errorf("input consumed by invalid IN")
	}
}

func TestStep(t *testing.T) {
	i := setup(C{1101, 2, 3, 5, 99, 0})
	ok, err := i.Step()
	if err != nil || !ok {
		t.Fatalf("Step: %v, %v", ok, err)
	}
	if i.PC != 4 || i.State() != vm.Running {
		t.Errorf("Bad PC/state after step: %d, %v", i.PC, i.State())
	}
	ok, err = i.Step()
	if err != nil || ok {
		t.Fatalf("Step on hlt: %v, %v", ok, err)
	}
	// halt does not move the PC, stepping again is a no-op.
	ok, err = i.Step()
	if err != nil || ok || i.PC != 4 || i.State() != vm.Halted {
		t.Errorf("Step on halted VM: %v, %v, pc=%d, state=%v", ok, err, i.PC, i.State())
	}
	if i.InstructionCount() != 1 {
		t.Errorf("Bad instruction count %d", i.InstructionCount())
	}
}

func TestInstance_independentMemory(t *testing.T) {
	img := vm.Image{1, 0, 0, 0, 99}
	a := setup(C(img))
	b := setup(C(img))
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if img[0] != 1 {
		t.Errorf("image modified by VM")
	}
	if v, _ := b.Peek(0); v != 1 {
		t.Errorf("memory shared between instances")
	}
}

func TestInstance_Poke(t *testing.T) {
	// patch the first add into a mul
	i := setup(C{1, 0, 5, 0, 99, 3})
	if err := i.Poke(0, 2); err != nil {
		t.Fatal(err)
	}
	check(t, "poke", i, 4, C{6, 0, 5, 0, 99, 3}, nil)
}

func TestInstance_Decode(t *testing.T) {
	i := setup(C{21101, 2, -3, 1, 4, 7, 99, 1005, 0, 42})
	var got []string
	for _, pc := range []vm.Cell{0, 4, 6, 7} {
		ins, err := i.Decode(pc)
		if err != nil {
			t.Fatalf("Decode @%d: %v", pc, err)
		}
		got = append(got, ins.String())
	}
	expected := []string{"add #2, #-3, @1", "out 7", "hlt", "jnz 0, #42"}
	for k := range expected {
		if got[k] != expected[k] {
			t.Errorf("Decode: expected %q, got %q", expected[k], got[k])
		}
	}
}

func TestInstance_Logger(t *testing.T) {
	var b bytes.Buffer
	i := setup(C{1, 0, 0, 0, 99}, vm.Logger(log.New(&b, log.LevelTrace)))
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	for _, want := range []string{"level=TRACE", `ins="add 0, 0, 0"`, "state=halted"} {
		if !strings.Contains(s, want) {
			t.Errorf("log output %q does not contain %q", s, want)
		}
	}
}

func TestInstance_Dump(t *testing.T) {
	i := setup(C{109, 10, 21101, 2, 3, 1, 99})
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != "109,10,21101,2,3,1,99\n11:5\n" {
		t.Errorf("Bad dump %q", b.String())
	}
}

func Benchmark_Quine(b *testing.B) {
	for c := 0; c < b.N; c++ {
		i := setup(quine)
		if err := i.Run(); err != nil {
			b.Fatal(err)
		}
	}
}
