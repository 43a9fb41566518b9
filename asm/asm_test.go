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


package asm_test

import (
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, code string) vm.Image {
	t.Helper()
	img, err := asm.Assemble(t.Name(), strings.NewReader(code))
	require.NoError(t, err)
	return img
}

func TestAssemble(t *testing.T) {
	data := []struct {
		name string
		code string
		img  vm.Image
	}{
		{"eq8", `
				in x
				eq x, y, x
				out x
				hlt
			:x	-1
			:y	8`,
			vm.Image{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}},
		{"modes", "arb #10 add #2, #3, @1 out @1 hlt", vm.Image{109, 10, 21101, 2, 3, 1, 204, 1, 99}},
		{"aliases", "rb #1 jt #1, #0 jf #0, #0 halt", vm.Image{109, 1, 1105, 1, 0, 1106, 0, 0, 99}},
		{"chars", `out #'A' out #'\n' .dat '\x41'`, vm.Image{104, 65, 104, 10, 65}},
		{"consts", ".equ N 8 .equ M N lt #N, #M, 0", vm.Image{1107, 8, 8, 0}},
		{"org", "hlt .org 4 .dat 0x10 .dat -0b11", vm.Image{99, 0, 0, 0, 16, -3}},
		{"local labels", `
			:1	jz #0, #1+
				jnz #1, #1-
			:1	hlt`,
			vm.Image{1106, 0, 6, 1105, 1, 0, 99}},
		{"data labels", ":a .dat b :b a b", vm.Image{1, 0, 1}},
		{"comments", "( nothing ) hlt ( here\n at all )", vm.Image{99}},
		{"empty", "", vm.Image{}},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			assert.Equal(t, d.img, assemble(t, d.code))
		})
	}
}

func TestAssemble_run(t *testing.T) {
	img := assemble(t, `
		arb #10
		add #2, #3, @1
		out @1
		hlt`)
	i, err := vm.New(img)
	require.NoError(t, err)
	require.NoError(t, i.Run())
	assert.Equal(t, []vm.Cell{5}, i.Outputs())
	assert.Equal(t, vm.Cell(10), i.Base)
}

func TestAssemble_errors(t *testing.T) {
	code := `
	out undef
	.org :foo
	add #1, #2, #3
	'yo'
	.bogus
:x
:x
	.equ x 2
	in
	`
	_, err := asm.Assemble("test_errors", strings.NewReader(code))
	require.Error(t, err)
	errs, ok := err.(asm.ErrAsm)
	require.True(t, ok, "error type %T", err)

	var msgs []string
	for _, e := range errs {
		assert.Equal(t, "test_errors", e.Pos.Filename)
		msgs = append(msgs, e.Msg)
	}
	expected := []string{
		"expected integer, character or constant, got :foo",
		"immediate mode not allowed for the destination operand of add",
		"invalid character literal 'yo': invalid syntax",
		"unknown directive: .bogus",
		"label redefinition: x",
		".equ: redefinition of x",
		"missing operand for in",
		"undefined label undef",
	}
	require.Len(t, msgs, len(expected), "%v", err)
	for k, m := range msgs {
		assert.True(t, strings.HasPrefix(m, expected[k]), "got %q, expected %q", m, expected[k])
	}
	// errors point to the offending token
	assert.Equal(t, 2, errs[len(errs)-1].Pos.Line)
	assert.Equal(t, 6, errs[len(errs)-1].Pos.Column)
}

func TestAssemble_maxErrors(t *testing.T) {
	_, err := asm.Assemble("many", strings.NewReader(strings.Repeat(".x ", 20)))
	require.Error(t, err)
	assert.Len(t, err.(asm.ErrAsm), 10)
}

func TestDisassemble(t *testing.T) {
	var b strings.Builder
	mem := []vm.Cell{1002, 4, 3, 4, 33, 11101, 5, 2, 3, 100001, 21101, 0}
	next, err := asm.Disassemble(mem, 0, &b)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
	assert.Equal(t, "mul 4, #3, 4", b.String())

	b.Reset()
	require.NoError(t, asm.DisassembleAll(mem, 100, &b))
	assert.Equal(t, `( 100 )	mul 4, #3, 4
( 104 )	.dat 33
( 105 )	.dat 11101
( 106 )	jnz 2, 3
( 109 )	.dat 100001
( 110 )	.dat 21101
( 111 )	.dat 0
`, b.String())

	_, err = asm.Disassemble(mem, len(mem), &b)
	assert.Error(t, err)
}

func TestDisassemble_roundTrip(t *testing.T) {
	quine := vm.Image{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	var b strings.Builder
	require.NoError(t, asm.DisassembleAll(quine, 0, &b))
	assert.Contains(t, b.String(), "out @-1")
	assert.Equal(t, quine, assemble(t, b.String()))
}
