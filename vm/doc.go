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


// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a flat array of signed 64 bits integers. Index 0 is
// the entry point. Each instruction starts with an opcode word: the two low
// decimal digits select the operation, and each following digit selects the
// addressing mode of one argument, from right to left:
//
//	opcode	asm	args	description
//	------	---	----	------------------------------------------------
//	1	add	a b c	c = a + b
//	2	mul	a b c	c = a * b
//	3	in	a	a = next input value
//	4	out	a	emit a
//	5	jnz	a b	jump to b if a != 0
//	6	jz	a b	jump to b if a == 0
//	7	lt	a b c	c = 1 if a < b, else 0
//	8	eq	a b c	c = 1 if a == b, else 0
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
//	mode	asm	read		write
//	----	---	----		-----
//	0	a	mem[a]		mem[a]
//	1	#a	a		invalid
//	2	@a	mem[base+a]	mem[base+a]
//
// Memory is unbounded: addresses past the end of the loaded program read as 0
// until written to.
//
// I/O goes through a Source and a Sink (see the Input, Output and IO options).
// A Source may return ErrSuspend to make the VM yield instead of failing when
// it has no value ready. The instance can then be resumed by calling Run again
// once more input is available. This is how several VMs can be chained in a
// feedback loop, see package github.com/db47h/intcode/pipeline.
//
// Unlike most VM implementations, the PC (aka. Instruction Pointer) is not
// incremented in a single place, rather each opcode deals with the PC as
// needed.
package vm
