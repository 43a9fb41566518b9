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


// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		args	description
//	------	---		----	--------------------------------------------------
//	1	add		a, b, d	store a + b in d
//	2	mul		a, b, d	store a * b in d
//	3	in		d	store the next input value in d
//	4	out		a	emit a
//	5	jnz, jt		a, t	jump to t if a != 0
//	6	jz, jf		a, t	jump to t if a == 0
//	7	lt		a, b, d	store 1 in d if a < b, 0 otherwise
//	8	eq		a, b, d	store 1 in d if a == b, 0 otherwise
//	9	arb, rb		a	add a to the relative base
//	99	hlt, halt		halt
//
// Operands:
//
// Operands follow the mnemonic and may be separated by commas. The addressing
// mode of each operand is given by an optional prefix:
//
//	42	position mode: the operand is the address of the value
//	#42	immediate mode: the operand is the value itself
//	@42	relative mode: the operand is an offset from the relative base
//
// The opcode word is computed from the operand modes, so that
//
//	add #2, 3, @-1
//
// assembles to 2001, 2, 3, -1. Immediate mode is rejected for destination
// operands.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not )
//
// Literals and label/const identifiers:
//
// Input is split at white space into tokens. The parser then does the following:
//
//	- If a token can be converted to a Go integer (see strconv.ParseInt), it will
//	  be converted to an integer literal.
//	- If it is a Go character literal between single quotes, it will be converted to
//	  the corresponding integer literal.
//	- If a token is the name of a defined constant, it will be replaced by
//	  the constant's value.
//	- Where an instruction is expected, the token is then looked up in the
//	  assembler mnemonics. Anything else is a label reference.
//
// Where an instruction is expected, integer literals, character literals,
// constants and labels are compiled as raw data cells:
//
//	:msg	'h' 'i' 10 0
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and may be used
// wherever a value is expected. Forward references are allowed:
//
//		jz #0, #end
//	:end	hlt
//
// Local labels work in the same way as in the GNU assembler. They are defined
// as a colon followed by a sequence of digits (i.e. :0, :42) and may be
// defined multiple times. References to such labels must be suffixed with
// either a '-' (backward reference to the last definition of this label), or a
// '+' (forward reference to the next definition of this label):
//
//	:1	jz @0, #1+
//		out @0
//		jnz #1, #1-
//	:1	hlt
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// places the next instruction at the given address. Gaps are filled with 0.
//
//	.dat <value>
//
// compiles the specified value as-is. This is what Disassemble emits for
// words that do not decode to a valid instruction.
package asm
