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


// intcode runs, chains, assembles and disassembles Intcode programs.
//
// Usage:
//
//	intcode run FILE [flags]
//	intcode pipe FILE --phases 4,3,2,1,0 [--feedback] [--signal N] [--best]
//	intcode disasm FILE [--base N]
//	intcode asm SRC [-o OUT]
//
// Program files contain a single comma-separated list of integers. A FILE
// argument of "-" reads the program from standard input.
//
// By default, run uses numeric I/O: input values given with --input are
// consumed first, then whitespace-separated integers are read from standard
// input. Every output value is printed on its own line. With --interactive,
// standard input is read through a line editor with a "> " prompt.
//
// With --ascii, input and output are text: output values below 128 are
// printed as characters, larger values are printed as decimal numbers on
// their own line. Input comes from the --input values, then from --with
// files, then from standard input. When standard input is a terminal,
// --raw switches it to single-key mode; press CTRL-D to end input.
//
// Memory can be patched before running with --poke addr=value (can be
// repeated), dumped after running with --dump, or saved to a program file
// with --save.
//
// Global flags:
//
//	--log-level LEVEL	trace, debug, info, warn, error or off. At trace
//				level every executed instruction is logged.
//	--debug			print error stack traces and VM registers on failure.
package main
