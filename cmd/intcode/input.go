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


package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func parseNumber(s string) (vm.Cell, error) {
	n, err := strconv.ParseInt(strings.Trim(s, ","), 0, 64)
	return vm.Cell(n), err
}

// numbers reads whitespace separated integers from r.
func numbers(r io.Reader) vm.Source {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return vm.SourceFunc(func() (vm.Cell, error) {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return 0, errors.Wrap(err, "read failed")
			}
			return 0, errors.Wrap(vm.ErrExhaustedInput, "standard input")
		}
		v, err := parseNumber(s.Text())
		if err != nil {
			return 0, errors.Wrapf(err, "invalid input value %q", s.Text())
		}
		return v, nil
	})
}

// prompt reads integers from a line editor, one per line. Invalid lines are
// reported to errOut and skipped.
func prompt(rl *readline.Instance, errOut io.Writer) vm.Source {
	return vm.SourceFunc(func() (vm.Cell, error) {
		for {
			line, err := rl.Readline()
			switch {
			case err == readline.ErrInterrupt || err == io.EOF:
				return 0, errors.Wrap(vm.ErrExhaustedInput, "standard input")
			case err != nil:
				return 0, errors.Wrap(err, "readline")
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			v, err := parseNumber(line)
			if err != nil {
				fmt.Fprintf(errOut, "not a number: %s\n", line)
				continue
			}
			return v, nil
		}
	})
}

// rawSource ends input when CTRL-D is pressed on a raw terminal.
func rawSource(src vm.Source) vm.Source {
	return vm.SourceFunc(func() (vm.Cell, error) {
		v, err := src.Input()
		if err == nil && v == 4 {
			return 0, errors.Wrap(vm.ErrExhaustedInput, "EOT")
		}
		return v, err
	})
}

type flusher interface {
	Flush() error
}

// flushBefore flushes pending output before reading input, so that prompts
// written by the program are visible.
func flushBefore(src vm.Source, f flusher) vm.Source {
	return vm.SourceFunc(func() (vm.Cell, error) {
		if err := f.Flush(); err != nil {
			return 0, errors.Wrap(err, "write failed")
		}
		return src.Input()
	})
}
