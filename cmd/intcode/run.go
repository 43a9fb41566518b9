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
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runFlags struct {
	input       []int64
	with        []string
	pokes       []string
	ascii       bool
	interactive bool
	raw         bool
	dump        bool
	save        string
	history     string
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run an Intcode program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], &f)
		},
	}
	fl := cmd.Flags()
	fl.Int64SliceVarP(&f.input, "input", "i", nil, "input `values` fed to the program before reading standard input")
	fl.StringArrayVarP(&f.with, "with", "w", nil, "add `filename` to the ASCII input list (can be specified multiple times)")
	fl.StringArrayVarP(&f.pokes, "poke", "p", nil, "set memory cell before running, as `addr=value` (can be specified multiple times)")
	fl.BoolVarP(&f.ascii, "ascii", "a", false, "ASCII input and output")
	fl.BoolVar(&f.interactive, "interactive", false, "read numeric input from a line editor prompt")
	fl.BoolVar(&f.raw, "raw", false, "single-key terminal input in ASCII mode")
	fl.BoolVar(&f.dump, "dump", false, "dump memory upon exit")
	fl.StringVarP(&f.save, "save", "o", "", "save memory to `filename` upon exit")
	fl.StringVar(&f.history, "history", "", "line editor history `filename`")
	return cmd
}

func parsePoke(s string) (addr, v vm.Cell, err error) {
	as, vs, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, errors.Errorf("invalid poke %q: expected addr=value", s)
	}
	a, err := strconv.ParseInt(strings.TrimSpace(as), 0, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid poke address %q", as)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(vs), 0, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid poke value %q", vs)
	}
	return vm.Cell(a), vm.Cell(n), nil
}

func (a *app) run(cmd *cobra.Command, fileName string, f *runFlags) (err error) {
	img, err := loadProgram(fileName, cmd.InOrStdin())
	if err != nil {
		return err
	}

	stdout := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if ferr := stdout.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
	}()

	values := make([]vm.Cell, len(f.input))
	for k, v := range f.input {
		values[k] = vm.Cell(v)
	}
	sources := []vm.Source{vm.Values(values...)}
	var sink vm.Sink

	stdin := cmd.InOrStdin()
	if fileName == "-" {
		// already consumed
		stdin = strings.NewReader("")
	}

	if f.ascii {
		sink = vm.ASCIIWriter(stdout)
		for _, name := range f.with {
			r, err := os.Open(name)
			if err != nil {
				return errors.Wrap(err, "input file")
			}
			defer r.Close()
			sources = append(sources, vm.ASCIIReader(r))
		}
		in := vm.ASCIIReader(stdin)
		if tty, ok := stdin.(*os.File); ok && f.raw {
			tearDown, err := setRawIO(tty.Fd())
			if err != nil {
				a.log.Warn("raw terminal mode unavailable", "err", err)
			} else {
				defer tearDown()
				in = rawSource(in)
			}
		}
		sources = append(sources, in)
	} else {
		sink = vm.LineWriter(stdout)
		if f.interactive {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:      "> ",
				HistoryFile: f.history,
				Stdin:       readline.NewCancelableStdin(stdin),
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
			})
			if err != nil {
				return errors.Wrap(err, "readline")
			}
			defer rl.Close()
			sources = append(sources, prompt(rl, cmd.ErrOrStderr()))
		} else {
			sources = append(sources, numbers(stdin))
		}
	}

	i, err := vm.New(img,
		vm.Logger(a.log),
		vm.Input(flushBefore(vm.MultiSource(sources...), stdout)),
		vm.Output(sink))
	if err != nil {
		return err
	}
	a.vm = i

	for _, p := range f.pokes {
		addr, v, err := parsePoke(p)
		if err != nil {
			return err
		}
		if err = i.Poke(addr, v); err != nil {
			return errors.Wrap(err, "poke")
		}
	}

	if err = i.Run(); err != nil {
		return err
	}
	if f.dump {
		if err = i.Dump(stdout); err != nil {
			return err
		}
	}
	if f.save != "" {
		return vm.Save(f.save, i.Mem.Dense())
	}
	return nil
}
