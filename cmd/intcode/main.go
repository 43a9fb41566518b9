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
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/intcode/internal/log"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type app struct {
	logLevel string
	debug    bool
	log      *slog.Logger
	vm       *vm.Instance // last VM run, for diagnostics
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "intcode",
		Short:         "Intcode virtual machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.log = log.New(cmd.ErrOrStderr(), lvl)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log `level` (trace, debug, info, warn, error, off)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug diagnostics")

	root.AddCommand(
		newRunCmd(a),
		newPipeCmd(a),
		newAsmCmd(a),
		newDisasmCmd(a),
	)
	return root
}

// loadProgram loads a program from the named file, or from r if name is "-".
func loadProgram(name string, r io.Reader) (vm.Image, error) {
	if name == "-" {
		img, err := vm.Parse(r)
		return img, errors.Wrap(err, "stdin")
	}
	return vm.Load(name)
}

// atExit reports err to w and returns the process exit code.
func (a *app) atExit(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if !a.debug {
		fmt.Fprintf(w, "\n%v\n", err)
		return 1
	}
	fmt.Fprintf(w, "\n%+v\n", err)
	if i := a.vm; i != nil {
		if word, err := i.Peek(i.PC); err == nil {
			fmt.Fprintf(w, "PC: %d (%d), Base: %d, State: %v, Instructions: %d\n", i.PC, word, i.Base, i.State(), i.InstructionCount())
		} else {
			fmt.Fprintf(w, "PC: %d, Base: %d, State: %v, Instructions: %d\n", i.PC, i.Base, i.State(), i.InstructionCount())
		}
	}
	return 1
}

func main() {
	a := new(app)
	err := newRootCmd(a).Execute()
	os.Exit(a.atExit(os.Stderr, err))
}
