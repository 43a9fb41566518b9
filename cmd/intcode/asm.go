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

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAsmCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "asm SRC",
		Short: "Assemble a program",
		Long: `Assemble a program. The resulting program is written to the file given with
-o, or to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			r := cmd.InOrStdin()
			if name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return errors.Wrap(err, "open failed")
				}
				defer f.Close()
				r = f
			}
			img, err := asm.Assemble(name, bufio.NewReader(r))
			if err != nil {
				return err
			}
			a.log.Debug("assembled", "file", name, "cells", len(img))
			if out != "" {
				return vm.Save(out, img)
			}
			return vm.NewMemory(img).Dump(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output `filename`")
	return cmd
}

func newDisasmCmd(a *app) *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadProgram(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err = asm.DisassembleAll(img, base, w); err != nil {
				return err
			}
			return errors.Wrap(w.Flush(), "write failed")
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "address of the first cell")
	return cmd
}
