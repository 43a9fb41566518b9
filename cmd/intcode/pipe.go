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

	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPipeCmd(a *app) *cobra.Command {
	var (
		phases   []int64
		signal   int64
		feedback bool
		best     bool
	)
	cmd := &cobra.Command{
		Use:   "pipe FILE",
		Short: "Run a chain of VMs, one per phase setting",
		Long: `Run a chain of VMs running the same program, one per phase setting. Each VM
gets its phase setting as first input, then the output of the previous VM.
The first VM gets the signal value. The last value emitted by the last VM is
printed.

With --feedback, the output of the last VM is fed back to the first one until
all VMs halt. With --best, every permutation of the phase settings is tried
and the highest result is printed along with the phase order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadProgram(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			ph := make([]vm.Cell, len(phases))
			for k, v := range phases {
				ph[k] = vm.Cell(v)
			}
			opts := []pipeline.Option{pipeline.Feedback(feedback), pipeline.Logger(a.log)}
			if best {
				v, order, err := pipeline.Best(img, ph, vm.Cell(signal), opts...)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v, order)
				return errors.Wrap(err, "write failed")
			}
			p, err := pipeline.New(img, ph, opts...)
			if err != nil {
				return err
			}
			v, err := p.Run(vm.Cell(signal))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return errors.Wrap(err, "write failed")
		},
	}
	fl := cmd.Flags()
	fl.Int64SliceVar(&phases, "phases", nil, "comma-separated phase `settings`, one per VM")
	fl.Int64Var(&signal, "signal", 0, "input `value` of the first VM")
	fl.BoolVar(&feedback, "feedback", false, "connect the last VM to the first one")
	fl.BoolVar(&best, "best", false, "try all phase permutations and print the best result")
	cmd.MarkFlagRequired("phases")
	return cmd
}
