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


package pipeline

import (
	"log/slog"
	"slices"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var (
	ErrNoStages = errors.New("no pipeline stages")
	ErrNoOutput = errors.New("pipeline produced no output")
	// ErrDeadlock is returned in feedback mode when a full round of the
	// scheduler completes without any stage making progress.
	ErrDeadlock = errors.New("deadlock")
)

// Pipeline is a chain of VMs. See the package documentation.
type Pipeline struct {
	program  vm.Image
	phases   []vm.Cell
	feedback bool
	log      *slog.Logger
	vmOpts   []vm.Option

	stages []*vm.Instance
	queues []*vm.Queue
	used   bool
}

// Option functions are passed to New to configure a pipeline.
type Option func(*Pipeline) error

// Feedback enables or disables the feedback loop between the last and first
// stages.
func Feedback(on bool) Option {
	return func(p *Pipeline) error {
		p.feedback = on
		return nil
	}
}

// Logger sets the pipeline logger. Every stage logs to it with a "stage"
// attribute.
func Logger(l *slog.Logger) Option {
	return func(p *Pipeline) error {
		p.log = l
		return nil
	}
}

// VMOptions sets additional options applied to every stage. I/O options are
// overridden by the pipeline.
func VMOptions(opts ...vm.Option) Option {
	return func(p *Pipeline) error {
		p.vmOpts = append(p.vmOpts, opts...)
		return nil
	}
}

// New creates a pipeline running program, with one stage per phase setting.
func New(program vm.Image, phases []vm.Cell, opts ...Option) (*Pipeline, error) {
	if len(phases) == 0 {
		return nil, ErrNoStages
	}
	p := &Pipeline{
		program: program,
		phases:  slices.Clone(phases),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if err := p.reset(); err != nil {
		return nil, err
	}
	return p, nil
}

// reset builds fresh stages and queues.
func (p *Pipeline) reset() error {
	n := len(p.phases)
	policy, nq := vm.FailWhenEmpty, n+1
	if p.feedback {
		policy, nq = vm.SuspendWhenEmpty, n
	}
	p.queues = make([]*vm.Queue, nq)
	for k := range p.queues {
		p.queues[k] = vm.NewQueue(policy)
	}
	p.stages = make([]*vm.Instance, n)
	for k, phase := range p.phases {
		p.queues[k].Push(phase)
		opts := make([]vm.Option, 0, len(p.vmOpts)+3)
		opts = append(opts, p.vmOpts...)
		if p.log != nil {
			opts = append(opts, vm.Logger(p.log.With("stage", k)))
		}
		opts = append(opts, vm.Input(p.queues[k]), vm.Output(p.queues[(k+1)%nq]))
		i, err := vm.New(p.program, opts...)
		if err != nil {
			return errors.Wrapf(err, "stage %d", k)
		}
		p.stages[k] = i
	}
	return nil
}

// Stages returns the VM instances of the last run.
func (p *Pipeline) Stages() []*vm.Instance {
	return p.stages
}

// Run feeds signal to the first stage and runs the pipeline. It returns the
// last value emitted by the last stage.
//
// Every call to Run starts over from fresh copies of the program.
func (p *Pipeline) Run(signal vm.Cell) (vm.Cell, error) {
	if p.used {
		if err := p.reset(); err != nil {
			return 0, err
		}
	}
	p.used = true
	p.queues[0].Push(signal)
	var err error
	if p.feedback {
		err = p.runFeedback()
	} else {
		err = p.runLinear()
	}
	if err != nil {
		return 0, err
	}
	out := p.queues[len(p.queues)-1]
	if p.feedback {
		out = p.queues[0]
	}
	v, ok := out.Last()
	if !ok {
		return 0, ErrNoOutput
	}
	return v, nil
}

func (p *Pipeline) runLinear() error {
	for k, s := range p.stages {
		if err := s.Run(); err != nil {
			return errors.Wrapf(err, "stage %d", k)
		}
		if s.State() != vm.Halted {
			return errors.Wrapf(ErrDeadlock, "stage %d %v", k, s.State())
		}
	}
	return nil
}

func (p *Pipeline) runFeedback() error {
	for round := 0; ; round++ {
		progress, running := false, 0
		for k, s := range p.stages {
			if s.State() == vm.Halted {
				continue
			}
			count := s.InstructionCount()
			if err := s.Run(); err != nil {
				return errors.Wrapf(err, "stage %d", k)
			}
			if s.InstructionCount() != count {
				progress = true
			}
			if s.State() != vm.Halted {
				running++
			}
		}
		if p.log != nil {
			p.log.Debug("round", "n", round, "running", running)
		}
		if running == 0 {
			return nil
		}
		if !progress {
			return errors.Wrapf(ErrDeadlock, "round %d, %d stages waiting for input", round, running)
		}
	}
}
