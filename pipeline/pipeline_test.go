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


package pipeline_test

import (
	"bytes"
	"testing"

	"github.com/db47h/intcode/internal/log"
	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	amp      = vm.Image{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	amp2     = vm.Image{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}
	feedback = vm.Image{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
)

func TestRun(t *testing.T) {
	data := []struct {
		name     string
		program  vm.Image
		phases   []vm.Cell
		feedback bool
		expected vm.Cell
	}{
		{"linear", amp, []vm.Cell{4, 3, 2, 1, 0}, false, 43210},
		{"linear-2", amp2, []vm.Cell{0, 1, 2, 3, 4}, false, 54321},
		{"feedback", feedback, []vm.Cell{9, 8, 7, 6, 5}, true, 139629729},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			p, err := pipeline.New(d.program, d.phases, pipeline.Feedback(d.feedback))
			require.NoError(t, err)
			v, err := p.Run(0)
			require.NoError(t, err)
			assert.Equal(t, d.expected, v)
			for k, s := range p.Stages() {
				assert.Equal(t, vm.Halted, s.State(), "stage %d", k)
			}

			// runs are repeatable
			v, err = p.Run(0)
			require.NoError(t, err)
			assert.Equal(t, d.expected, v)
		})
	}
}

func TestRun_programIsNotModified(t *testing.T) {
	prog := append(vm.Image(nil), amp...)
	p, err := pipeline.New(prog, []vm.Cell{1, 2})
	require.NoError(t, err)
	_, err = p.Run(0)
	require.NoError(t, err)
	assert.Equal(t, amp, prog)
}

func TestNew_errors(t *testing.T) {
	_, err := pipeline.New(amp, nil)
	assert.Equal(t, pipeline.ErrNoStages, err)

	_, err = pipeline.New(amp, []vm.Cell{0}, pipeline.VMOptions(vm.Input(nil)))
	assert.Error(t, err)
}

func TestRun_errors(t *testing.T) {
	// needs three input values
	p, err := pipeline.New(vm.Image{3, 0, 3, 0, 3, 0, 99}, []vm.Cell{0})
	require.NoError(t, err)
	_, err = p.Run(0)
	assert.Equal(t, vm.ErrExhaustedInput, errors.Cause(err))

	// no output
	p, err = pipeline.New(vm.Image{3, 0, 3, 0, 99}, []vm.Cell{0})
	require.NoError(t, err)
	_, err = p.Run(0)
	assert.Equal(t, pipeline.ErrNoOutput, err)

	// stage 1 never gets its signal
	p, err = pipeline.New(vm.Image{3, 0, 3, 0, 99}, []vm.Cell{0, 0}, pipeline.Feedback(true))
	require.NoError(t, err)
	_, err = p.Run(0)
	assert.Equal(t, pipeline.ErrDeadlock, errors.Cause(err))
	assert.Equal(t, vm.Suspended, p.Stages()[1].State())

	// fatal VM errors are reported with the stage number
	p, err = pipeline.New(vm.Image{3, 0, 77}, []vm.Cell{0, 0}, pipeline.Feedback(true))
	require.NoError(t, err)
	_, err = p.Run(0)
	assert.Equal(t, vm.ErrUnknownOpcode, errors.Cause(err))
	assert.Contains(t, err.Error(), "stage 0")
}

func TestLogger(t *testing.T) {
	var b bytes.Buffer
	p, err := pipeline.New(feedback, []vm.Cell{9, 8}, pipeline.Feedback(true),
		pipeline.Logger(log.New(&b, log.LevelDebug)))
	require.NoError(t, err)
	_, err = p.Run(0)
	require.NoError(t, err)
	assert.Contains(t, b.String(), "stage=1")
	assert.Contains(t, b.String(), "msg=round")
}

func TestBest(t *testing.T) {
	v, order, err := pipeline.Best(amp, []vm.Cell{0, 1, 2, 3, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(43210), v)
	assert.Equal(t, []vm.Cell{4, 3, 2, 1, 0}, order)

	v, order, err = pipeline.Best(feedback, []vm.Cell{5, 6, 7, 8, 9}, 0, pipeline.Feedback(true))
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(139629729), v)
	assert.Equal(t, []vm.Cell{9, 8, 7, 6, 5}, order)

	_, _, err = pipeline.Best(amp, nil, 0)
	assert.Equal(t, pipeline.ErrNoStages, err)
}
