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
	"slices"

	"github.com/db47h/intcode/vm"
)

// Best runs a pipeline for every permutation of phases and returns the
// highest signal along with the phase order that produced it.
func Best(program vm.Image, phases []vm.Cell, signal vm.Cell, opts ...Option) (best vm.Cell, order []vm.Cell, err error) {
	if len(phases) == 0 {
		return 0, nil, ErrNoStages
	}
	a := slices.Clone(phases)
	err = permute(a, func(perm []vm.Cell) error {
		p, err := New(program, perm, opts...)
		if err != nil {
			return err
		}
		v, err := p.Run(signal)
		if err != nil {
			return err
		}
		if order == nil || v > best {
			best, order = v, slices.Clone(perm)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// permute calls fn for every permutation of a, using Heap's algorithm.
func permute(a []vm.Cell, fn func([]vm.Cell) error) error {
	c := make([]int, len(a))
	if err := fn(a); err != nil {
		return err
	}
	for i := 1; i < len(a); {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if err := fn(a); err != nil {
				return err
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}
