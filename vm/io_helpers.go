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


package vm

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Policy defines the behavior of a Queue when asked for input while empty.
type Policy int

// Queue policies.
const (
	// FailWhenEmpty makes the queue return ErrExhaustedInput, aborting the VM.
	FailWhenEmpty Policy = iota
	// SuspendWhenEmpty makes the queue return ErrSuspend, suspending the VM
	// until more input is pushed and the VM resumed.
	SuspendWhenEmpty
)

// Queue is an unbounded FIFO of Cells. It implements Adapter: a VM reads its
// input from the head of the queue and writes its output to the tail.
//
// A single Queue can be used as the output of one VM and the input of
// another.
type Queue struct {
	policy Policy
	buf    []Cell
	last   Cell
	nOut   int
}

// NewQueue returns a new queue with the given policy and initial content.
func NewQueue(p Policy, init ...Cell) *Queue {
	q := &Queue{policy: p}
	q.Push(init...)
	return q
}

// Push appends values to the queue.
func (q *Queue) Push(v ...Cell) {
	q.buf = append(q.buf, v...)
}

// Pop removes and returns the value at the head of the queue.
func (q *Queue) Pop() (Cell, bool) {
	if len(q.buf) == 0 {
		return 0, false
	}
	v := q.buf[0]
	q.buf = q.buf[1:]
	return v, true
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int { return len(q.buf) }

// Values returns the content of the queue.
func (q *Queue) Values() []Cell { return q.buf }

// Last returns the last value written by a VM through Output. The boolean
// result is false if Output was never called.
func (q *Queue) Last() (Cell, bool) { return q.last, q.nOut > 0 }

// Input implements Source.
func (q *Queue) Input() (Cell, error) {
	if v, ok := q.Pop(); ok {
		return v, nil
	}
	if q.policy == SuspendWhenEmpty {
		return 0, ErrSuspend
	}
	return 0, errors.Wrap(ErrExhaustedInput, "queue empty")
}

// Output implements Sink.
func (q *Queue) Output(v Cell) error {
	q.Push(v)
	q.last = v
	q.nOut++
	return nil
}

// Values returns a Source that supplies the given values, then fails with
// ErrExhaustedInput.
func Values(v ...Cell) Source {
	return NewQueue(FailWhenEmpty, v...)
}

// Collect returns a Sink that appends output values to dst.
func Collect(dst *[]Cell) Sink {
	return SinkFunc(func(v Cell) error {
		*dst = append(*dst, v)
		return nil
	})
}

// Chunked returns a Sink that groups output values by n and calls fn with
// each complete group. The slice passed to fn is reused between calls.
func Chunked(n int, fn func(vs []Cell) error) Sink {
	buf := make([]Cell, 0, n)
	return SinkFunc(func(v Cell) error {
		buf = append(buf, v)
		if len(buf) < n {
			return nil
		}
		err := fn(buf)
		buf = buf[:0]
		return err
	})
}

type multiSource struct {
	sources []Source
}

func (ms *multiSource) Input() (Cell, error) {
	for len(ms.sources) > 0 {
		v, err := ms.sources[0].Input()
		if err == nil || errors.Cause(err) != ErrExhaustedInput {
			return v, err
		}
		// discard the source and optionally close it
		if c, ok := ms.sources[0].(io.Closer); ok {
			c.Close()
		}
		ms.sources = ms.sources[1:]
	}
	return 0, errors.Wrap(ErrExhaustedInput, "all sources exhausted")
}

// MultiSource returns a Source that's the logical concatenation of the
// provided sources. They are read sequentially, moving to the next one when
// the current source returns ErrExhaustedInput. Sources implementing io.Closer
// are closed once exhausted.
func MultiSource(sources ...Source) Source {
	return &multiSource{append([]Source(nil), sources...)}
}

type asciiReader struct {
	r *bufio.Reader
	c io.Closer
}

func (a *asciiReader) Input() (Cell, error) {
	for {
		b, err := a.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, errors.Wrap(ErrExhaustedInput, "ascii input")
			}
			return 0, errors.Wrap(err, "ascii input")
		}
		if b != '\r' {
			return Cell(b), nil
		}
	}
}

func (a *asciiReader) Close() error {
	if a.c != nil {
		return a.c.Close()
	}
	return nil
}

// ASCIIReader returns a Source that supplies the bytes read from r. Carriage
// returns are skipped. If r implements io.Closer, it will be closed by
// MultiSource once exhausted.
func ASCIIReader(r io.Reader) Source {
	a := &asciiReader{}
	if c, ok := r.(io.Closer); ok {
		a.c = c
	}
	if br, ok := r.(*bufio.Reader); ok {
		a.r = br
	} else {
		a.r = bufio.NewReader(r)
	}
	return a
}

type flusher interface {
	Flush() error
}

func flush(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// ASCIIWriter returns a Sink that writes values in the ASCII range to w as
// characters, and any other value as a decimal number on its own line. If w
// has a Flush method, it is called after each new line.
func ASCIIWriter(w io.Writer) Sink {
	var b []byte
	return SinkFunc(func(v Cell) error {
		b = b[:0]
		if v >= 0 && v < 128 {
			b = append(b, byte(v))
		} else {
			b = append(b, '\n')
			b = strconv.AppendInt(b, int64(v), 10)
			b = append(b, '\n')
		}
		if _, err := w.Write(b); err != nil {
			return errors.Wrap(err, "write failed")
		}
		if b[len(b)-1] == '\n' {
			return flush(w)
		}
		return nil
	})
}

// LineWriter returns a Sink that writes each value to w as a decimal number
// on its own line.
func LineWriter(w io.Writer) Sink {
	var b []byte
	return SinkFunc(func(v Cell) error {
		b = strconv.AppendInt(b[:0], int64(v), 10)
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return errors.Wrap(err, "write failed")
		}
		return nil
	})
}
