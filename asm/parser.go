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


package asm

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type constant struct {
	pos   scanner.Position
	value vm.Cell
}

// parser states
const (
	stateNone = iota // expect a statement
	stateArg         // expect an instruction operand
	stateOrg         // expect .org address
	stateEqu         // expect .equ value
	stateDat         // expect .dat value
)

type parser struct {
	img    []vm.Cell
	pc     int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]constant
	locals map[string]int
	errs   ErrAsm
	state  int

	cstName string
	cstPos  scanner.Position

	// instruction being assembled
	ins  int
	op   vm.Opcode
	argc int
	argn int
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]constant),
		locals: make(map[string]int),
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrAsmEntry{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= len(p.img) {
		p.img = append(p.img, make([]vm.Cell, p.pc+1-len(p.img))...)
	}
	p.img[p.pc] = v
	p.pc++
}

func isLocal(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// localRef converts a local label reference like "1-" or "1+" to the internal
// name of the matching definition.
func (p *parser) localRef(name string) string {
	n := len(name) - 1
	if n < 1 || !isLocal(name[:n]) {
		return name
	}
	l := name[:n]
	switch name[n] {
	case '-':
		return l + "·" + strconv.Itoa(p.locals[l])
	case '+':
		return l + "·" + strconv.Itoa(p.locals[l]+1)
	}
	return name
}

func (p *parser) useLabel(pos scanner.Position, name string) {
	name = p.localRef(name)
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(pos scanner.Position, name string) {
	if name == "" {
		p.error(pos, "empty label name")
		return
	}
	if isLocal(name) {
		p.locals[name]++
		name = name + "·" + strconv.Itoa(p.locals[name])
	}
	if c, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition: "+name+", previously defined as a constant here: "+c.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// literal converts integer literals, character literals and constants to
// their value. Any other token is reported as not being a literal.
func (p *parser) literal(pos scanner.Position, s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err == nil && tail != "" {
			err = strconv.ErrSyntax
		}
		if err != nil {
			p.error(pos, "invalid character literal "+s+": "+err.Error())
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return c.value, true
	}
	return 0, false
}

// cell writes the value of a literal or label at the current address.
func (p *parser) cell(pos scanner.Position, s string) {
	if v, ok := p.literal(pos, s); ok {
		p.write(v)
		return
	}
	p.useLabel(pos, s)
	p.write(0)
}

func (p *parser) skipComment(pos scanner.Position) {
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok == scanner.Ident && p.s.TokenText() == ")" {
			return
		}
	}
	p.error(pos, "unterminated comment")
}

func (p *parser) statement(pos scanner.Position, s string) {
	switch s[0] {
	case ':':
		p.defineLabel(pos, s[1:])
		return
	case '.':
		switch s {
		case ".org":
			p.state = stateOrg
		case ".dat":
			p.state = stateDat
		case ".equ":
			if p.s.Scan() != scanner.Ident {
				p.error(p.s.Position, ".equ: expected identifier, got "+p.s.TokenText())
				return
			}
			p.cstName, p.cstPos = p.s.TokenText(), p.s.Position
			if l, ok := p.labels[p.cstName]; ok {
				p.error(p.cstPos, ".equ: redefinition of "+p.cstName+", previously defined or used as a label here: "+l.pos.String())
				return
			}
			if c, ok := p.consts[p.cstName]; ok {
				p.error(p.cstPos, ".equ: redefinition of "+p.cstName+", previous definition here: "+c.pos.String())
				return
			}
			p.state = stateEqu
		default:
			p.error(pos, "unknown directive: "+s)
		}
		return
	}
	if op, ok := mnemonics[s]; ok {
		p.ins, p.op, p.argn = p.pc, op, 0
		p.argc, _ = vm.ArgCount(op)
		p.write(vm.Cell(op))
		if p.argc > 0 {
			p.state = stateArg
		}
		return
	}
	// raw data
	p.cell(pos, s)
}

var pow10 = [...]vm.Cell{100, 1000, 10000}

func (p *parser) operand(pos scanner.Position, s string) {
	if s[0] == ':' || s[0] == '.' {
		p.error(pos, "missing operand for "+p.op.String()+", got "+s)
		p.state = stateNone
		p.statement(pos, s)
		return
	}
	s = strings.TrimSuffix(s, ",")
	if s == "" {
		// lone separator
		return
	}
	mode := vm.Position
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
	case '@':
		mode = vm.Relative
		s = s[1:]
	}
	if s == "" {
		p.error(pos, "missing operand value")
		p.write(0)
	} else {
		p.cell(pos, s)
	}
	if mode == vm.Immediate && p.argn == writeArg(p.op) {
		p.error(pos, "immediate mode not allowed for the destination operand of "+p.op.String())
	}
	p.img[p.ins] += vm.Cell(mode) * pow10[p.argn]
	p.argn++
	if p.argn == p.argc {
		p.state = stateNone
	}
}

func (p *parser) directiveArg(pos scanner.Position, s string) {
	state := p.state
	p.state = stateNone
	if state == stateDat {
		p.cell(pos, s)
		return
	}
	v, ok := p.literal(pos, s)
	if !ok {
		p.error(pos, "expected integer, character or constant, got "+s)
		return
	}
	switch state {
	case stateOrg:
		if v < 0 {
			p.error(pos, ".org: negative address "+s)
			return
		}
		p.pc = int(v)
	case stateEqu:
		p.consts[p.cstName] = constant{p.cstPos, v}
	}
}

func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		pos := p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		if s == "(" {
			p.skipComment(pos)
			continue
		}
		switch p.state {
		case stateArg:
			p.operand(pos, s)
		case stateOrg, stateEqu, stateDat:
			p.directiveArg(pos, s)
		default:
			p.statement(pos, s)
		}
	}
	switch p.state {
	case stateArg:
		p.error(p.s.Pos(), "missing operand for "+p.op.String())
	case stateOrg, stateEqu, stateDat:
		p.error(p.s.Pos(), "missing directive argument")
	}

	for _, n := range slices.Sorted(maps.Keys(p.labels)) {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.img[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	if p.img == nil {
		p.img = []vm.Cell{}
	}
	return vm.Image(p.img), nil
}
