// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lower translates functions in golang.org/x/tools SSA form into
// the IR consumed by the taint analysis.
//
// Bodies are lowered on demand. A call to a function whose SSA body is
// available, or whose classification is known, ends the current block with
// a Call terminator so the analysis can resolve it. Any other call is
// assumed to return a value derived from all of its arguments.
package lower

import (
	"github.com/google/go-flow-taint/internal/pkg/classify"
	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/utils"
	"golang.org/x/tools/go/ssa"
)

// PanicID is the call target a panic is lowered to, when it is classified.
const PanicID ir.FuncID = "panic"

// FuncID names fn the way the IR names call targets.
func FuncID(fn *ssa.Function) ir.FuncID {
	return ir.FuncID(fn.RelString(nil))
}

// Registry indexes the SSA functions met while lowering.
type Registry struct {
	funcs map[ir.FuncID]*ssa.Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[ir.FuncID]*ssa.Function)}
}

// Add records fn and returns its id.
func (r *Registry) Add(fn *ssa.Function) ir.FuncID {
	id := FuncID(fn)
	r.funcs[id] = fn
	return id
}

// Lookup returns the function with the given id.
func (r *Registry) Lookup(id ir.FuncID) (*ssa.Function, bool) {
	fn, ok := r.funcs[id]
	return fn, ok
}

// Decompose splits the function with the given id into package path,
// receiver type and name. It implements classify.Decomposer.
func (r *Registry) Decompose(id ir.FuncID) (path, recv, name string, ok bool) {
	fn, ok := r.funcs[id]
	if !ok {
		return "", "", "", false
	}
	path, recv, name = utils.DecomposeFunction(fn)
	return path, recv, name, true
}

// Program is an ir.Program backed by SSA functions.
// Callees are added to the registry as the bodies calling them are lowered.
type Program struct {
	reg     *Registry
	oracle  classify.Oracle
	exclude func(*ssa.Function) bool
	bodies  map[ir.FuncID]*ir.Body
}

// An Option configures a Program.
type Option func(*Program)

// WithExclude keeps the bodies of matching functions out of the program.
// Calls to them are treated like calls to functions without a body.
func WithExclude(exclude func(*ssa.Function) bool) Option {
	return func(p *Program) { p.exclude = exclude }
}

// NewProgram returns a program that lowers the functions in reg.
// The oracle decides which calls stay calls when their callee has no body.
func NewProgram(reg *Registry, oracle classify.Oracle, opts ...Option) *Program {
	p := &Program{
		reg:    reg,
		oracle: oracle,
		bodies: make(map[ir.FuncID]*ir.Body),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Body implements ir.Program.
func (p *Program) Body(id ir.FuncID) (*ir.Body, bool) {
	if b, ok := p.bodies[id]; ok {
		return b, true
	}
	fn, ok := p.reg.Lookup(id)
	if !ok || !p.hasBody(fn) {
		return nil, false
	}
	b := lowerFunc(p, fn)
	p.bodies[id] = b
	return b, true
}

func (p *Program) hasBody(fn *ssa.Function) bool {
	return len(fn.Blocks) > 0 && (p.exclude == nil || !p.exclude(fn))
}
