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

// Package interproc drives the taint analysis across function boundaries.
//
// Each function is analyzed by the fixpoint solver with the taint of its
// parameters as the initial state. Calls to sources, sinks and sanitizers
// are resolved by the classification oracle. Any other call is analyzed
// again in the calling context, and its summary is folded back into the
// caller.
package interproc

import (
	"errors"
	"fmt"

	"github.com/google/go-flow-taint/internal/pkg/alias"
	"github.com/google/go-flow-taint/internal/pkg/classify"
	"github.com/google/go-flow-taint/internal/pkg/config"
	"github.com/google/go-flow-taint/internal/pkg/diagnostic"
	"github.com/google/go-flow-taint/internal/pkg/fixpoint"
	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/taint"
)

var (
	// ErrMissingEntry is returned when the program has no body for the entry function.
	ErrMissingEntry = errors.New("entry function not found")
	// ErrMissingBody is returned when an unclassified callee has no body.
	ErrMissingBody = errors.New("no body for unclassified callee")
)

const (
	defaultEntry    ir.FuncID = "main"
	defaultMaxDepth           = 64
)

type options struct {
	entry    ir.FuncID
	maxDepth int
	log      *config.LogGroup
}

// An Option configures Analyze.
type Option func(*options)

// WithEntry sets the function the analysis starts from.
func WithEntry(fn ir.FuncID) Option {
	return func(o *options) { o.entry = fn }
}

// WithMaxDepth bounds how deeply calls are analyzed.
// Calls beyond the bound are assumed to taint their result and all their arguments.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithLogger sets where progress is logged.
func WithLogger(l *config.LogGroup) Option {
	return func(o *options) { o.log = l }
}

// Result describes a completed analysis.
type Result struct {
	// Entry summarizes the entry function.
	Entry *Summary
	// EntryStates holds the fixpoint of the entry function.
	EntryStates *fixpoint.Results[*taint.State]
	// Analyses counts fixpoint runs, including repeated runs of recursive functions.
	Analyses int
	// Aliases holds the alias edges discovered by the analysis.
	Aliases *alias.Overlay
}

// Analyze runs the taint analysis over prog, starting from the entry function.
// Findings are reported to sink. An error means the analysis could not complete.
func Analyze(prog ir.Program, oracle classify.Oracle, sink diagnostic.Sink, opts ...Option) (*Result, error) {
	o := options{entry: defaultEntry, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = config.NewLogGroup(nil)
	}
	if _, ok := prog.Body(o.entry); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntry, o.entry)
	}

	r := &run{
		prog:      prog,
		oracle:    oracle,
		sink:      sink,
		opts:      o,
		aliases:   alias.New(),
		memo:      make(map[contextKey]*frame),
		validated: make(map[ir.FuncID]bool),
	}
	summary, err := r.analyze(o.entry, nil)
	if err != nil {
		return nil, err
	}
	return &Result{
		Entry:       summary,
		EntryStates: r.entryStates,
		Analyses:    r.analyses,
		Aliases:     r.aliases,
	}, nil
}

// run holds the state shared by all analyses started from one entry point.
type run struct {
	prog   ir.Program
	oracle classify.Oracle
	sink   diagnostic.Sink
	opts   options

	aliases   *alias.Overlay
	memo      map[contextKey]*frame
	stack     []*frame
	validated map[ir.FuncID]bool

	analyses    int
	entryStates *fixpoint.Results[*taint.State]
}

// A frame is one analysis of a function in a calling context.
// While it is in progress, its summary is an under-approximation
// that grows with every pass.
type frame struct {
	key        contextKey
	summary    *Summary
	inProgress bool
	// pass counts the passes started over the body.
	pass int
	// approximated is set when a recursive call was given the summary
	// during the current pass.
	approximated bool
	// deps maps each frame whose unfinished summary this one used,
	// directly or through another summary, to that frame's pass at the time.
	deps map[*frame]int
}

func (r *run) report(f diagnostic.Finding) {
	r.opts.log.Debugf("%s", f)
	if r.sink != nil {
		r.sink.Report(f)
	}
}

func (r *run) body(fn ir.FuncID) (*ir.Body, error) {
	body, ok := r.prog.Body(fn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingBody, fn)
	}
	if !r.validated[fn] {
		if err := body.Validate(); err != nil {
			return nil, err
		}
		r.validated[fn] = true
	}
	return body, nil
}

// analyze returns the summary of fn called with the given argument taint.
func (r *run) analyze(fn ir.FuncID, vector []bool) (*Summary, error) {
	body, err := r.body(fn)
	if err != nil {
		return nil, err
	}
	vector = fit(vector, body.ArgCount)
	key := newContextKey(fn, vector)

	if f, ok := r.memo[key]; ok {
		switch {
		case f.inProgress:
			r.approximate(f)
			r.opts.log.Tracef("recursive call to %s, using %s", key, f.summary)
			return f.summary.clone(), nil
		case current(f, map[*frame]bool{}):
			r.inherit(f, map[*frame]bool{})
			return f.summary, nil
		}
		r.opts.log.Debugf("summary of %s used an approximation that has since grown, analyzing again", key)
		delete(r.memo, key)
	}

	if len(r.stack) >= r.opts.maxDepth {
		r.opts.log.Warnf("call to %s exceeds depth %d, assuming its result and arguments are tainted", fn, r.opts.maxDepth)
		return topSummary(body.ArgCount), nil
	}

	f := &frame{key: key, summary: newSummary(body.ArgCount), inProgress: true}
	r.memo[key] = f
	r.stack = append(r.stack, f)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	for {
		f.pass++
		f.approximated = false
		f.deps = nil
		s, err := r.solve(body, vector)
		if err != nil {
			delete(r.memo, key)
			return nil, err
		}
		grew := f.summary.join(s)
		if !f.approximated || !grew {
			break
		}
		r.opts.log.Debugf("%s is recursive and its summary grew to %s, analyzing again", key, f.summary)
	}
	f.inProgress = false
	return f.summary, nil
}

// approximate records that f's unfinished summary was used, which makes
// every frame above f depend on its current pass.
func (r *run) approximate(f *frame) {
	f.approximated = true
	r.addDep(f, f.pass)
}

func (r *run) addDep(d *frame, pass int) {
	for i := len(r.stack) - 1; i >= 0 && r.stack[i] != d; i-- {
		g := r.stack[i]
		if g.deps == nil {
			g.deps = make(map[*frame]int)
		}
		g.deps[d] = pass
	}
}

// inherit makes the frames on the stack depend on every unfinished
// summary that the reused summary of f was computed from.
func (r *run) inherit(f *frame, seen map[*frame]bool) {
	if seen[f] {
		return
	}
	seen[f] = true
	for d, pass := range f.deps {
		if d.inProgress {
			r.addDep(d, pass)
		} else {
			r.inherit(d, seen)
		}
	}
}

// current reports whether every approximation f's summary was computed
// from is still in the pass it was taken from. A finished frame whose
// last pass handed out the approximation ended with that same summary.
func current(f *frame, seen map[*frame]bool) bool {
	if seen[f] {
		return true
	}
	seen[f] = true
	for d, pass := range f.deps {
		if d.pass != pass {
			return false
		}
		if !d.inProgress && !current(d, seen) {
			return false
		}
	}
	return true
}

// solve runs one pass of the fixpoint over body and summarizes its exits.
func (r *run) solve(body *ir.Body, vector []bool) (*Summary, error) {
	r.analyses++
	r.opts.log.Tracef("analyzing %s", newContextKey(body.Func, vector))
	if r.opts.log.Level() >= config.TraceLevel {
		r.opts.log.Tracef("%s", body)
	}

	res, err := fixpoint.Solve[*taint.State](body, taint.Lattice{}, &transfer{run: r, body: body, seed: vector})
	if err != nil {
		return nil, err
	}
	if len(r.stack) == 1 {
		r.entryStates = res
	}

	s := newSummary(body.ArgCount)
	for _, b := range body.ReturnBlocks() {
		exit := res.ExitState(b)
		if exit.IsTainted(ir.ReturnSlot) {
			s.Return = true
		}
		for i := range s.Params {
			if exit.IsTainted(ir.Slot(i + 1)) {
				s.Params[i] = true
			}
		}
	}
	return s, nil
}
