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

// Package fixpoint implements a generic forward dataflow solver over the
// control flow graph of an ir.Body.
//
// The solver knows nothing about taint: it only needs a join semi-lattice
// whose join never removes information, and per-statement transfer
// functions. Block entry states only grow, and a block is revisited only
// when its entry state grew, so the solver terminates on any lattice of
// finite height.
package fixpoint

import (
	"github.com/google/go-flow-taint/internal/pkg/ir"
)

// A Lattice describes the domain of an analysis.
type Lattice[D any] interface {
	// Bottom returns the least element.
	Bottom() D
	// Join merges src into dst and reports whether dst changed.
	Join(dst, src D) bool
	// Clone returns an independent copy.
	Clone(D) D
	// Equal reports whether two elements are the same.
	Equal(a, b D) bool
}

// An Analysis supplies the transfer functions of a forward dataflow problem.
// Apply methods mutate state in place. A non-nil error aborts the solve.
type Analysis[D any] interface {
	// Initialize seeds the entry state of the entry block, which starts at bottom.
	Initialize(body *ir.Body, entry D)
	ApplyStatement(state D, stmt ir.Assign, loc ir.Location) error
	ApplyTerminator(state D, term ir.Terminator, loc ir.Location) error
}

// Results holds the fixpoint of one solve.
type Results[D any] struct {
	Body  *ir.Body
	entry []D
	exit  []D
	// Iterations counts how many times a block was processed.
	Iterations int
}

// EntryState returns the state on entry to block b.
func (r *Results[D]) EntryState(b ir.BlockID) D {
	return r.entry[b]
}

// ExitState returns the state after the terminator of block b,
// before it is joined into any successor. Unreachable blocks have
// bottom as their exit state.
func (r *Results[D]) ExitState(b ir.BlockID) D {
	return r.exit[b]
}

// Solve runs the analysis to a fixpoint over body.
func Solve[D any](body *ir.Body, lat Lattice[D], a Analysis[D]) (*Results[D], error) {
	entry := make([]D, len(body.Blocks))
	for i := range entry {
		entry[i] = lat.Bottom()
	}
	a.Initialize(body, entry[body.Entry])
	return solve(body, lat, a, entry)
}

// SolveFrom resumes from the entry states of an earlier solve of the same body.
// Resuming from a fixpoint reproduces it, visiting each reachable block once.
func SolveFrom[D any](prev *Results[D], lat Lattice[D], a Analysis[D]) (*Results[D], error) {
	entry := make([]D, len(prev.entry))
	for i, s := range prev.entry {
		entry[i] = lat.Clone(s)
	}
	return solve(prev.Body, lat, a, entry)
}

func solve[D any](body *ir.Body, lat Lattice[D], a Analysis[D], entry []D) (*Results[D], error) {
	res := &Results[D]{
		Body:  body,
		entry: entry,
		exit:  make([]D, len(body.Blocks)),
	}
	for i := range res.exit {
		res.exit[i] = lat.Bottom()
	}

	var wl worklist
	wl.init(len(body.Blocks))
	for i, ok := range body.Reachable() {
		if ok {
			wl.push(ir.BlockID(i))
		}
	}

	for !wl.empty() {
		b := wl.pop()
		res.Iterations++

		state := lat.Clone(entry[b])
		if err := applyBlock(body, b, state, a); err != nil {
			return nil, err
		}
		res.exit[b] = lat.Clone(state)

		for _, succ := range body.Blocks[b].Term.Successors() {
			if lat.Join(entry[succ], state) {
				wl.push(succ)
			}
		}
	}
	return res, nil
}

func applyBlock[D any](body *ir.Body, b ir.BlockID, state D, a Analysis[D]) error {
	blk := &body.Blocks[b]
	for i, st := range blk.Stmts {
		loc := ir.Location{Func: body.Func, Block: b, Index: i, Pos: st.Pos}
		if err := a.ApplyStatement(state, st, loc); err != nil {
			return err
		}
	}
	return a.ApplyTerminator(state, blk.Term, body.TerminatorLocation(b))
}

// worklist is a FIFO queue of blocks that holds each block at most once.
type worklist struct {
	queue  []ir.BlockID
	queued []bool
}

func (w *worklist) init(n int) {
	w.queued = make([]bool, n)
}

func (w *worklist) push(b ir.BlockID) {
	if w.queued[b] {
		return
	}
	w.queued[b] = true
	w.queue = append(w.queue, b)
}

func (w *worklist) pop() ir.BlockID {
	b := w.queue[0]
	w.queue = w.queue[1:]
	w.queued[b] = false
	return b
}

func (w *worklist) empty() bool {
	return len(w.queue) == 0
}
