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

package interproc

import (
	"fmt"

	"github.com/google/go-flow-taint/internal/pkg/alias"
	"github.com/google/go-flow-taint/internal/pkg/classify"
	"github.com/google/go-flow-taint/internal/pkg/diagnostic"
	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/taint"
)

// transfer is the taint analysis of one function body in one calling context.
type transfer struct {
	run  *run
	body *ir.Body
	// seed holds the initial taint of each parameter.
	seed []bool
}

func (t *transfer) Initialize(body *ir.Body, entry *taint.State) {
	for i, tainted := range t.seed {
		if tainted {
			entry.Mark(ir.Slot(i+1), true)
		}
	}
}

func (t *transfer) domain(state *taint.State) *alias.Domain {
	return t.run.aliases.Domain(t.body.Func, state)
}

func (t *transfer) ApplyStatement(state *taint.State, stmt ir.Assign, loc ir.Location) error {
	d := t.domain(state)
	switch rv := stmt.Value.(type) {
	case ir.Use:
		assignOperand(d, stmt.Target, rv.Operand)
	case ir.UnaryOp:
		assignOperand(d, stmt.Target, rv.Operand)
	case ir.BinaryOp:
		left, leftVar := ir.SlotOf(rv.Left)
		right, rightVar := ir.SlotOf(rv.Right)
		switch {
		case leftVar && rightVar:
			d.SetTaint(stmt.Target, d.IsTainted(left) || d.IsTainted(right))
		case leftVar:
			d.Propagate(left, stmt.Target)
		case rightVar:
			d.Propagate(right, stmt.Target)
		default:
			d.SetTaint(stmt.Target, false)
		}
	case ir.Ref:
		t.run.aliases.AddEdge(t.body.Func, stmt.Target, rv.Place)
	case ir.Opaque:
	default:
		return fmt.Errorf("%s: unexpected rvalue %T", loc, rv)
	}
	return nil
}

func assignOperand(d *alias.Domain, target ir.Slot, op ir.Operand) {
	if src, ok := ir.SlotOf(op); ok {
		d.Propagate(src, target)
		return
	}
	d.SetTaint(target, false)
}

func (t *transfer) ApplyTerminator(state *taint.State, term ir.Terminator, loc ir.Location) error {
	switch term := term.(type) {
	case ir.Call:
		return t.applyCall(t.domain(state), term, loc)
	case ir.Goto, ir.SwitchInt, ir.Return, ir.Assert:
		return nil
	default:
		return fmt.Errorf("%s: unexpected terminator %T", loc, term)
	}
}

func (t *transfer) applyCall(d *alias.Domain, call ir.Call, loc ir.Location) error {
	switch t.run.oracle.Classify(call.Func) {
	case classify.Source:
		if call.Dest != nil {
			d.SetTaint(call.Dest.Slot, true)
		}
	case classify.Sanitizer:
		if call.Dest != nil {
			d.SetTaint(call.Dest.Slot, false)
		}
	case classify.Sink:
		for _, arg := range call.Args {
			if s, ok := ir.SlotOf(arg); ok && d.IsTainted(s) {
				t.run.report(diagnostic.Finding{
					Kind:     diagnostic.TaintedSink,
					Func:     call.Func,
					Location: loc,
				})
				break
			}
		}
	default:
		return t.applyUnclassified(d, call, loc)
	}
	return nil
}

// applyUnclassified analyzes the callee with the taint of the actual
// arguments and folds its summary back into the caller.
func (t *transfer) applyUnclassified(d *alias.Domain, call ir.Call, loc ir.Location) error {
	vector := make([]bool, len(call.Args))
	for i, arg := range call.Args {
		if s, ok := ir.SlotOf(arg); ok {
			vector[i] = d.IsTainted(s)
		}
	}

	summary, err := t.run.analyze(call.Func, vector)
	if err != nil {
		return fmt.Errorf("call to %s at %s: %w", call.Func, loc, err)
	}

	if call.Dest != nil {
		d.SetTaint(call.Dest.Slot, summary.Return)
	}
	for i, arg := range call.Args {
		s, ok := ir.SlotOf(arg)
		if ok && summary.Param(i) {
			d.SetTaint(s, true)
		}
	}
	return nil
}
