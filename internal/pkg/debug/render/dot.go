// Copyright 2019 Google LLC
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

// Package render produces DOT source for lowered function bodies.
package render

import (
	"fmt"
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/fixpoint"
	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/taint"
)

// DOT renders the control flow graph of body, one node per block.
// If states is not nil, each block is labeled with the slots tainted on entry.
func DOT(body *ir.Body, states *fixpoint.Results[*taint.State]) string {
	return (&renderer{body: body, states: states}).Render()
}

type renderer struct {
	strings.Builder
	body   *ir.Body
	states *fixpoint.Results[*taint.State]
}

func (r *renderer) Render() string {
	r.WriteString(fmt.Sprintf("digraph %q {\n", string(r.body.Func)))
	r.writeBlocks()
	r.writeEdges()
	r.WriteString("}\n")
	return r.String()
}

func (r *renderer) writeBlocks() {
	for i, blk := range r.body.Blocks {
		id := ir.BlockID(i)
		lines := []string{r.heading(id)}
		for _, st := range blk.Stmts {
			lines = append(lines, escape(st.String()))
		}
		if blk.Term != nil {
			lines = append(lines, escape(blk.Term.String()))
		}
		r.WriteString(fmt.Sprintf("\t%q [%s, label=\"%s\\l\"];\n", id.String(), r.attrs(id), strings.Join(lines, "\\l")))
	}
}

func (r *renderer) heading(id ir.BlockID) string {
	if r.states == nil {
		return id.String()
	}
	var names []string
	for _, s := range r.states.EntryState(id).Slots() {
		names = append(names, r.body.SlotName(s))
	}
	return id.String() + " {" + escape(strings.Join(names, ", ")) + "}"
}

func (r *renderer) attrs(id ir.BlockID) string {
	switch {
	case id == r.body.Entry:
		return "shape=box, style=bold"
	case isReturn(r.body.Blocks[id].Term):
		return "shape=box, peripheries=2"
	default:
		return "shape=box"
	}
}

func isReturn(t ir.Terminator) bool {
	_, ok := t.(ir.Return)
	return ok
}

func (r *renderer) writeEdges() {
	for i, blk := range r.body.Blocks {
		if blk.Term == nil {
			continue
		}
		// Blue as in call.
		color := "black"
		if _, ok := blk.Term.(ir.Call); ok {
			color = "blue"
		}
		for _, succ := range blk.Term.Successors() {
			r.WriteString(fmt.Sprintf("\t%q -> %q [color=%s];\n", ir.BlockID(i).String(), succ.String(), color))
		}
	}
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
