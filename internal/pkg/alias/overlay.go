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

// Package alias tracks which slots may refer to which other slots.
//
// An edge from a to b is recorded when a is assigned a reference to b.
// The alias group of a slot is the transitive closure of edges starting
// at that slot. Taint written to a slot is written to its whole group,
// which is how a write through a reference becomes visible through
// the referenced variable. Only one level of indirection is modelled
// precisely; beyond that the overlay over-approximates.
package alias

import (
	"fmt"
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/taint"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/tools/container/intsets"
)

// Overlay holds the alias edges discovered during one analysis run.
// Slots are scoped to a function body, so edges are kept per function.
// Edges are only ever added.
type Overlay struct {
	edges map[ir.FuncID]map[ir.Slot]*intsets.Sparse
}

// New returns an empty overlay.
func New() *Overlay {
	return &Overlay{edges: make(map[ir.FuncID]map[ir.Slot]*intsets.Sparse)}
}

// AddEdge records that from may point to to, within fn.
// It reports whether the edge is new.
func (o *Overlay) AddEdge(fn ir.FuncID, from, to ir.Slot) bool {
	fnEdges, ok := o.edges[fn]
	if !ok {
		fnEdges = make(map[ir.Slot]*intsets.Sparse)
		o.edges[fn] = fnEdges
	}
	targets, ok := fnEdges[from]
	if !ok {
		targets = new(intsets.Sparse)
		fnEdges[from] = targets
	}
	return targets.Insert(int(to))
}

// Group returns the alias group of slot in fn, in increasing order.
// The group always contains slot itself.
func (o *Overlay) Group(fn ir.FuncID, slot ir.Slot) []ir.Slot {
	var group intsets.Sparse
	o.closure(fn, slot, &group)
	var ints []int
	ints = group.AppendTo(ints)
	slots := make([]ir.Slot, len(ints))
	for i, n := range ints {
		slots[i] = ir.Slot(n)
	}
	return slots
}

// closure expands group from slot until it stops growing.
// The slot universe is finite, so this terminates.
func (o *Overlay) closure(fn ir.FuncID, slot ir.Slot, group *intsets.Sparse) {
	group.Insert(int(slot))
	fnEdges := o.edges[fn]
	if len(fnEdges) == 0 {
		return
	}
	var members []int
	for {
		grew := false
		members = group.AppendTo(members[:0])
		for _, m := range members {
			if targets, ok := fnEdges[ir.Slot(m)]; ok && group.UnionWith(targets) {
				grew = true
			}
		}
		if !grew {
			return
		}
	}
}

// String prints the edges of fn, e.g. "_2 -> {_1}".
func (o *Overlay) String(fn ir.FuncID) string {
	fnEdges := o.edges[fn]
	froms := maps.Keys(fnEdges)
	slices.Sort(froms)
	var parts []string
	for _, from := range froms {
		var ints []int
		var tos []string
		for _, to := range fnEdges[from].AppendTo(ints) {
			tos = append(tos, ir.Slot(to).String())
		}
		parts = append(parts, fmt.Sprintf("%s -> {%s}", from, strings.Join(tos, ", ")))
	}
	return strings.Join(parts, "; ")
}

// Domain is an alias-aware view of the taint state of fn.
type Domain struct {
	overlay *Overlay
	fn      ir.FuncID
	state   *taint.State
}

// Domain returns a view of state for fn that writes through alias groups.
func (o *Overlay) Domain(fn ir.FuncID, state *taint.State) *Domain {
	return &Domain{overlay: o, fn: fn, state: state}
}

// State returns the underlying taint state.
func (d *Domain) State() *taint.State {
	return d.state
}

// SetTaint marks every member of slot's alias group.
func (d *Domain) SetTaint(slot ir.Slot, tainted bool) {
	for _, s := range d.overlay.Group(d.fn, slot) {
		d.state.Mark(s, tainted)
	}
}

// IsTainted reports whether any member of slot's alias group is tainted.
// Reading a reference observes the taint of what it refers to.
func (d *Domain) IsTainted(slot ir.Slot) bool {
	for _, s := range d.overlay.Group(d.fn, slot) {
		if d.state.IsTainted(s) {
			return true
		}
	}
	return false
}

// SlotTainted reports whether slot itself is tainted, ignoring aliases.
func (d *Domain) SlotTainted(slot ir.Slot) bool {
	return d.state.IsTainted(slot)
}

// Propagate gives to, and everything it aliases, the taint of from.
func (d *Domain) Propagate(from, to ir.Slot) {
	d.SetTaint(to, d.IsTainted(from))
}
