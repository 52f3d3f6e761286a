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

// Package taint implements the taint state of one function activation:
// the set of slots that may hold a tainted value.
//
// States form a lattice under set union. Bottom is the empty set,
// meaning nothing is tainted.
package taint

import (
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/ir"
	"golang.org/x/tools/container/intsets"
)

// State is a set of tainted slots.
// A State must not be copied by value; use Clone.
type State struct {
	bits intsets.Sparse
}

// Bottom returns a state in which no slot is tainted.
func Bottom() *State {
	return new(State)
}

// Top returns a state in which every slot in [0, n) is tainted.
func Top(n int) *State {
	s := new(State)
	for i := 0; i < n; i++ {
		s.bits.Insert(i)
	}
	return s
}

// Of returns a state in which exactly the given slots are tainted.
func Of(slots ...ir.Slot) *State {
	s := new(State)
	for _, slot := range slots {
		s.bits.Insert(int(slot))
	}
	return s
}

// Join returns the union of a and b.
// A slot is tainted at a merge point if it is tainted along any incoming path.
func Join(a, b *State) *State {
	j := a.Clone()
	j.JoinWith(b)
	return j
}

// JoinWith adds every slot tainted in other to s, and reports whether s changed.
func (s *State) JoinWith(other *State) bool {
	return s.bits.UnionWith(&other.bits)
}

// Mark sets the taint of slot.
func (s *State) Mark(slot ir.Slot, tainted bool) {
	if tainted {
		s.bits.Insert(int(slot))
	} else {
		s.bits.Remove(int(slot))
	}
}

// IsTainted reports whether slot is tainted.
func (s *State) IsTainted(slot ir.Slot) bool {
	return s.bits.Has(int(slot))
}

// Propagate gives slot to the same taint as slot from.
func (s *State) Propagate(from, to ir.Slot) {
	s.Mark(to, s.IsTainted(from))
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := new(State)
	c.bits.Copy(&s.bits)
	return c
}

// Equal reports whether s and other taint the same slots.
func (s *State) Equal(other *State) bool {
	return s.bits.Equals(&other.bits)
}

// Slots returns the tainted slots in increasing order.
func (s *State) Slots() []ir.Slot {
	var ints []int
	ints = s.bits.AppendTo(ints)
	slots := make([]ir.Slot, len(ints))
	for i, n := range ints {
		slots[i] = ir.Slot(n)
	}
	return slots
}

func (s *State) String() string {
	var parts []string
	for _, slot := range s.Slots() {
		parts = append(parts, slot.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Lattice adapts States to the fixpoint engine.
type Lattice struct{}

// Bottom implements fixpoint.Lattice.
func (Lattice) Bottom() *State { return Bottom() }

// Join implements fixpoint.Lattice.
func (Lattice) Join(dst, src *State) bool { return dst.JoinWith(src) }

// Clone implements fixpoint.Lattice.
func (Lattice) Clone(s *State) *State { return s.Clone() }

// Equal implements fixpoint.Lattice.
func (Lattice) Equal(a, b *State) bool { return a.Equal(b) }
