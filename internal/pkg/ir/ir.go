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

// Package ir defines the control-flow-graph representation consumed by the
// taint analysis. A function body is a set of basic blocks, each holding
// assignments and ending in exactly one terminator. Values live in small
// integer slots that are local to one body.
//
// Operands, rvalues and terminators are closed sum types: every variant
// implements an unexported marker method, so a type switch over them
// can be exhaustive.
package ir

import (
	"fmt"
	"go/token"
)

// A Slot identifies a variable within one function body.
type Slot int

// ReturnSlot holds a function's return value.
// Parameters occupy slots 1 through Body.ArgCount.
const ReturnSlot Slot = 0

func (s Slot) String() string {
	return fmt.Sprintf("_%d", int(s))
}

// A BlockID identifies a basic block within one function body.
type BlockID int

// NoBlock is used where a block id is optional.
const NoBlock BlockID = -1

func (b BlockID) String() string {
	return fmt.Sprintf("bb%d", int(b))
}

// A FuncID identifies a function, both as the owner of a Body
// and as the target of a Call.
type FuncID string

// A Location addresses a statement or terminator.
// Index equal to the number of statements in the block addresses the terminator.
type Location struct {
	Func  FuncID
	Block BlockID
	Index int
	// Pos is the source position, if the frontend knows it.
	Pos token.Pos
}

func (l Location) String() string {
	return fmt.Sprintf("%s[%s:%d]", l.Func, l.Block, l.Index)
}

// An Operand is read by an rvalue or a terminator.
// It is one of Copy, Move or Constant.
type Operand interface {
	isOperand()
	String() string
}

// Copy reads a slot.
type Copy struct{ Slot Slot }

// Move reads a slot, leaving it logically dead.
// For taint purposes it behaves exactly like Copy.
type Move struct{ Slot Slot }

// Constant is a literal. It is never tainted.
type Constant struct{ Value string }

func (Copy) isOperand()     {}
func (Move) isOperand()     {}
func (Constant) isOperand() {}

func (o Copy) String() string { return "copy " + o.Slot.String() }
func (o Move) String() string { return "move " + o.Slot.String() }
func (o Constant) String() string {
	if o.Value == "" {
		return "const _"
	}
	return "const " + o.Value
}

// SlotOf returns the slot an operand reads, if it reads one.
func SlotOf(o Operand) (Slot, bool) {
	switch o := o.(type) {
	case Copy:
		return o.Slot, true
	case Move:
		return o.Slot, true
	}
	return 0, false
}

// A Place is something that can be assigned to or referenced.
// This model has no projections, so a place is just a slot.
type Place = Slot

// An Rvalue is the right hand side of an assignment.
// It is one of Use, UnaryOp, BinaryOp, Ref or Opaque.
type Rvalue interface {
	isRvalue()
	String() string
}

// Use reads an operand as is.
type Use struct{ Operand Operand }

// UnaryOp applies a unary operator.
type UnaryOp struct {
	Op      string
	Operand Operand
}

// BinaryOp applies a binary operator.
type BinaryOp struct {
	Op          string
	Left, Right Operand
}

// Ref takes a reference to a place.
type Ref struct{ Place Place }

// Opaque covers any rvalue that does not matter for taint.
type Opaque struct{ Kind string }

func (Use) isRvalue()      {}
func (UnaryOp) isRvalue()  {}
func (BinaryOp) isRvalue() {}
func (Ref) isRvalue()      {}
func (Opaque) isRvalue()   {}

func (r Use) String() string      { return r.Operand.String() }
func (r UnaryOp) String() string  { return fmt.Sprintf("%s(%s)", r.Op, r.Operand) }
func (r BinaryOp) String() string { return fmt.Sprintf("%s(%s, %s)", r.Op, r.Left, r.Right) }
func (r Ref) String() string      { return "&" + r.Place.String() }
func (r Opaque) String() string   { return "opaque " + r.Kind }

// Assign is the only statement kind: Target = Value.
type Assign struct {
	Target Slot
	Value  Rvalue
	Pos    token.Pos
}

func (a Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Target, a.Value)
}

// A Terminator ends a basic block.
// It is one of Goto, SwitchInt, Return, Call or Assert.
type Terminator interface {
	isTerminator()
	// Successors returns the blocks control may flow to next.
	Successors() []BlockID
	String() string
}

// Goto jumps unconditionally.
type Goto struct{ Target BlockID }

// SwitchInt branches on a discriminant.
// The discriminant is never treated as a sink.
type SwitchInt struct {
	Discr   Operand
	Targets []BlockID
}

// Return leaves the function. The returned value is in ReturnSlot.
type Return struct{}

// Destination is where a call writes its result and where control resumes.
type Destination struct {
	Slot Slot
	Next BlockID
}

// Call invokes Func. A nil Dest means the call does not return.
type Call struct {
	Func FuncID
	Args []Operand
	Dest *Destination
	Pos  token.Pos
}

// Assert checks a condition and continues at Target.
type Assert struct {
	Cond   Operand
	Target BlockID
}

func (Goto) isTerminator()      {}
func (SwitchInt) isTerminator() {}
func (Return) isTerminator()    {}
func (Call) isTerminator()      {}
func (Assert) isTerminator()    {}

func (t Goto) Successors() []BlockID      { return []BlockID{t.Target} }
func (t SwitchInt) Successors() []BlockID { return t.Targets }
func (Return) Successors() []BlockID      { return nil }
func (t Assert) Successors() []BlockID    { return []BlockID{t.Target} }

func (t Call) Successors() []BlockID {
	if t.Dest == nil {
		return nil
	}
	return []BlockID{t.Dest.Next}
}

func (t Goto) String() string { return "goto -> " + t.Target.String() }
func (t SwitchInt) String() string {
	return fmt.Sprintf("switchInt(%s) -> %v", t.Discr, t.Targets)
}
func (Return) String() string { return "return" }
func (t Assert) String() string {
	return fmt.Sprintf("assert(%s) -> %s", t.Cond, t.Target)
}

func (t Call) String() string {
	s := fmt.Sprintf("%s(%s)", t.Func, joinOperands(t.Args))
	if t.Dest == nil {
		return s
	}
	return fmt.Sprintf("%s = %s -> %s", t.Dest.Slot, s, t.Dest.Next)
}

func joinOperands(ops []Operand) string {
	var s string
	for i, o := range ops {
		if i > 0 {
			s += ", "
		}
		s += o.String()
	}
	return s
}
