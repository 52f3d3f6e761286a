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

package ir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourbasic/graph"
)

// ErrMalformedBody is returned by Validate for bodies that violate
// the structural invariants of the IR.
var ErrMalformedBody = errors.New("malformed function body")

// A Block is a basic block: a run of assignments ended by a terminator.
type Block struct {
	Stmts []Assign
	Term  Terminator
}

// A Body is the control flow graph of one function.
type Body struct {
	Func   FuncID
	Entry  BlockID
	Blocks []Block
	// ArgCount is the number of parameters. They occupy slots 1..ArgCount.
	ArgCount int
	// SlotCount is the size of the slot universe. Every slot used by
	// the body is in [0, SlotCount).
	SlotCount int
	// SlotNames optionally maps slots to source-level names for printing.
	SlotNames map[Slot]string
}

// Params returns the parameter slots in order.
func (b *Body) Params() []Slot {
	params := make([]Slot, b.ArgCount)
	for i := range params {
		params[i] = Slot(i + 1)
	}
	return params
}

// Block returns the block with the given id.
func (b *Body) Block(id BlockID) *Block {
	return &b.Blocks[id]
}

// ReturnBlocks returns the blocks that end in a Return terminator.
func (b *Body) ReturnBlocks() []BlockID {
	var ids []BlockID
	for i, blk := range b.Blocks {
		if _, ok := blk.Term.(Return); ok {
			ids = append(ids, BlockID(i))
		}
	}
	return ids
}

// TerminatorLocation returns the Location of the terminator of block id.
func (b *Body) TerminatorLocation(id BlockID) Location {
	loc := Location{Func: b.Func, Block: id, Index: len(b.Blocks[id].Stmts)}
	if c, ok := b.Blocks[id].Term.(Call); ok {
		loc.Pos = c.Pos
	}
	return loc
}

// Validate checks that every slot and block referenced by the body is in range,
// and that every block has a terminator.
func (b *Body) Validate() error {
	if len(b.Blocks) == 0 {
		return fmt.Errorf("%w: %s has no blocks", ErrMalformedBody, b.Func)
	}
	if !b.validBlock(b.Entry) {
		return fmt.Errorf("%w: %s: entry %s out of range", ErrMalformedBody, b.Func, b.Entry)
	}
	if b.ArgCount < 0 || b.ArgCount >= b.SlotCount {
		return fmt.Errorf("%w: %s: %d params do not fit in %d slots", ErrMalformedBody, b.Func, b.ArgCount, b.SlotCount)
	}
	for i, blk := range b.Blocks {
		id := BlockID(i)
		for j, st := range blk.Stmts {
			if err := b.checkSlots(st.Target, slotsOfRvalue(st.Value)...); err != nil {
				return fmt.Errorf("%w: %s[%s:%d]: %v", ErrMalformedBody, b.Func, id, j, err)
			}
		}
		if blk.Term == nil {
			return fmt.Errorf("%w: %s: %s has no terminator", ErrMalformedBody, b.Func, id)
		}
		for _, succ := range blk.Term.Successors() {
			if !b.validBlock(succ) {
				return fmt.Errorf("%w: %s: %s jumps to %s", ErrMalformedBody, b.Func, id, succ)
			}
		}
		if err := b.checkSlots(ReturnSlot, slotsOfTerminator(blk.Term)...); err != nil {
			return fmt.Errorf("%w: %s: %s terminator: %v", ErrMalformedBody, b.Func, id, err)
		}
	}
	return nil
}

func (b *Body) validBlock(id BlockID) bool {
	return id >= 0 && int(id) < len(b.Blocks)
}

func (b *Body) checkSlots(first Slot, rest ...Slot) error {
	for _, s := range append([]Slot{first}, rest...) {
		if s < 0 || int(s) >= b.SlotCount {
			return fmt.Errorf("slot %s out of range [0, %d)", s, b.SlotCount)
		}
	}
	return nil
}

func slotsOfRvalue(rv Rvalue) []Slot {
	switch rv := rv.(type) {
	case Use:
		return slotsOfOperands(rv.Operand)
	case UnaryOp:
		return slotsOfOperands(rv.Operand)
	case BinaryOp:
		return slotsOfOperands(rv.Left, rv.Right)
	case Ref:
		return []Slot{rv.Place}
	}
	return nil
}

func slotsOfTerminator(t Terminator) []Slot {
	switch t := t.(type) {
	case SwitchInt:
		return slotsOfOperands(t.Discr)
	case Assert:
		return slotsOfOperands(t.Cond)
	case Call:
		slots := slotsOfOperands(t.Args...)
		if t.Dest != nil {
			slots = append(slots, t.Dest.Slot)
		}
		return slots
	}
	return nil
}

func slotsOfOperands(ops ...Operand) []Slot {
	var slots []Slot
	for _, o := range ops {
		if s, ok := SlotOf(o); ok {
			slots = append(slots, s)
		}
	}
	return slots
}

// Reachable reports, for every block, whether it can be reached from the entry.
// The body must be valid.
func (b *Body) Reachable() []bool {
	g := graph.New(len(b.Blocks))
	for i, blk := range b.Blocks {
		if blk.Term == nil {
			continue
		}
		for _, succ := range blk.Term.Successors() {
			g.Add(i, int(succ))
		}
	}
	reached := make([]bool, len(b.Blocks))
	reached[b.Entry] = true
	graph.BFS(g, int(b.Entry), func(_, w int, _ int64) {
		reached[w] = true
	})
	return reached
}

// SlotName returns the source-level name of a slot if known, else its number.
func (b *Body) SlotName(s Slot) string {
	if n, ok := b.SlotNames[s]; ok {
		return n
	}
	return s.String()
}

func (b *Body) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fn %s(%d args, %d slots) {\n", b.Func, b.ArgCount, b.SlotCount)
	if len(b.SlotNames) > 0 {
		for s := 0; s < b.SlotCount; s++ {
			if _, ok := b.SlotNames[Slot(s)]; ok {
				fmt.Fprintf(&sb, "    debug %s => %s;\n", b.SlotName(Slot(s)), Slot(s))
			}
		}
	}
	for i, blk := range b.Blocks {
		fmt.Fprintf(&sb, "    %s: {\n", BlockID(i))
		for _, st := range blk.Stmts {
			fmt.Fprintf(&sb, "        %s;\n", st)
		}
		if blk.Term != nil {
			fmt.Fprintf(&sb, "        %s;\n", blk.Term)
		}
		sb.WriteString("    }\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// A Program gives access to the bodies of the functions being analyzed.
type Program interface {
	// Body returns the body of fn, or false if it is not available.
	Body(fn FuncID) (*Body, bool)
}

// Bodies is a Program backed by a map.
type Bodies map[FuncID]*Body

// Body implements Program.
func (bs Bodies) Body(fn FuncID) (*Body, bool) {
	b, ok := bs[fn]
	return b, ok
}
