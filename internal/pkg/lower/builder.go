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

package lower

import (
	"go/token"
	"go/types"

	"github.com/google/go-flow-taint/internal/pkg/classify"
	"github.com/google/go-flow-taint/internal/pkg/ir"
	"github.com/google/go-flow-taint/internal/pkg/propagation"
	"golang.org/x/tools/go/ssa"
)

// builder lowers one SSA function.
// SSA block i becomes IR block i. Blocks split at calls are appended
// after the blocks of the SSA function.
type builder struct {
	p    *Program
	fn   *ssa.Function
	body *ir.Body
	cur  ir.BlockID

	slots map[ssa.Value]ir.Slot
	// shadows receive the incoming value of a phi at the end of each
	// predecessor, so that all phis of a block are assigned at once.
	shadows map[*ssa.Phi]ir.Slot
	// scratch receives the results of go and defer calls.
	scratch ir.Slot
	// temp holds the taint flowing through a summarized library call.
	temp ir.Slot
}

func lowerFunc(p *Program, fn *ssa.Function) *ir.Body {
	b := &builder{
		p:       p,
		fn:      fn,
		slots:   make(map[ssa.Value]ir.Slot),
		shadows: make(map[*ssa.Phi]ir.Slot),
		body: &ir.Body{
			Func:      FuncID(fn),
			ArgCount:  len(fn.Params) + len(fn.FreeVars),
			SlotNames: map[ir.Slot]string{ir.ReturnSlot: "return"},
		},
	}
	b.allocateSlots()

	b.body.Blocks = make([]ir.Block, len(fn.Blocks))
	for _, blk := range fn.Blocks {
		b.cur = ir.BlockID(blk.Index)
		for _, instr := range blk.Instrs {
			b.lowerInstr(instr)
		}
	}
	return b.body
}

// allocateSlots numbers the parameters, then free variables, then every
// value defined by an instruction.
func (b *builder) allocateSlots() {
	next := ir.Slot(1)
	add := func(v ssa.Value, name string) {
		b.slots[v] = next
		if name != "" {
			b.body.SlotNames[next] = name
		}
		next++
	}
	for _, param := range b.fn.Params {
		add(param, param.Name())
	}
	for _, fv := range b.fn.FreeVars {
		add(fv, fv.Name())
	}
	for _, blk := range b.fn.Blocks {
		for _, instr := range blk.Instrs {
			v, ok := instr.(ssa.Value)
			if !ok {
				continue
			}
			add(v, "")
			if phi, ok := v.(*ssa.Phi); ok {
				b.shadows[phi] = next
				next++
			}
		}
	}
	b.scratch = next
	b.temp = next + 1
	b.body.SlotCount = int(b.temp) + 1
}

func (b *builder) assign(target ir.Slot, rv ir.Rvalue, pos token.Pos) {
	blk := &b.body.Blocks[b.cur]
	blk.Stmts = append(blk.Stmts, ir.Assign{Target: target, Value: rv, Pos: pos})
}

func (b *builder) terminate(t ir.Terminator) {
	b.body.Blocks[b.cur].Term = t
}

func (b *builder) newBlock() ir.BlockID {
	b.body.Blocks = append(b.body.Blocks, ir.Block{})
	return ir.BlockID(len(b.body.Blocks) - 1)
}

func (b *builder) operand(v ssa.Value) ir.Operand {
	if s, ok := b.slots[v]; ok {
		return ir.Copy{Slot: s}
	}
	if c, ok := v.(*ssa.Const); ok && c.Value != nil {
		return ir.Constant{Value: c.Value.ExactString()}
	}
	return ir.Constant{Value: v.Name()}
}

func (b *builder) operands(vs []ssa.Value) []ir.Operand {
	ops := make([]ir.Operand, len(vs))
	for i, v := range vs {
		ops[i] = b.operand(v)
	}
	return ops
}

// union assigns to target a value tainted when any of ops is.
func (b *builder) union(target ir.Slot, ops []ir.Operand, pos token.Pos) {
	if len(ops) == 0 {
		b.assign(target, ir.Use{Operand: ir.Constant{}}, pos)
		return
	}
	b.assign(target, ir.Use{Operand: ops[0]}, pos)
	for _, op := range ops[1:] {
		b.assign(target, ir.BinaryOp{Op: "union", Left: ir.Copy{Slot: target}, Right: op}, pos)
	}
}

func (b *builder) lowerInstr(instr ssa.Instruction) {
	pos := instr.Pos()
	switch instr := instr.(type) {
	case *ssa.Call:
		b.call(instr.Common(), b.slots[instr], pos)
	case *ssa.Go:
		b.call(instr.Common(), b.scratch, pos)
	case *ssa.Defer:
		b.call(instr.Common(), b.scratch, pos)

	case *ssa.Phi:
		b.assign(b.slots[instr], ir.Use{Operand: ir.Copy{Slot: b.shadows[instr]}}, pos)

	case *ssa.Store:
		addr, ok := b.slots[instr.Addr]
		if !ok {
			// Package-level variables have no slot. Stores to them are
			// dropped and loads from them are untainted constants.
			return
		}
		// Only a local variable is overwritten as a whole.
		if _, local := instr.Addr.(*ssa.Alloc); local {
			b.assign(addr, ir.Use{Operand: b.operand(instr.Val)}, pos)
			return
		}
		b.assign(addr, ir.BinaryOp{Op: "store", Left: ir.Copy{Slot: addr}, Right: b.operand(instr.Val)}, pos)
	case *ssa.MapUpdate:
		b.update(instr.Map, instr.Value, "mapupdate", pos)
	case *ssa.Send:
		b.update(instr.Chan, instr.X, "send", pos)

	case *ssa.FieldAddr:
		b.ref(instr, instr.X, pos)
	case *ssa.IndexAddr:
		b.ref(instr, instr.X, pos)

	case *ssa.UnOp:
		switch instr.Op {
		case token.MUL, token.ARROW:
			b.assign(b.slots[instr], ir.Use{Operand: b.operand(instr.X)}, pos)
		default:
			b.assign(b.slots[instr], ir.UnaryOp{Op: instr.Op.String(), Operand: b.operand(instr.X)}, pos)
		}
	case *ssa.BinOp:
		b.assign(b.slots[instr], ir.BinaryOp{Op: instr.Op.String(), Left: b.operand(instr.X), Right: b.operand(instr.Y)}, pos)

	case *ssa.Select:
		var chans []ir.Operand
		for _, st := range instr.States {
			chans = append(chans, b.operand(st.Chan))
		}
		b.union(b.slots[instr], chans, pos)
	case *ssa.MakeClosure:
		b.union(b.slots[instr], b.operands(instr.Bindings), pos)
	case *ssa.Alloc, *ssa.MakeSlice, *ssa.MakeMap, *ssa.MakeChan:
		v := instr.(ssa.Value)
		b.assign(b.slots[v], ir.Use{Operand: ir.Constant{Value: "new"}}, pos)

	case *ssa.If:
		b.phiCopies(instr.Block())
		succs := instr.Block().Succs
		b.terminate(ir.SwitchInt{
			Discr:   b.operand(instr.Cond),
			Targets: []ir.BlockID{ir.BlockID(succs[0].Index), ir.BlockID(succs[1].Index)},
		})
	case *ssa.Jump:
		b.phiCopies(instr.Block())
		b.terminate(ir.Goto{Target: ir.BlockID(instr.Block().Succs[0].Index)})
	case *ssa.Return:
		if len(instr.Results) > 0 {
			b.union(ir.ReturnSlot, b.operands(instr.Results), pos)
		}
		b.terminate(ir.Return{})
	case *ssa.Panic:
		if b.p.oracle.Classify(PanicID) != classify.Unclassified {
			b.terminate(ir.Call{Func: PanicID, Args: []ir.Operand{b.operand(instr.X)}, Pos: pos})
			return
		}
		b.terminate(ir.Return{})

	default:
		if v, ok := instr.(ssa.Value); ok {
			if from, ok := derivedFrom(instr); ok {
				if s, ok := b.slots[from]; ok && sharesStorage(instr, from) {
					b.assign(b.slots[v], ir.Ref{Place: s}, pos)
				}
				b.assign(b.slots[v], ir.Use{Operand: b.operand(from)}, pos)
			}
		}
	}
}

// derivedFrom returns the operand the result of a single-operand
// instruction is derived from.
func derivedFrom(instr ssa.Instruction) (ssa.Value, bool) {
	switch instr := instr.(type) {
	case *ssa.Field:
		return instr.X, true
	case *ssa.Index:
		return instr.X, true
	case *ssa.Lookup:
		return instr.X, true
	case *ssa.Slice:
		return instr.X, true
	case *ssa.Convert:
		return instr.X, true
	case *ssa.ChangeType:
		return instr.X, true
	case *ssa.ChangeInterface:
		return instr.X, true
	case *ssa.MakeInterface:
		return instr.X, true
	case *ssa.SliceToArrayPointer:
		return instr.X, true
	case *ssa.TypeAssert:
		return instr.X, true
	case *ssa.Extract:
		return instr.Tuple, true
	case *ssa.Next:
		return instr.Iter, true
	case *ssa.Range:
		return instr.X, true
	}
	return nil, false
}

// sharesStorage reports whether the result of instr refers to the same
// storage as its operand x, so that writes through one reach the other.
func sharesStorage(instr ssa.Instruction, x ssa.Value) bool {
	switch instr.(type) {
	case *ssa.MakeInterface, *ssa.ChangeType, *ssa.Convert, *ssa.Slice, *ssa.SliceToArrayPointer:
	default:
		return false
	}
	switch x.Type().Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan:
		return true
	}
	return false
}

// call lowers a call, go or defer statement whose result goes to dest.
func (b *builder) call(c *ssa.CallCommon, dest ir.Slot, pos token.Pos) {
	if callee := c.StaticCallee(); callee != nil {
		args := b.operands(c.Args)
		if mc, ok := c.Value.(*ssa.MakeClosure); ok {
			args = append(args, b.operands(mc.Bindings)...)
		}
		id := b.p.reg.Add(callee)
		if b.p.oracle.Classify(id) != classify.Unclassified || b.p.hasBody(callee) {
			next := b.newBlock()
			b.terminate(ir.Call{
				Func: id,
				Args: args,
				Dest: &ir.Destination{Slot: dest, Next: next},
				Pos:  pos,
			})
			b.cur = next
			return
		}
	}

	ops := b.operands(c.Args)
	if c.IsInvoke() {
		ops = append([]ir.Operand{b.operand(c.Value)}, ops...)
	}
	if summ, ok := propagation.ForCall(c); ok {
		b.applySummary(summ, ops, dest, pos)
		return
	}
	b.union(dest, ops, pos)
}

// applySummary lowers a library call with a known summary. The receiver,
// if any, is the first of ops.
func (b *builder) applySummary(summ propagation.Summary, ops []ir.Operand, dest ir.Slot, pos token.Pos) {
	var from []ir.Operand
	for _, i := range summ.From {
		if i < len(ops) {
			from = append(from, ops[i])
		}
	}
	b.union(b.temp, from, pos)

	if summ.ToResults {
		b.assign(dest, ir.Use{Operand: ir.Copy{Slot: b.temp}}, pos)
	} else {
		b.assign(dest, ir.Use{Operand: ir.Constant{}}, pos)
	}
	for _, i := range summ.ToArgs {
		if i >= len(ops) {
			continue
		}
		if s, ok := ir.SlotOf(ops[i]); ok {
			b.assign(s, ir.BinaryOp{Op: "union", Left: ir.Copy{Slot: s}, Right: ir.Copy{Slot: b.temp}}, pos)
		}
	}
}

// update makes container tainted when v is, without untainting it.
func (b *builder) update(container, v ssa.Value, op string, pos token.Pos) {
	s, ok := b.slots[container]
	if !ok {
		return
	}
	b.assign(s, ir.BinaryOp{Op: op, Left: ir.Copy{Slot: s}, Right: b.operand(v)}, pos)
}

// ref lowers the address of a field or element of base. The address
// refers to base, so writing through it taints base, and it starts
// with the taint of base.
func (b *builder) ref(addr ssa.Value, base ssa.Value, pos token.Pos) {
	target := b.slots[addr]
	s, ok := b.slots[base]
	if !ok {
		b.assign(target, ir.Use{Operand: b.operand(base)}, pos)
		return
	}
	b.assign(target, ir.Ref{Place: s}, pos)
	b.assign(target, ir.Use{Operand: ir.Copy{Slot: s}}, pos)
}

// phiCopies assigns the shadow slots of the phis in the successors of blk
// with the values flowing in from blk.
func (b *builder) phiCopies(blk *ssa.BasicBlock) {
	for _, succ := range blk.Succs {
		edge := -1
		for i, pred := range succ.Preds {
			if pred == blk {
				edge = i
				break
			}
		}
		if edge < 0 {
			continue
		}
		for _, instr := range succ.Instrs {
			phi, ok := instr.(*ssa.Phi)
			if !ok {
				break
			}
			b.assign(b.shadows[phi], ir.Use{Operand: b.operand(phi.Edges[edge])}, phi.Pos())
		}
	}
}
