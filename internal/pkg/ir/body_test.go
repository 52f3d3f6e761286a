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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		desc    string
		body    *Body
		wantErr bool
	}{
		{
			desc: "well formed",
			body: &Body{
				Func:      "f",
				ArgCount:  1,
				SlotCount: 2,
				Blocks: []Block{
					{Stmts: []Assign{{Target: 0, Value: Use{Copy{1}}}}, Term: Return{}},
				},
			},
		},
		{
			desc:    "no blocks",
			body:    &Body{Func: "f", SlotCount: 1},
			wantErr: true,
		},
		{
			desc: "slot out of range",
			body: &Body{
				Func:      "f",
				SlotCount: 1,
				Blocks: []Block{
					{Stmts: []Assign{{Target: 0, Value: Use{Copy{3}}}}, Term: Return{}},
				},
			},
			wantErr: true,
		},
		{
			desc: "assignment target out of range",
			body: &Body{
				Func:      "f",
				SlotCount: 1,
				Blocks: []Block{
					{Stmts: []Assign{{Target: 5, Value: Use{Constant{"0"}}}}, Term: Return{}},
				},
			},
			wantErr: true,
		},
		{
			desc: "switch on a slot out of range",
			body: &Body{
				Func:      "f",
				SlotCount: 2,
				Blocks: []Block{
					{Term: SwitchInt{Discr: Copy{4}, Targets: []BlockID{1, 1}}},
					{Term: Return{}},
				},
			},
			wantErr: true,
		},
		{
			desc: "jump out of range",
			body: &Body{
				Func:      "f",
				SlotCount: 1,
				Blocks:    []Block{{Term: Goto{Target: 4}}},
			},
			wantErr: true,
		},
		{
			desc: "missing terminator",
			body: &Body{
				Func:      "f",
				SlotCount: 1,
				Blocks:    []Block{{}},
			},
			wantErr: true,
		},
		{
			desc: "call destination out of range",
			body: &Body{
				Func:      "f",
				SlotCount: 1,
				Blocks: []Block{
					{Term: Call{Func: "g", Dest: &Destination{Slot: 7, Next: 1}}},
					{Term: Return{}},
				},
			},
			wantErr: true,
		},
		{
			desc: "too many params",
			body: &Body{
				Func:      "f",
				ArgCount:  2,
				SlotCount: 2,
				Blocks:    []Block{{Term: Return{}}},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.body.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedBody) {
				t.Errorf("Validate() = %v, want an ErrMalformedBody", err)
			}
		})
	}
}

func TestReachable(t *testing.T) {
	body := &Body{
		Func:      "f",
		SlotCount: 2,
		Blocks: []Block{
			{Term: SwitchInt{Discr: Copy{1}, Targets: []BlockID{1, 2}}},
			{Term: Goto{Target: 3}},
			{Term: Goto{Target: 3}},
			{Term: Return{}},
			{Term: Goto{Target: 3}},
		},
	}

	got := body.Reachable()
	want := []bool{true, true, true, true, false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reachable() diff (-want +got):\n%s", diff)
	}
}

func TestReturnBlocks(t *testing.T) {
	body := &Body{
		Blocks: []Block{
			{Term: SwitchInt{Discr: Copy{1}, Targets: []BlockID{1, 2}}},
			{Term: Return{}},
			{Term: Return{}},
		},
	}
	if diff := cmp.Diff([]BlockID{1, 2}, body.ReturnBlocks()); diff != "" {
		t.Errorf("ReturnBlocks() diff (-want +got):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	body := &Body{
		Func:      "main",
		ArgCount:  1,
		SlotCount: 3,
		Blocks: []Block{
			{
				Stmts: []Assign{
					{Target: 2, Value: Ref{Place: 1}},
					{Target: 0, Value: BinaryOp{Op: "add", Left: Copy{1}, Right: Constant{"1"}}},
				},
				Term: Call{Func: "sink", Args: []Operand{Move{2}}, Dest: &Destination{Slot: 2, Next: 1}},
			},
			{Term: Return{}},
		},
	}

	want := `fn main(1 args, 3 slots) {
    bb0: {
        _2 = &_1;
        _0 = add(copy _1, const 1);
        _2 = sink(move _2) -> bb1;
    }
    bb1: {
        return;
    }
}`
	if diff := cmp.Diff(want, body.String()); diff != "" {
		t.Errorf("String() diff (-want +got):\n%s", diff)
	}
}

func TestStringWithSlotNames(t *testing.T) {
	body := &Body{
		Func:      "greet",
		ArgCount:  1,
		SlotCount: 3,
		SlotNames: map[Slot]string{0: "return", 1: "name"},
		Blocks: []Block{
			{Stmts: []Assign{{Target: 0, Value: Use{Copy{1}}}}, Term: Return{}},
		},
	}

	want := `fn greet(1 args, 3 slots) {
    debug return => _0;
    debug name => _1;
    bb0: {
        _0 = copy _1;
        return;
    }
}`
	if diff := cmp.Diff(want, body.String()); diff != "" {
		t.Errorf("String() diff (-want +got):\n%s", diff)
	}
	if got := body.SlotName(2); got != "_2" {
		t.Errorf("SlotName(2) = %q, want %q", got, "_2")
	}
}
