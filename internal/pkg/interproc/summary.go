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
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/ir"
)

// A Summary describes the effect of a call on taint, for one calling context.
type Summary struct {
	// Return is set when the return slot is tainted at some Return block.
	Return bool
	// Params[i] is set when parameter i+1 is tainted at some Return block.
	Params []bool
}

func newSummary(argCount int) *Summary {
	return &Summary{Params: make([]bool, argCount)}
}

// topSummary assumes the worst about a call.
func topSummary(argCount int) *Summary {
	s := newSummary(argCount)
	s.Return = true
	for i := range s.Params {
		s.Params[i] = true
	}
	return s
}

// Param reports whether argument i is tainted after the call.
// Arguments beyond the callee's parameters are never tainted by it.
func (s *Summary) Param(i int) bool {
	return i < len(s.Params) && s.Params[i]
}

// join merges other into s and reports whether s changed.
func (s *Summary) join(other *Summary) bool {
	changed := false
	if other.Return && !s.Return {
		s.Return = true
		changed = true
	}
	for i, tainted := range other.Params {
		if tainted && i < len(s.Params) && !s.Params[i] {
			s.Params[i] = true
			changed = true
		}
	}
	return changed
}

func (s *Summary) clone() *Summary {
	c := newSummary(len(s.Params))
	c.join(s)
	return c
}

func (s *Summary) String() string {
	var params []string
	for i, tainted := range s.Params {
		if tainted {
			params = append(params, ir.Slot(i+1).String())
		}
	}
	return fmt.Sprintf("return tainted: %t, params tainted: {%s}", s.Return, strings.Join(params, ", "))
}

// A contextKey identifies one analysis of a function: the function
// together with the taint of its parameters on entry.
type contextKey struct {
	fn     ir.FuncID
	vector string
}

func newContextKey(fn ir.FuncID, vector []bool) contextKey {
	var b strings.Builder
	for _, tainted := range vector {
		if tainted {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return contextKey{fn: fn, vector: b.String()}
}

func (k contextKey) String() string {
	return fmt.Sprintf("%s(%s)", k.fn, k.vector)
}

// fit resizes vector to the callee's parameter count.
// Missing arguments are untainted and extra ones are dropped.
func fit(vector []bool, argCount int) []bool {
	out := make([]bool, argCount)
	copy(out, vector)
	return out
}
