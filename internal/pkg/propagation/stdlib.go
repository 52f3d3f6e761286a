// Copyright 2020 Google LLC
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

// Package propagation holds taint summaries for standard library functions
// and interface methods, for calls whose callee has no body to analyze.
package propagation

import (
	"go/types"
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/utils"
	"golang.org/x/tools/go/ssa"
)

// ForFunc returns the summary of a statically called function.
// The name is in ssa.Function.RelString(nil) form, e.g. "(*bytes.Buffer).Write".
func ForFunc(name string) (Summary, bool) {
	s, ok := funcSummaries[name]
	return s, ok
}

// ForMethod returns the summary of an interface method with the given name and signature.
func ForMethod(name string, sig *types.Signature) (Summary, bool) {
	s, ok := methodSummaries[methodKey{name, sigTypeString(sig)}]
	return s, ok
}

// ForCall returns the summary that applies to a call, if any.
// For invoke-mode calls the receiver is argument 0.
func ForCall(cc *ssa.CallCommon) (Summary, bool) {
	if cc.IsInvoke() {
		return ForMethod(cc.Method.Name(), cc.Signature())
	}
	sc := cc.StaticCallee()
	if sc == nil {
		return Summary{}, false
	}
	if s, ok := ForFunc(sc.RelString(nil)); ok {
		return s, true
	}
	if sc.Signature.Recv() == nil {
		return Summary{}, false
	}
	return ForMethod(sc.Name(), sc.Signature)
}

// sigTypeString produces a stripped version of a function's signature, containing
// just the types of the arguments and return values.
// The receiver's type is not included.
// For a function such as:
//   WriteTo(w Writer) (n int64, err error)
// The result is:
//   (Writer)(int64,error)
func sigTypeString(sig *types.Signature) string {
	var b strings.Builder
	writeTuple(&b, sig.Params())
	writeTuple(&b, sig.Results())
	return b.String()
}

func writeTuple(b *strings.Builder, t *types.Tuple) {
	b.WriteByte('(')
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(utils.UnqualifiedName(t.At(i)))
	}
	b.WriteByte(')')
}
