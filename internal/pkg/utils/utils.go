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

// Package utils contains various utility functions.
package utils

import (
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// Dereference returns the underlying type of a pointer.
// If the input is not a pointer, then the type of the input is returned.
func Dereference(t types.Type) types.Type {
	for {
		tt, ok := t.Underlying().(*types.Pointer)
		if !ok {
			return t
		}
		t = tt.Elem()
	}
}

// UnqualifiedName returns the type of v with every package qualifier removed,
// e.g. "map[foo]string" rather than "map[example.com/p.foo]string".
func UnqualifiedName(v *types.Var) string {
	return types.TypeString(v.Type(), func(*types.Package) string { return "" })
}

// DecomposeFunction returns the path, receiver, and name strings of a ssa.Function.
// The receiver is the name of the receiver's type, without any pointer.
// For functions that have no receiver, returns an empty string for recv.
// For shared functions (wrappers and error.Error), returns an empty string for path.
// Panics if provided a nil argument.
func DecomposeFunction(f *ssa.Function) (path, recv, name string) {
	if f.Pkg != nil {
		path = f.Pkg.Pkg.Path()
	}
	name = f.Name()
	if recvVar := f.Signature.Recv(); recvVar != nil {
		if n, ok := Dereference(recvVar.Type()).(*types.Named); ok {
			recv = n.Obj().Name()
		} else {
			recv = UnqualifiedName(recvVar)
		}
	}
	return
}
