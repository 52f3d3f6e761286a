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

package directive

import (
	"go/ast"
	"go/token"
)

// Ignores holds the lines of one file that carry an ignore directive.
type Ignores map[int]bool

// ScanIgnores finds the ignore directives of file.
func ScanIgnores(fset *token.FileSet, file *ast.File) Ignores {
	ig := Ignores{}
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if name, ok := Parse(c.Text); ok && name == ignore {
				ig[fset.Position(c.Pos()).Line] = true
			}
		}
	}
	return ig
}

// Covers reports whether a finding on line is suppressed: the directive
// is either on the same line or on the line before.
func (ig Ignores) Covers(line int) bool {
	return ig[line] || ig[line-1]
}

// IgnoreSet holds the ignore directives of many files, by file name.
type IgnoreSet map[string]Ignores

// Add scans file and records its ignore directives.
func (s IgnoreSet) Add(fset *token.FileSet, file *ast.File) {
	s[fset.File(file.Pos()).Name()] = ScanIgnores(fset, file)
}

// Covers reports whether a finding at pos is suppressed.
func (s IgnoreSet) Covers(fset *token.FileSet, pos token.Pos) bool {
	if !pos.IsValid() {
		return false
	}
	p := fset.Position(pos)
	return s[p.Filename].Covers(p.Line)
}
