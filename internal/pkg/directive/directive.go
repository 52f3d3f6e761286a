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

// Package directive reads taint comment directives from Go source.
//
// A function is classified by a directive in its doc comment:
//
//	//taint:source
//	func readRequest() string
//
// The supported classifications are source, sink and sanitizer.
// A //taint:ignore comment on the line of a sink call, or on the line
// before it, suppresses findings at that call.
package directive

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/classify"
)

const (
	prefix = "taint:"
	ignore = "ignore"
)

// ErrInvalid is wrapped by errors for directives that name an unsupported classification.
var ErrInvalid = errors.New("invalid taint directive")

// Parse returns the name of the directive in a comment such as
// "//taint:sink" or "// taint:sink". It reports false for other comments.
func Parse(text string) (string, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(text, prefix)
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name = name[:i]
	}
	return name, true
}

// A Problem is a directive that could not be applied.
type Problem struct {
	Pos  token.Pos
	Name string
	// Err wraps ErrInvalid or classify.ErrConflict.
	Err error
}

// Functions maps the name position of each annotated function declaration
// to its classification. The name position is what ssa.Function.Pos returns.
type Functions map[token.Pos]classify.Kind

// ScanFunctions finds the classification directives on the function
// declarations of file.
func ScanFunctions(file *ast.File) (Functions, []Problem) {
	fns := Functions{}
	var problems []Problem
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			name, ok := Parse(c.Text)
			if !ok || name == ignore {
				continue
			}
			kind, ok := classify.ParseKind(name)
			if !ok {
				problems = append(problems, Problem{
					Pos:  c.Pos(),
					Name: name,
					Err:  fmt.Errorf("%w: %q", ErrInvalid, name),
				})
				continue
			}
			if prev, ok := fns[fd.Name.Pos()]; ok && prev != kind {
				problems = append(problems, Problem{
					Pos:  c.Pos(),
					Name: name,
					Err:  fmt.Errorf("%w: %s is already marked as a %s", classify.ErrConflict, fd.Name.Name, prev),
				})
				continue
			}
			fns[fd.Name.Pos()] = kind
		}
	}
	return fns, problems
}

// Misplaced finds classification directives that are not in the doc
// comment of a function declaration. They have no effect.
func Misplaced(file *ast.File) []token.Pos {
	attached := map[*ast.CommentGroup]bool{}
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Doc != nil {
			attached[fd.Doc] = true
		}
	}
	var out []token.Pos
	for _, cg := range file.Comments {
		if attached[cg] {
			continue
		}
		for _, c := range cg.List {
			if name, ok := Parse(c.Text); ok && name != ignore {
				out = append(out, c.Pos())
			}
		}
	}
	return out
}
