// Copyright 2019 Google LLC
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

// Package debug writes analysis artifacts to disk for inspection.
package debug

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/google/go-flow-taint/internal/pkg/ir"
)

// WriteGraph writes the DOT source representing the graph of fn to a file in dir.
func WriteGraph(dir string, fn ir.FuncID, source string) error {
	return ioutil.WriteFile(filepath.Join(dir, FileName(fn)+".dot"), []byte(source), 0666)
}

// FileName turns a function id into a name usable as a file name.
func FileName(fn ir.FuncID) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '*', '(', ')', ' ':
			return '_'
		}
		return r
	}, string(fn))
}
