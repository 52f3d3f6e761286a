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

package classify

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-flow-taint/internal/pkg/ir"
)

func TestNewTable(t *testing.T) {
	table, err := NewTable([]ir.FuncID{"input"}, []ir.FuncID{"output"}, []ir.FuncID{"clean"})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	for fn, want := range map[ir.FuncID]Kind{
		"input":  Source,
		"output": Sink,
		"clean":  Sanitizer,
		"helper": Unclassified,
	} {
		if got := table.Classify(fn); got != want {
			t.Errorf("Classify(%q) = %v, want %v", fn, got, want)
		}
	}
}

func TestNewTableRejectsConflicts(t *testing.T) {
	_, err := NewTable([]ir.FuncID{"f"}, []ir.FuncID{"f"}, nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("NewTable error = %v, want %v", err, ErrConflict)
	}
}

func TestChain(t *testing.T) {
	first := Table{"a": Source}
	second := Table{"a": Sink, "b": Sanitizer}
	o := Chain(first, second)

	if got := o.Classify("a"); got != Source {
		t.Errorf("Classify(a) = %v, want the first oracle's answer", got)
	}
	if got := o.Classify("b"); got != Sanitizer {
		t.Errorf("Classify(b) = %v, want fallthrough to the second oracle", got)
	}
	if got := o.Classify("c"); got != Unclassified {
		t.Errorf("Classify(c) = %v, want Unclassified", got)
	}
}

type prefixMatcher struct{}

func (prefixMatcher) IsSource(_, _, name string) bool    { return strings.HasPrefix(name, "input") }
func (prefixMatcher) IsSink(_, _, name string) bool      { return strings.HasPrefix(name, "output") }
func (prefixMatcher) IsSanitizer(_, _, name string) bool { return strings.HasPrefix(name, "in") }

func TestFromMatcher(t *testing.T) {
	decompose := func(fn ir.FuncID) (string, string, string, bool) {
		if fn == "unknown" {
			return "", "", "", false
		}
		return "example.com/core", "", string(fn), true
	}
	o := FromMatcher(prefixMatcher{}, decompose)

	testCases := []struct {
		fn   ir.FuncID
		want Kind
	}{
		{"inputString", Source},
		{"outputString", Sink},
		{"inspect", Sanitizer},
		{"helper", Unclassified},
		{"unknown", Unclassified},
	}
	for _, tc := range testCases {
		if got := o.Classify(tc.fn); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.fn, got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"source", "sink", "sanitizer"} {
		k, ok := ParseKind(name)
		if !ok || k.String() != name {
			t.Errorf("ParseKind(%q) = %v, %v", name, k, ok)
		}
	}
	if _, ok := ParseKind("sauce"); ok {
		t.Errorf("ParseKind(sauce) should fail")
	}
}
