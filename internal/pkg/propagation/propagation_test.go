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

package propagation

import (
	"go/types"
	"testing"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/analysistest"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/ssa"
)

func TestSummaries(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), analyzer, "summaries")
}

var analyzer = &analysis.Analyzer{
	Name:     "summariestest",
	Doc:      "This analyzer is a test harness for the propagation package.",
	Run:      run,
	Requires: []*analysis.Analyzer{buildssa.Analyzer},
}

// run reports the signature string of every function except testCalls,
// and the summary of every call in testCalls.
func run(pass *analysis.Pass) (interface{}, error) {
	builtSSA := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	for _, f := range builtSSA.SrcFuncs {
		if f.Name() != "testCalls" {
			pass.Reportf(f.Pos(), sigTypeString(f.Type().(*types.Signature)))
			continue
		}
		for _, b := range f.Blocks {
			for _, instr := range b.Instrs {
				call, ok := instr.(*ssa.Call)
				if !ok {
					continue
				}
				if s, ok := ForCall(call.Common()); ok {
					pass.Reportf(call.Pos(), s.String())
				} else {
					pass.Reportf(call.Pos(), "none")
				}
			}
		}
	}
	return nil, nil
}

func TestForFuncUsesQualifiedNames(t *testing.T) {
	for _, name := range []string{"fmt.Sprintf", "(*bufio.Reader).ReadString", "encoding/json.Unmarshal"} {
		if _, ok := ForFunc(name); !ok {
			t.Errorf("ForFunc(%q) found no summary", name)
		}
	}
	if _, ok := ForFunc("Sprintf"); ok {
		t.Error("ForFunc(\"Sprintf\") found a summary for an unqualified name")
	}
}

func TestSummaryString(t *testing.T) {
	cases := []struct {
		desc string
		s    Summary
		want string
	}{
		{
			desc: "result only",
			s:    firstToResult,
			want: "[0] -> result",
		},
		{
			desc: "args only",
			s:    Summary{From: args(1, 2), ToArgs: args(0)},
			want: "[1 2] -> 0",
		},
		{
			desc: "args and result",
			s:    Summary{From: args(0), ToArgs: args(0, 1), ToResults: true},
			want: "[0] -> 0,1,result",
		},
	}
	for _, tt := range cases {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
