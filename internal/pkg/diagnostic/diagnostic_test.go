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

package diagnostic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-flow-taint/internal/pkg/ir"
)

func TestCollectorDeduplicates(t *testing.T) {
	var forwarded []Finding
	c := &Collector{Forward: SinkFunc(func(f Finding) { forwarded = append(forwarded, f) })}

	at := ir.Location{Func: "main", Block: 2, Index: 1}
	c.Report(Finding{Kind: TaintedSink, Func: "sink", Location: at})
	c.Report(Finding{Kind: TaintedSink, Func: "sink", Location: at})

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if len(forwarded) != 1 {
		t.Errorf("forwarded %d findings, want 1", len(forwarded))
	}
}

func TestCollectorOrdersFindings(t *testing.T) {
	c := &Collector{}
	c.Report(Finding{Kind: TaintedSink, Func: "sink", Location: ir.Location{Func: "main", Block: 3}})
	c.Report(Finding{Kind: TaintedSink, Func: "sink", Location: ir.Location{Func: "helper", Block: 0}})
	c.Report(Finding{Kind: TaintedSink, Func: "sink", Location: ir.Location{Func: "main", Block: 1}})

	var got []ir.Location
	for _, f := range c.Findings() {
		got = append(got, f.Location)
	}
	want := []ir.Location{
		{Func: "helper", Block: 0},
		{Func: "main", Block: 1},
		{Func: "main", Block: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Findings() order diff (-want +got):\n%s", diff)
	}
}

func TestMessage(t *testing.T) {
	testCases := []struct {
		desc string
		f    Finding
		want string
	}{
		{
			desc: "tainted sink",
			f:    Finding{Kind: TaintedSink, Func: "output"},
			want: "function `output` received tainted input [T0001]",
		},
		{
			desc: "invalid directive",
			f:    Finding{Kind: InvalidDirective, Func: "sauce"},
			want: "taint directive `sauce` is invalid; only `source`, `sink` and `sanitizer` are supported [T0002]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := tc.f.Message(); got != tc.want {
				t.Errorf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}
