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

package summaries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func testCalls(w io.Writer, r io.Reader, s fmt.Stringer) {
	var b bytes.Buffer
	b.Write(nil)                // want `^\Q[1] -> 0\E$`
	_ = b.String()              // want `^\Q[0] -> result\E$`
	w.Write(nil)                // want `^\Q[1] -> 0\E$`
	r.Read(nil)                 // want `^\Q[0] -> 1\E$`
	_ = s.String()              // want `^\Q[0] -> result\E$`
	_ = fmt.Sprintf("%s", "x")  // want `^\Q[0 1] -> result\E$`
	_ = strings.ToUpper("x")    // want `^\Q[0] -> result\E$`
	_ = json.Unmarshal(nil, &b) // want `^\Q[0 1] -> 0,1\E$`
	fmt.Fprintf(w, "%s", "x")   // want `^\Q[1 2] -> 0\E$`
	println()                   // want "^none$"
}

func testFuncSignature(slice *[]*interface{}, m map[foo]string, r io.Reader) (err error, oops bool) { // want `^\Q(*[]*interface{},map[foo]string,Reader)(error,bool)\E$`
	return nil, false
}

func (f *foo) testMethodSignature(i int, d float64) *foo { // want `^\Q(int,float64)(*foo)\E$`
	return f
}

type foo struct{}
