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

package main

import (
	"strings"

	"example.com/lib"
)

func main() {
	lib.Log(lib.ReadSecret()) // want "function .example.com/lib.Log. received tainted input \\[T0001\\]\n see the taint policy"
	lib.Log(lib.Redact(lib.ReadSecret()))
	lib.Logf("%s", lib.ReadSecret()) // want "function .example.com/lib.Logf. received tainted input"

	lib.Exec(lib.Request()) // want "function .example.com/lib.Exec. received tainted input"
	lib.Exec(lib.Quote(lib.Request()))
	lib.Exec(lib.Passthrough(lib.Request())) // want "function .example.com/lib.Exec. received tainted input"
	lib.Exec(clean(lib.Request()))
	lib.Exec(excluded(lib.Request())) // want "function .example.com/lib.Exec. received tainted input"

	query := lib.Request()
	if query == "" {
		lib.Exec("SELECT 1")
	}
	lib.Log(query) //taint:ignore

	db := &lib.DB{}
	db.Query(query) // want "function .\\(\\*example.com/lib.DB\\).Query. received tainted input"

	var q string
	fill(&q)
	lib.Exec(q) // want "function .example.com/lib.Exec. received tainted input"

	logSecret()
}

func clean(s string) string {
	return "constant"
}

func excluded(s string) string {
	return "constant"
}

func fill(dst *string) {
	*dst = lib.Request()
}

func logSecret() {
	s := lib.ReadSecret()
	lib.Log(s)                  // want "function .example.com/lib.Log. received tainted input"
	lib.Log(strings.ToUpper(s)) // want "function .example.com/lib.Log. received tainted input"
	lib.Log(strings.ToUpper("public"))
}

func unused() {
	//taint:sink // want "taint directive has no effect here"
	lib.Log(lib.ReadSecret())
}
