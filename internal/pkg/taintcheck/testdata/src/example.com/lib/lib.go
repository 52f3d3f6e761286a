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

package lib

func ReadSecret() string { return "hunter2" }

func Log(s string) {}

func Logf(format string, args ...interface{}) {}

func Redact(s string) string { return "****" }

// Request returns the body of the current request.
//taint:source
func Request() string { return "body" } // want Request:"taint:source"

//taint:sink
func Exec(query string) {} // want Exec:"taint:sink"

//taint:sanitizer
func Quote(s string) string { return "'" + s + "'" } // want Quote:"taint:sanitizer"

//taint:sourse // want "taint directive .sourse. is invalid; only .source., .sink. and .sanitizer. are supported"
func Typo() {}

//taint:sink
//taint:source // want "conflicting classifications: Conflicted is already marked as a sink"
func Conflicted(s string) {} // want Conflicted:"taint:sink"

func Passthrough(s string) string { return s }

type DB struct{}

//taint:sink
func (*DB) Query(q string) {} // want Query:"taint:sink"
