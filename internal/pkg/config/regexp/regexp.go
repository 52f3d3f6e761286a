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

// Package regexp provides a regular expression that can be read from
// JSON or YAML configuration.
package regexp

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Regexp delegates to a *regexp.Regexp and implements json.Unmarshaler.
// The zero Regexp matches every string.
type Regexp struct {
	r *regexp.Regexp
}

// New compiles expr.
func New(expr string) (*Regexp, error) {
	r, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Regexp{r}, nil
}

// MustNew is like New but panics if expr does not compile.
func MustNew(expr string) *Regexp {
	r, err := New(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// UnmarshalJSON compiles a JSON string into a Regexp.
func (mr *Regexp) UnmarshalJSON(data []byte) error {
	var expr string
	if err := json.Unmarshal(data, &expr); err != nil {
		return err
	}
	if expr == "" {
		return fmt.Errorf("empty regexp")
	}
	r, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("invalid regexp %q: %v", expr, err)
	}
	mr.r = r
	return nil
}

// MatchString reports whether s matches.
func (mr *Regexp) MatchString(s string) bool {
	if mr == nil || mr.r == nil {
		return true
	}
	return mr.r.MatchString(s)
}

func (mr *Regexp) String() string {
	if mr == nil || mr.r == nil {
		return ""
	}
	return mr.r.String()
}
