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

import "example.com/lib"

func main() {
	lib.Exec(fetch(3)) // want "function .example.com/lib.Exec. received tainted input"
	lib.Exec(even(4))  // want "function .example.com/lib.Exec. received tainted input"
	lib.Exec(count(5))
}

func fetch(n int) string {
	if n == 0 {
		return lib.Request()
	}
	return fetch(n - 1)
}

func even(n int) string {
	if n == 0 {
		return "even"
	}
	return odd(n - 1)
}

func odd(n int) string {
	if n == 0 {
		return lib.Request()
	}
	return even(n - 1)
}

func count(n int) string {
	if n == 0 {
		return "done"
	}
	return count(n - 1)
}
