// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"testing"

	"github.com/zintix-labs/rnglab/errs"
)

func TestParseDivisor(t *testing.T) {
	ok := []struct {
		in   string
		want uint32
	}{
		{"25", 25}, {"1", 1}, {"0x19", 25}, {"4294967295", 4294967295}, {"0xFFFFFFFF", 0xFFFFFFFF},
	}
	for _, c := range ok {
		got, err := parseDivisor(c.in)
		if err != nil || got != c.want {
			t.Fatalf("parseDivisor(%q) = %d, %v want %d", c.in, got, err, c.want)
		}
	}
	for _, in := range []string{"0", "4294967296", "4294967321", "0x100000019", "-1", "abc"} {
		if v, err := parseDivisor(in); err == nil || errs.Level(err) != errs.Warn {
			t.Fatalf("parseDivisor(%q) = %d, %v: expected warn", in, v, err)
		}
	}
}
