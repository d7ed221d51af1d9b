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

package sizing

import (
	"testing"

	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/wild"
)

func TestScaleKnownValue(t *testing.T) {
	ivs := codec.IVs{HP: 31, Atk: 1, Def: 6, SpA: 1, SpD: 5, Spe: 16}
	if got := Scale(0xFF123432, ivs); got != 23348 {
		t.Fatalf("Scale = %d, want 23348", got)
	}
	if IsLargest(0xFF123432, ivs) {
		t.Fatalf("23348 is not largest")
	}
}

func TestLargestBoundary(t *testing.T) {
	// IV 全 0 時體型值只由 PID 低 16 bits 決定：低 byte * 256 + 次 byte
	if got := Scale(0x0000FFFF, codec.IVs{}); got != 0xFFFF {
		t.Fatalf("Scale = %#x", got)
	}
	if !IsLargest(0x0000FEFF, codec.IVs{}) {
		t.Fatalf("65534 must count as largest")
	}
	if IsLargest(0x0000FDFF, codec.IVs{}) {
		t.Fatalf("65533 must not count as largest")
	}
	o := wild.Outcome{PID: 0x0000FFFF}
	if !Largest(o) || !AtLeast(60000)(o) || AtLeast(0xFFFF)(wild.Outcome{PID: 0xFEFF}) {
		t.Fatalf("objective helpers mismatch")
	}
}
