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

package core

import "testing"

func TestLCRNGStepThenOutput(t *testing.T) {
	r := New(0)
	if got := r.Next(); got != 0x6073 {
		t.Fatalf("first Next from seed 0: got %#x want 0x6073", got)
	}
	if r.State() != 0x6073 {
		t.Fatalf("state not advanced: %#x", r.State())
	}
	out, s := NextU32(0)
	if out != 0x6073 || s != 0x6073 {
		t.Fatalf("NextU32(0) = (%#x, %#x)", out, s)
	}
	hi, s2 := NextU16(0x6073)
	if s2 != 0xE97E7B6A || hi != 0xE97E {
		t.Fatalf("NextU16(0x6073) = (%#x, %#x)", hi, s2)
	}
}

func TestLCRNGDeterminism(t *testing.T) {
	a := New(0x5A0)
	b := New(0x5A0)
	for i := 0; i < 64; i++ {
		if a.Next16() != b.Next16() {
			t.Fatalf("mismatch at %d", i)
		}
	}
}

func TestJumpMatchesStepping(t *testing.T) {
	r := New(0)
	for i := 0; i < 1000; i++ {
		r.Next()
	}
	if r.State() != 0xAC9937E8 {
		t.Fatalf("1000 steps from 0: got %#x", r.State())
	}
	if got := Jump(0, 1000); got != 0xAC9937E8 {
		t.Fatalf("Jump(0,1000) = %#x", got)
	}
	if got := Jump(0x5A0, 1000); got != 0x4B650188 {
		t.Fatalf("Jump(0x5A0,1000) = %#x", got)
	}
	if got := Jump(0, 1_000_000); got != 0xD8F88E40 {
		t.Fatalf("Jump(0,1e6) = %#x", got)
	}
	if got := Jump(0x1234, 0); got != 0x1234 {
		t.Fatalf("Jump with n=0 must be identity, got %#x", got)
	}
	// 週期為 2^32
	if got := Jump(0xDEADBEEF, 1<<32); got != 0xDEADBEEF {
		t.Fatalf("full period jump must be identity, got %#x", got)
	}
}

func TestForkIsIndependent(t *testing.T) {
	r := New(42)
	fork := r
	fork.Next16()
	fork.Next16()
	if r.State() != 42 {
		t.Fatalf("fork mutated parent state")
	}
	r.Advance(2)
	if r.State() != fork.State() {
		t.Fatalf("Advance(2) should equal two Next16 calls")
	}
}

func TestSnapshotRestore(t *testing.T) {
	r := New(0xCAFEBABE)
	r.Next()
	b, err := r.Snapshot()
	if err != nil || len(b) != 4 {
		t.Fatalf("snapshot failed: %v len=%d", err, len(b))
	}
	var back LCRNG
	if err := back.Restore(b); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if back.State() != r.State() {
		t.Fatalf("restore mismatch: %#x vs %#x", back.State(), r.State())
	}
	if err := back.Restore([]byte{1, 2}); err == nil {
		t.Fatalf("expected error for short snapshot")
	}
}
