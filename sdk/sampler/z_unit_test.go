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

package sampler

import (
	"slices"
	"testing"
)

// assertPanic 驗證函數是否如預期觸發 panic
func assertPanic(t *testing.T, f func(), msg string) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for %s, but got none", msg)
		}
	}()
	f()
}

func TestLUTExpansion(t *testing.T) {
	lut := BuildLUT([]int{3, 5, 0})
	if !slices.Equal(lut, LUT{0, 0, 0, 1, 1, 1, 1, 1}) {
		t.Fatalf("unexpected lut: %v", lut)
	}
	if lut.Len() != 8 {
		t.Fatalf("len=%d", lut.Len())
	}
	if lut.At(3) != 1 || lut.At(8) != 0 || lut.At(10) != 0 {
		t.Fatalf("At wraps modulo len")
	}
	if (LUT{}).At(5) != -1 {
		t.Fatalf("empty lut must return -1")
	}
}

func TestLUTBounds(t *testing.T) {
	lut := BuildLUT([]uint8{20, 20, 10, 10, 10, 10, 5, 5, 4, 4, 1, 1})
	lo, hi, ok := lut.Bounds(11)
	if !ok || lo != 99 || hi != 100 {
		t.Fatalf("slot 11 bounds: %d %d %v", lo, hi, ok)
	}
	lo, hi, ok = lut.Bounds(2)
	if !ok || lo != 40 || hi != 50 {
		t.Fatalf("slot 2 bounds: %d %d %v", lo, hi, ok)
	}
	if _, _, ok := lut.Bounds(12); ok {
		t.Fatalf("absent index must not be found")
	}
}

func TestLUTErrors(t *testing.T) {
	if _, err := NewLUT([]int{1, -1}); err == nil {
		t.Fatalf("expected error for negative weight")
	}
	if _, err := NewLUT([]int{0, 0}); err == nil {
		t.Fatalf("expected error for all-zero weights")
	}
	if _, err := NewLUT([]uint64{maxLUTCap + 1}); err == nil {
		t.Fatalf("expected error for oversized table")
	}
	assertPanic(t, func() { BuildLUT([]int{-2}) }, "BuildLUT negative")
}
