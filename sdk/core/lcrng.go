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

import "fmt"

// LCRNG 為產生器狀態。零值等同 seed 0。
//
// 方法使用 pointer receiver 推進；需要分叉時直接複製值：
//
//	fork := rng
//	fork.Next16() // 不影響 rng
type LCRNG struct {
	state uint32
}

// New 以指定 seed 建立 LCRNG。
func New(seed uint32) LCRNG {
	return LCRNG{state: seed}
}

// State 回傳目前狀態（即下一次搜尋可用的 seed）。
func (r LCRNG) State() uint32 {
	return r.state
}

// Next 推進一次並回傳新狀態。
func (r *LCRNG) Next() uint32 {
	r.state = r.state*Mult + Incr
	return r.state
}

// Next16 推進一次並回傳新狀態的高 16 bits。
func (r *LCRNG) Next16() uint16 {
	r.state = r.state*Mult + Incr
	return uint16(r.state >> 16)
}

// Advance 推進 n 次（O(log n)）。
func (r *LCRNG) Advance(n uint64) {
	r.state = Jump(r.state, n)
}

// Snapshot 滿足 Restorable，4 bytes big-endian。
func (r *LCRNG) Snapshot() ([]byte, error) {
	return AppendUint32(make([]byte, 0, 4), r.state), nil
}

// Restore 滿足 Restorable。
func (r *LCRNG) Restore(b []byte) error {
	if len(b) != 4 {
		return fmt.Errorf("lcrng: snapshot must be 4 bytes, got %d", len(b))
	}
	r.state = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return nil
}

var (
	_ Source     = (*LCRNG)(nil)
	_ Restorable = (*LCRNG)(nil)
)
