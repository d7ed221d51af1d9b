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

// Package sizing 計算個體的體型值，並提供「最大體型」搜尋目標。
package sizing

import (
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/wild"
)

// LargestThreshold 以上的體型值在遊戲中顯示相同。
const LargestThreshold = 65534

// Scale 回傳 16-bit 體型值：
//
//	256 * (pid[0:8]  ^ hp%16  * (atk%16 ^ def%16))
//	    + (pid[8:16] ^ spe%16 * (spa%16 ^ spd%16))
func Scale(pid uint32, ivs codec.IVs) uint16 {
	hp := uint16(ivs.HP & 0xF)
	atk := uint16(ivs.Atk & 0xF)
	def := uint16(ivs.Def & 0xF)
	spa := uint16(ivs.SpA & 0xF)
	spd := uint16(ivs.SpD & 0xF)
	spe := uint16(ivs.Spe & 0xF)

	low := uint16(pid & 0xFF)
	high := uint16(pid >> 8 & 0xFF)
	return 256*(low^(hp*(atk^def))) + (high ^ (spe * (spa ^ spd)))
}

// IsLargest 回傳體型值是否達到最大顯示。
func IsLargest(pid uint32, ivs codec.IVs) bool {
	return Scale(pid, ivs) >= LargestThreshold
}

// Largest 為搜尋目標：最大體型。
func Largest(o wild.Outcome) bool {
	return IsLargest(o.PID, o.IVs)
}

// AtLeast 回傳體型值不小於 min 的搜尋目標。
func AtLeast(min uint16) func(wild.Outcome) bool {
	return func(o wild.Outcome) bool {
		return Scale(o.PID, o.IVs) >= min
	}
}
