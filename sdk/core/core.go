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

// Package core 提供掌機遊戲使用的 32-bit 線性同餘亂數產生器 (LCRNG)。
//
// 合約（很重要）：
//   - 先推進狀態，再輸出。第一次 Next() 的結果就是推進一次後的狀態。
//   - 16-bit 輸出永遠取新狀態的高 16 bits。
//   - 不存在任何全域狀態；LCRNG 是值型別，複製即分叉 (fork)。
package core

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原內部狀態。
	Restore([]byte) error
}

// Source 是產生器消耗亂數的最小能力。
type Source interface {
	Next() uint32
	Next16() uint16
}

const (
	// Mult 為 LCRNG 乘數。
	Mult uint32 = 0x41C64E6D
	// Incr 為 LCRNG 增量。
	Incr uint32 = 0x00006073
)

// NextU32 為純函數版本：回傳 (輸出, 新狀態)，輸出等於新狀態。
func NextU32(state uint32) (uint32, uint32) {
	s := state*Mult + Incr
	return s, s
}

// NextU16 為純函數版本：回傳 (新狀態高 16 bits, 新狀態)。
func NextU16(state uint32) (uint16, uint32) {
	s := state*Mult + Incr
	return uint16(s >> 16), s
}

// Jump 以 O(log n) 將 seed 推進 n 次。
//
// 對 s' = a*s + c 做二進位分解：每一輪把 (a, c) 平方成推進 2^k 次的係數，
// n 的該位為 1 時合併進累積係數。
func Jump(seed uint32, n uint64) uint32 {
	accMult, accPlus := uint32(1), uint32(0)
	curMult, curPlus := Mult, Incr
	for n > 0 {
		if n&1 == 1 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus = (curMult + 1) * curPlus
		curMult *= curMult
		n >>= 1
	}
	return accMult*seed + accPlus
}

// AppendUint32 以 big-endian 附加 v。
func AppendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
