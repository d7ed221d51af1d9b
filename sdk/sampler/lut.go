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

// Package sampler 把權重表展開成查找表 (Look-Up Table)。
//
// 遊戲的遭遇欄位 (encounter slot) 由 Random()%100 直接查表，
// 因此權重就是「100 格裡每個欄位佔幾格」，LUT 正好是韌體的資料形狀。
//
// 舉例：權重 [3,5,0] 展開為 [0,0,0,1,1,1,1,1]，
// 值 v 對應 lut[v % 8]。
package sampler

import (
	"fmt"
	"math"
)

const maxLUTCap uint64 = 10_000_000

// Integers 定義所有底層實現為整數型別的集合
type Integers interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// LUT 為展開後的查找表，元素為權重列表的 index。
type LUT []int

// NewLUT 根據權重列表建立查找表。
// 負權重、全零或總和超過上限時回傳錯誤。
func NewLUT[T Integers](src []T) (LUT, error) {
	if len(src) == 0 {
		return LUT{}, nil
	}
	acc := uint64(0)
	for i, v := range src {
		if v < 0 {
			return nil, fmt.Errorf("lut: negative weight at index %d", i)
		}
		uv := uint64(v)
		if acc > math.MaxUint64-uv {
			return nil, fmt.Errorf("lut: total weight overflow")
		}
		acc += uv
	}
	if acc == 0 {
		return nil, fmt.Errorf("lut: all weights are zero")
	}
	if acc > maxLUTCap {
		return nil, fmt.Errorf("lut: total weight %d exceeds limit %d", acc, maxLUTCap)
	}

	lut := make(LUT, 0, int(acc))
	for i, v := range src {
		for j := T(0); j < v; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// BuildLUT 同 NewLUT，遇到錯誤直接 panic；只用於編譯期已知的常數表。
func BuildLUT[T Integers](src []T) LUT {
	lut, err := NewLUT(src)
	if err != nil {
		panic(err)
	}
	return lut
}

// Len 回傳展開後的長度（權重總和）。
func (l LUT) Len() int { return len(l) }

// At 回傳 v 落在的 index：lut[v % len]。空表回傳 -1。
func (l LUT) At(v uint32) int {
	if len(l) == 0 {
		return -1
	}
	return l[v%uint32(len(l))]
}

// Bounds 回傳 index 在表中佔據的 [lo, hi) 範圍；不存在時 ok 為 false。
func (l LUT) Bounds(idx int) (lo, hi int, ok bool) {
	lo = -1
	for i, v := range l {
		if v == idx {
			if lo < 0 {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}
