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

// Package cycle 重現目標 CPU 軟體除法 / 取餘例程的逐週期 (cycle) 成本。
//
// 例程為 restoring shift-subtract：
//
//  1. 被除數小於除數時直接短路。
//  2. 兩段對齊迴圈：先以 4 bits 為步長，再以 1 bit 為步長左移除數。
//  3. 主迴圈每輪做 4 次試減（r1, r1>>1, r1>>2, r1>>3），以旋轉後的位元記錄商。
//  4. 結尾依商的最高 3 bits 做修正。
//
// 每個分支的週期常數都要逐字對應，否則影格 (frame) 對應會偏移。
// 熱路徑使用：除數為 0 時回傳哨兵 0，不回傳錯誤。
package cycle

import "math/bits"

// division 為兩個例程共用的暫存器狀態。
type division struct {
	r0, r1 uint32 // 餘數 / 除數
	r2     uint32 // 商的旋轉位元
	r3     uint32 // 目前的商位
	r12    uint32 // 最後一輪的 r3
	cycles int
}

// align 執行兩段對齊迴圈；between 為兩段之間額外的週期（unsigned 0，signed 2）。
func (d *division) align(between int) {
	r4 := uint32(0x10000000)
	for {
		if d.r1 >= r4 {
			d.cycles += 10
			break
		}
		if d.r1 >= d.r0 {
			d.cycles += 14
			break
		}
		d.r1 <<= 4
		d.r3 <<= 4
		d.cycles += 20
	}
	r4 <<= 3
	d.cycles += between
	for {
		if d.r1 >= r4 {
			d.cycles += 10
			break
		}
		if d.r1 >= d.r0 {
			d.cycles += 14
			break
		}
		d.r1 <<= 1
		d.r3 <<= 1
		d.cycles += 20
	}
}

// restore 執行主迴圈，結束後 r2 只保留最高 3 bits。
func (d *division) restore() {
	for {
		d.r2 = 0
		d.cycles += 48
		if d.r0 >= d.r1 {
			d.r0 -= d.r1
			d.cycles -= 4
		}
		for k := 1; k <= 3; k++ {
			r4 := d.r1 >> k
			if d.r0 >= r4 {
				d.r0 -= r4
				d.r2 |= bits.RotateLeft32(d.r3, -k)
				d.cycles += 7
			}
		}
		d.r12 = d.r3
		if d.r0 == 0 {
			d.cycles += 12
			break
		}
		d.r3 >>= 4
		if d.r3 == 0 {
			d.cycles += 16
			break
		}
		d.r1 >>= 4
		d.cycles += 20
	}
	d.r2 &= 0xE0000000
}

// corrected 回傳修正位 k (3, 2, 1) 是否被觸發。
func (d *division) corrected(k int) bool {
	return d.r2&bits.RotateLeft32(d.r12, -k) != 0
}

// ModU 回傳 unsigned 取餘例程的週期數。divisor 為 0 時回傳 0。
func ModU(dividend, divisor uint32) int {
	if divisor == 0 {
		return 0
	}
	if dividend < divisor {
		return 18
	}
	d := division{r0: dividend, r1: divisor, r3: 1, cycles: 24}
	d.align(0)
	d.restore()
	if d.r2 == 0 {
		return d.cycles + 18
	}
	for k := 3; k >= 1; k-- {
		if d.corrected(k) {
			d.cycles -= 2
		}
	}
	return d.cycles + 75
}

// ModUSigned 把 signed 被除數以原 bit pattern 交給 unsigned 例程。
func ModUSigned(dividend int32, divisor uint32) int {
	return ModU(uint32(dividend), divisor)
}

// ModS 回傳 signed 取餘例程的週期數。divisor 為 0 時回傳 0。
func ModS(dividend, divisor int32) int {
	if divisor == 0 {
		return 0
	}
	cycles := 10
	if divisor > 0 {
		cycles += 4
	}
	cycles += 10
	if dividend > 0 {
		cycles += 4
	}
	r0, r1 := abs32(dividend), abs32(divisor)
	if r0 < r1 {
		if dividend > 0 {
			return cycles + 32
		}
		return cycles + 28
	}
	cycles += 8

	d := division{r0: r0, r1: r1, r3: 1, cycles: cycles}
	d.align(2)
	d.restore()
	if d.r2 == 0 {
		if dividend >= 0 {
			return d.cycles + 36
		}
		return d.cycles + 32
	}
	d.cycles += 8
	for k := 3; k >= 1; k-- {
		d.cycles += 17
		if d.corrected(k) {
			d.cycles -= 2
		}
	}
	d.cycles += 18
	if dividend >= 0 {
		d.cycles += 4
	}
	return d.cycles
}

// abs32 回傳 |v| 的 bit pattern，MinInt32 得到 0x80000000。
func abs32(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}
