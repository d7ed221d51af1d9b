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

package wild

import "github.com/zintix-labs/rnglab/sdk/cycle"

// FrameCycles 為一個影格的 CPU 週期數，method 1 的區間結束於此。
const FrameCycles = 280_896

// BaseLeadPID 為預設隊首個體的 PID。
const BaseLeadPID uint32 = 0

// LeadPath 為隊首分支的結果，供 Timing 計算分支成本。
type LeadPath uint8

const (
	PathUnbiased  LeadPath = iota // 無隊首，或單一性別物種上的迷人之軀
	PathSyncHit                   // 同步成功，沿用隊首性格
	PathSyncMiss                  // 同步失敗，改抽性格
	PathCharmHit                  // 迷人之軀生效，限定異性
	PathCharmMiss                 // 迷人之軀未生效
)

// Timing 描述兩次亂數呼叫之間的 CPU 週期成本。
//
// 產生器在每個狀態轉移時詢問 Timing，自身不含任何週期常數。
// 回傳 (window, step) 的方法：window 為該方法的區間長度，step 為之後推進的週期。
type Timing interface {
	// Prelude 為進入遭遇判定到抽欄位之前的成本。
	Prelude() int
	// Slot 為抽完欄位亂數之後的成本。
	Slot(raw uint16) int
	// Level 為抽完等級亂數之後的成本。
	Level(raw uint16, multiGender bool) int
	// Lead 為隊首分支本身的成本；raw 為分支消耗的亂數（沒有則為 0）。
	Lead(path LeadPath, raw uint16) int
	// Nature 為隨機抽性格之後的成本。
	Nature(raw uint16) int

	Method3() (window, step int)
	Method5(pid uint32, goodNature bool) (window, step int)
	Method2(pid uint32) (window, step int)
	Method4(pid uint32) (window, step int)
	// Method1End 回傳 method 1 區間的結束週期。
	Method1End(start int) int
}

// FirmwareTiming 為逐週期對應韌體例程的模型。
// 每次除法成本都透過 cycle 套件計算，隊首 PID 由呼叫端明確傳入。
type FirmwareTiming struct {
	lead24     int // 隊首 PID % 24 的成本
	lead25     int // 隊首 PID % 25 的成本
	levelRange int32
}

// NewFirmwareTiming 以隊首 PID 與等級範圍建立模型。levelRange <= 0 視為 1。
func NewFirmwareTiming(leadPID uint32, levelRange int32) *FirmwareTiming {
	if levelRange <= 0 {
		levelRange = 1
	}
	return &FirmwareTiming{
		lead24:     cycle.ModU(leadPID, 24),
		lead25:     cycle.ModU(leadPID, 25),
		levelRange: levelRange,
	}
}

func (t *FirmwareTiming) Prelude() int { return 12059 + 32*t.lead24 }

func (t *FirmwareTiming) Slot(raw uint16) int { return 378 + cycle.ModU(uint32(raw), 100) }

func (t *FirmwareTiming) Level(raw uint16, multiGender bool) int {
	c := cycle.ModS(int32(raw), t.levelRange) + 20*t.lead24
	if multiGender {
		c += 12 * t.lead24
	}
	return c + 25182
}

func (t *FirmwareTiming) Lead(path LeadPath, raw uint16) int {
	switch path {
	case PathSyncHit:
		return 5763 + 389 + t.lead25 + 16*t.lead24
	case PathSyncMiss:
		return 5763 + 96
	case PathCharmHit:
		return cycle.ModU(uint32(raw), 3) + 8*t.lead24 + 8830
	case PathCharmMiss:
		return cycle.ModU(uint32(raw), 3) + 5863
	default:
		return 5763
	}
}

func (t *FirmwareTiming) Nature(raw uint16) int {
	return cycle.ModU(uint32(raw), 25) + 179 + 16*t.lead24
}

func (t *FirmwareTiming) Method3() (int, int) { return 80, 80 }

// Method5 的重抽成本：性格不符多 18 週期做性別檢查前的分支。
func (t *FirmwareTiming) Method5(pid uint32, goodNature bool) (int, int) {
	retry := 158
	if goodNature {
		retry = 140
	}
	retry += cycle.ModU(pid, 25)
	return retry, retry
}

func (t *FirmwareTiming) Method2(pid uint32) (int, int) {
	w := cycle.ModU(pid, 25) + 100*cycle.ModU(pid, 24) + 36900
	return w, w
}

func (t *FirmwareTiming) Method4(pid uint32) (int, int) {
	w := 36*cycle.ModU(pid, 24) + 11103
	return w, w
}

func (t *FirmwareTiming) Method1End(start int) int { return max(start, FrameCycles) }

// CoarseTiming 為早期的平坦模型：抽性格前固定 100，每個方法區間固定 200。
// 只有 method 3 會推進週期，因此相鄰的 method 5 區間彼此相接。
type CoarseTiming struct{}

const (
	coarsePrelude = 100
	coarseWindow  = 200
)

func (CoarseTiming) Prelude() int { return 0 }

func (CoarseTiming) Slot(uint16) int { return 0 }

func (CoarseTiming) Level(uint16, bool) int { return 0 }

func (CoarseTiming) Lead(LeadPath, uint16) int { return coarsePrelude }

func (CoarseTiming) Nature(uint16) int { return 0 }

func (CoarseTiming) Method3() (int, int) { return coarseWindow, coarseWindow }

func (CoarseTiming) Method5(uint32, bool) (int, int) { return coarseWindow, 0 }

func (CoarseTiming) Method2(uint32) (int, int) { return coarseWindow, 0 }

func (CoarseTiming) Method4(uint32) (int, int) { return coarseWindow, 0 }

func (CoarseTiming) Method1End(start int) int { return start + coarseWindow }

var (
	_ Timing = (*FirmwareTiming)(nil)
	_ Timing = CoarseTiming{}
)
