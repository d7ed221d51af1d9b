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

// Package search 在推進次數 (advance) 上搜尋第一個滿足目標的遭遇結果。
//
// SearchEarliest 處理單一 Setup；SearchAll 把情境 (Scenario) 展開為所有合法 Setup，
// 以有界的 worker pool 平行搜尋後排序。找不到時回傳 Found=false，不使用 0 當哨兵。
package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/wild"
)

const (
	DefaultMaxAdvances uint64 = 10_000_000
	DefaultChunkSize   uint64 = 1_000_000
)

// Objective 判斷一個結果是否為搜尋目標。必須是純函數，會被多個 goroutine 同時呼叫。
type Objective func(wild.Outcome) bool

// Setup 為一組固定的遊戲條件，展開後不再修改。
type Setup struct {
	// Scenario 為來源情境名稱，單獨搜尋時可為空。
	Scenario string
	Seed     uint32
	Slots    []codec.EncounterSlot // 空表示不限制
	Method   wild.Method
	// Synchronize 為 nil 表示隊首沒有同步。
	Synchronize *codec.Nature
	Swarm       bool
	SwarmTable  *codec.SlotTable
}

// Config 轉為產生器設定：TID/SID 為 0、性別比例 1:1、只開啟 Setup 的方法。
func (s Setup) Config() *wild.Config {
	cfg := wild.NewConfig()
	cfg.Slots = s.Slots
	cfg.Methods = wild.Methods(s.Method)
	if s.Synchronize != nil {
		cfg.Lead = wild.Synchronize(*s.Synchronize)
	}
	cfg.Swarm = s.Swarm
	cfg.SwarmTable = s.SwarmTable
	return cfg
}

func (s Setup) String() string {
	lead := "none"
	if s.Synchronize != nil {
		lead = s.Synchronize.String()
	}
	out := fmt.Sprintf("seed=%#x slots=%v %s sync=%s swarm=%t", s.Seed, s.Slots, s.Method, lead, s.Swarm)
	if s.Scenario != "" {
		out = s.Scenario + " " + out
	}
	return out
}

// Result 為單一 Setup 的搜尋結果。Found 為 false 時 Advance 與 Outcome 無意義。
type Result struct {
	Setup   Setup
	Found   bool
	Advance uint64
	Outcome wild.Outcome
}

// Options 控制搜尋範圍與資源，零值欄位使用預設。
type Options struct {
	// StartAdvance 起始推進次數（包含）。
	StartAdvance uint64
	// MaxAdvances 結束推進次數（不含）。
	MaxAdvances uint64
	// ChunkSize 每段處理的推進次數，段與段之間檢查 ctx。
	ChunkSize uint64
	// Workers 為 SearchAll 的併發數。
	Workers      int
	ShowProgress bool
	Generator    *wild.Generator
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxAdvances == 0 {
		o.MaxAdvances = DefaultMaxAdvances
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Generator == nil {
		o.Generator = wild.NewGenerator()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// SearchEarliest 回傳 [StartAdvance, MaxAdvances) 中第一個產生滿足 obj 之結果的推進次數。
// 同一推進次數有多個符合結果時取產生順序的第一個。
// 只有 ctx 取消或 Setup 不合法時回傳錯誤。
func SearchEarliest(ctx context.Context, setup Setup, obj Objective, opts Options) (Result, error) {
	opts = opts.withDefaults()
	res := Result{Setup: setup}
	if obj == nil {
		return res, errs.NewWarn("search: objective is nil")
	}
	cfg := setup.Config()
	if err := cfg.Validate(); err != nil {
		return res, errs.WrapWarn(err, "search: invalid setup")
	}

	gen := opts.Generator
	rng := core.New(core.Jump(setup.Seed, opts.StartAdvance))
	buf := make([]wild.Outcome, 0, 64)
	for start := opts.StartAdvance; start < opts.MaxAdvances; start += opts.ChunkSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+opts.ChunkSize, opts.MaxAdvances)
		for adv := start; adv < end; adv++ {
			buf = gen.AppendGenerate(buf[:0], rng, cfg)
			for _, o := range buf {
				if obj(o) {
					res.Found, res.Advance, res.Outcome = true, adv, o
					return res, nil
				}
			}
			rng.Next()
		}
		if end == opts.MaxAdvances {
			break
		}
	}
	return res, nil
}

// Sort 穩定排序：找到的在前並依推進次數遞增，找不到的在後；相同時維持原順序。
func Sort(rs []Result) {
	slices.SortStableFunc(rs, compareResult)
}

func compareResult(a, b Result) int {
	switch {
	case a.Found && !b.Found:
		return -1
	case !a.Found && b.Found:
		return 1
	case !a.Found:
		return 0
	}
	return cmp.Compare(a.Advance, b.Advance)
}

// Merge 串接多組結果並重新排序。
func Merge(lists ...[]Result) []Result {
	out := make([]Result, 0)
	for _, l := range lists {
		out = append(out, l...)
	}
	Sort(out)
	return out
}
