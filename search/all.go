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

package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/wild"
)

// Combo 為一組欄位限制，以及該組合是否可能出現大量出現 (swarm)。
type Combo struct {
	Slots         []codec.EncounterSlot
	SwarmPossible bool
}

// Scenario 描述一個遊戲版本中某個目標可用的全部條件。
type Scenario struct {
	Name   string
	Seed   uint32
	Combos []Combo
	// Synchronize 的每個元素是一種隊首；nil 元素表示沒有同步。空切片視為只有 nil。
	Synchronize []*codec.Nature
	// Methods 空切片視為 1、2、4。
	Methods    []wild.Method
	SwarmTable *codec.SlotTable
}

// DefaultMethods 為搜尋時考慮的方法。
var DefaultMethods = []wild.Method{wild.Method1, wild.Method2, wild.Method4}

// SyncAll 回傳「沒有同步」加上 25 種同步性格，共 26 個選項。
func SyncAll() []*codec.Nature {
	out := make([]*codec.Nature, 0, codec.NatureCount+1)
	for _, n := range codec.Natures() {
		out = append(out, &n)
	}
	return append(out, nil)
}

// Enumerate 依 combo -> 同步 -> 方法 -> swarm(false, true) 的順序展開所有 Setup。
func Enumerate(sc Scenario) []Setup {
	syncs := sc.Synchronize
	if len(syncs) == 0 {
		syncs = []*codec.Nature{nil}
	}
	methods := sc.Methods
	if len(methods) == 0 {
		methods = DefaultMethods
	}
	setups := make([]Setup, 0)
	for _, combo := range sc.Combos {
		swarms := []bool{false}
		if combo.SwarmPossible {
			swarms = append(swarms, true)
		}
		for _, lead := range syncs {
			for _, m := range methods {
				for _, swarm := range swarms {
					setups = append(setups, Setup{
						Scenario:    sc.Name,
						Seed:        sc.Seed,
						Slots:       combo.Slots,
						Method:      m,
						Synchronize: lead,
						Swarm:       swarm,
						SwarmTable:  sc.SwarmTable,
					})
				}
			}
		}
	}
	return setups
}

// SearchAll 對情境的每個 Setup 執行 SearchEarliest，回傳排序後的結果。
// 沒有任何合法組合時回傳空切片與 nil。任一 Setup 出錯時取消其餘工作並回傳第一個錯誤。
func SearchAll(ctx context.Context, sc Scenario, obj Objective, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	setups := Enumerate(sc)
	if len(setups) == 0 {
		return []Result{}, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(setups))
	jobs := make(chan int, len(setups))
	for i := range setups {
		jobs <- i
	}
	close(jobs)

	bar := pb.New(len(setups))
	if !opts.ShowProgress {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	workers := min(opts.Workers, len(setups))
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			defer func() {
				// objective 由呼叫端提供，panic 轉為錯誤
				if r := recover(); r != nil {
					once.Do(func() {
						firstErr = errs.NewFatal(fmt.Sprintf("search panic : %v", r))
						cancel()
					})
				}
			}()
			for i := range jobs {
				if runCtx.Err() != nil {
					return
				}
				r, err := SearchEarliest(runCtx, setups[i], obj, opts)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				results[i] = r
				bar.Increment()
				opts.Logger.Debug("search.setup",
					slog.String("scenario", sc.Name),
					slog.String("setup", r.Setup.String()),
					slog.Bool("found", r.Found),
					slog.Uint64("advance", r.Advance),
				)
			}
		}()
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Sort(results)
	opts.Logger.Info("search.done",
		slog.String("scenario", sc.Name),
		slog.Int("setups", len(setups)),
		slog.Duration("used", used),
	)
	return results, nil
}
