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

package rnglab

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
	"github.com/zintix-labs/rnglab/spec"
)

// maxFailures 連續 panic 次數達到此值時 runtime 自動關閉。
const maxFailures = 100

// SearchRuntime 以固定數量的搜尋槽（slot）限制同時進行的搜尋。
//
// 每次搜尋先借一個槽，結束後歸還；搜尋內部的 worker pool 由 search.Options.Workers 控制。
// 搜尋中 panic 會轉為 Fatal 錯誤並計數，不會讓整個服務崩潰。
type SearchRuntime struct {
	// build-time 來源（只讀引用）
	lab *Lab

	slots    chan struct{}
	slotSize int
	workers  int // 每次搜尋的 worker 數

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string

	inflight      atomic.Int32
	served        atomic.Int64
	canceled      atomic.Int64
	panics        atomic.Int32
	fatals        atomic.Int32
	failStreak    atomic.Int32
	closeInflight atomic.Int32 // 關閉當下 inflight（快照）
}

// BuildRuntime 建立 SearchRuntime：slots 為同時搜尋上限，workers 為每次搜尋的併發數（<=0 使用 CPU 數）。
func (l *Lab) BuildRuntime(slots int, workers int) (*SearchRuntime, error) {
	// 進入 runtime 前，catalog 必須 Freeze
	l.Freeze()
	if len(l.cat.IDs()) == 0 {
		return nil, errs.NewFatal("no scenarios registered")
	}
	rt := &SearchRuntime{
		lab:      l,
		slotSize: max(1, slots),
		workers:  workers,
		done:     make(chan struct{}),
	}
	rt.slots = make(chan struct{}, rt.slotSize)
	for i := 0; i < rt.slotSize; i++ {
		rt.slots <- struct{}{}
	}
	rt.reason.Store("")
	rt.closeInflight.Store(-1)
	return rt, nil
}

func (rt *SearchRuntime) Lab() *Lab {
	return rt.lab
}

// Search 在 runtime 中搜尋單一情境。
func (rt *SearchRuntime) Search(ctx context.Context, id string, obj search.Objective, opts search.Options) (rs []search.Result, err error) {
	err = rt.run(ctx, func() error {
		var e error
		rs, e = rt.lab.SearchScenario(ctx, id, obj, rt.options(opts))
		return e
	})
	return rs, err
}

// SearchTarget 在 runtime 中跨版本搜尋同一目標。
func (rt *SearchRuntime) SearchTarget(ctx context.Context, target string, obj search.Objective, opts search.Options) (rs []search.Result, err error) {
	err = rt.run(ctx, func() error {
		var e error
		rs, e = rt.lab.SearchTarget(ctx, target, obj, rt.options(opts))
		return e
	})
	return rs, err
}

// SearchSetup 在 runtime 中搜尋單一 Setup。
func (rt *SearchRuntime) SearchSetup(ctx context.Context, setup search.Setup, obj search.Objective, opts search.Options) (r search.Result, err error) {
	err = rt.run(ctx, func() error {
		var e error
		r, e = rt.lab.SearchEarliest(ctx, setup, obj, rt.options(opts))
		return e
	})
	return r, err
}

// Generate 在 runtime 中產生（使用設定自帶的週期參數）。
func (rt *SearchRuntime) Generate(ctx context.Context, seed uint32, gs *spec.GenerateSetting) (outs []wild.Outcome, err error) {
	err = rt.run(ctx, func() error {
		outs = rt.lab.GenerateSetting(seed, gs)
		return nil
	})
	return outs, err
}

func (rt *SearchRuntime) options(opts search.Options) search.Options {
	if opts.Workers <= 0 {
		opts.Workers = rt.workers
	}
	opts.ShowProgress = false
	return opts
}

// run 借槽、執行、歸還。panic 轉為 Fatal。
func (rt *SearchRuntime) run(ctx context.Context, fn func() error) (err error) {
	// 關閉後槽仍在 channel 中，先檢查 done 才不會與借槽同時就緒。
	select {
	case <-rt.done:
		return errs.NewFatal("search runtime closed: " + rt.ClosedReason())
	default:
	}
	select {
	case <-rt.done:
		return errs.NewFatal("search runtime closed: " + rt.ClosedReason())
	case <-ctx.Done():
		rt.canceled.Add(1)
		return errs.WrapWarn(ctx.Err(), "search canceled/timeout")
	case <-rt.slots:
		rt.inflight.Add(1)
	}

	defer func() {
		rt.inflight.Add(-1)
		if r := recover(); r != nil {
			rt.panics.Add(1)
			err = errs.NewFatal(fmt.Sprintf("search panic : %v", r))
			if rt.failStreak.Add(1) >= maxFailures {
				rt.closeWithReason("overwhelmed_by_failures")
			}
		} else {
			rt.failStreak.Store(0)
		}
		switch {
		case err == nil:
			rt.served.Add(1)
		case ctx.Err() != nil:
			rt.canceled.Add(1)
		case errs.Level(err) == errs.Fatal:
			rt.fatals.Add(1)
		}
		// 已關閉時不歸還，避免 send 到已停止的系統
		select {
		case <-rt.done:
		case rt.slots <- struct{}{}:
		}
	}()

	return fn()
}

// Close transitions the runtime into a closed state. It is safe to call multiple times.
func (rt *SearchRuntime) Close() {
	rt.closeWithReason("closed")
}

// closeWithReason closes the runtime and records the reason (written once).
func (rt *SearchRuntime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closeInflight.Store(rt.inflight.Load())
		rt.closed.Store(true)
		close(rt.done)
	})
}

// Closed reports whether the runtime has been closed.
func (rt *SearchRuntime) Closed() bool {
	return rt.closed.Load()
}

func (rt *SearchRuntime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RuntimeMetrics 拉取式（pull）觀測快照；不綁任何 metrics SDK，由上層決定如何輸出。
// Available 來自 len(chan)，在高併發下為近似值。
type RuntimeMetrics struct {
	Slots         int    `json:"slots"`
	Available     int    `json:"available"`
	Inflight      int    `json:"inflight"`
	Served        int64  `json:"served"`
	Canceled      int64  `json:"canceled"`
	Panics        int    `json:"panics"`
	Fatals        int    `json:"fatals"`
	Closed        bool   `json:"closed"`
	CloseReason   string `json:"close_reason"`
	CloseInflight int    `json:"close_inflight"` // -1 表示尚未關閉
}

func (rt *SearchRuntime) Metrics() RuntimeMetrics {
	return RuntimeMetrics{
		Slots:         rt.slotSize,
		Available:     len(rt.slots),
		Inflight:      int(rt.inflight.Load()),
		Served:        rt.served.Load(),
		Canceled:      rt.canceled.Load(),
		Panics:        int(rt.panics.Load()),
		Fatals:        int(rt.fatals.Load()),
		Closed:        rt.Closed(),
		CloseReason:   rt.ClosedReason(),
		CloseInflight: int(rt.closeInflight.Load()),
	}
}
