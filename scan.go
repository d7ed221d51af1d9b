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
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/wild"
)

const (
	// MaxScan 單次 Scan 的推進次數上限。
	MaxScan   uint64 = 1 << 20
	scanChunk uint64 = 4096
)

// ScanRow 一個推進次數的產生結果。
type ScanRow struct {
	Advance  uint64
	Seed     uint32 // 推進後的狀態，即產生時使用的 seed
	Outcomes []wild.Outcome
}

// Scan 平行列出 [from, from+count) 每個推進次數的結果，只保留有結果的列，依推進次數遞增。
// 回傳結果與用時。
func (l *Lab) Scan(ctx context.Context, seed uint32, cfg *wild.Config, from, count uint64, workers int, showpb bool) ([]ScanRow, time.Duration, error) {
	if count == 0 || count > MaxScan {
		return nil, 0, errs.Warnf("scan count must be in [1, %d]", MaxScan)
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, errs.WrapWarn(err, "invalid config")
	}
	chunks := int((count + scanChunk - 1) / scanChunk)
	workers = max(1, min(workers, chunks))

	jobs := make(chan int, chunks)
	for i := 0; i < chunks; i++ {
		jobs <- i
	}
	close(jobs)

	bar := pb.Start64(int64(count))
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	parts := make([][]ScanRow, chunks)
	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				lo := from + uint64(i)*scanChunk
				hi := min(lo+scanChunk, from+count)
				parts[i] = l.scanRange(seed, cfg, lo, hi)
				bar.Add64(int64(hi - lo))
			}
		}()
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err := ctx.Err(); err != nil {
		return nil, used, err
	}

	rows := make([]ScanRow, 0)
	for _, p := range parts {
		rows = append(rows, p...)
	}
	return rows, used, nil
}

func (l *Lab) scanRange(seed uint32, cfg *wild.Config, lo, hi uint64) []ScanRow {
	rng := core.New(core.Jump(seed, lo))
	out := make([]ScanRow, 0)
	for adv := lo; adv < hi; adv++ {
		if outs := l.gen.Generate(rng, cfg); len(outs) > 0 {
			out = append(out, ScanRow{Advance: adv, Seed: rng.State(), Outcomes: outs})
		}
		rng.Next()
	}
	return out
}
