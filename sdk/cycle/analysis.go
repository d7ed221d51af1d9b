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

package cycle

import (
	"context"
	"math"
	"runtime"
	"sync"
)

// 離線分析工具：掃描被除數空間，不在熱路徑上使用。
// 完整 32-bit 掃描約 4.3e9 次呼叫，請以 ctx 控制中止。

// MaxCycles 為 Distribution 預配置的桶數。全 32-bit 掃描的最大值為 1005
// (divisor 1, dividend 1002159035)；超出時桶會自動擴充。
const MaxCycles = 1024

const scanChunk uint64 = 1 << 22

// Longest 為最長週期的被除數與其週期數。
type Longest struct {
	Dividend uint32
	Cycles   int
}

// LongestModU 掃描 [lo, hi] 找出 ModU 週期最長的被除數；同長度取較小者。
func LongestModU(ctx context.Context, divisor uint32, lo, hi uint32, workers int) (Longest, error) {
	var (
		mu   sync.Mutex
		best Longest
	)
	err := scan(ctx, lo, hi, workers, func(from, to uint64) {
		local := Longest{}
		for v := from; v <= to; v++ {
			if c := ModU(uint32(v), divisor); c > local.Cycles {
				local = Longest{Dividend: uint32(v), Cycles: c}
			}
		}
		mu.Lock()
		if local.Cycles > best.Cycles || (local.Cycles == best.Cycles && local.Dividend < best.Dividend) {
			best = local
		}
		mu.Unlock()
	})
	return best, err
}

// LongestModUFull 掃描整個 32-bit 空間。
func LongestModUFull(ctx context.Context, divisor uint32) (Longest, error) {
	return LongestModU(ctx, divisor, 0, math.MaxUint32, 0)
}

// DistributionModU 統計 [lo, hi] 內 ModU 的週期分布，index 為週期數。
func DistributionModU(ctx context.Context, divisor uint32, lo, hi uint32, workers int) ([]uint64, error) {
	var (
		mu  sync.Mutex
		out = make([]uint64, MaxCycles)
	)
	err := scan(ctx, lo, hi, workers, func(from, to uint64) {
		local := make([]uint64, MaxCycles)
		for v := from; v <= to; v++ {
			c := ModU(uint32(v), divisor)
			local = grow(local, c+1)
			local[c]++
		}
		mu.Lock()
		out = grow(out, len(local))
		for i, n := range local {
			out[i] += n
		}
		mu.Unlock()
	})
	return out, err
}

// grow 確保 b 至少有 n 個桶。
func grow(b []uint64, n int) []uint64 {
	if n <= len(b) {
		return b
	}
	return append(b, make([]uint64, n-len(b))...)
}

// scan 把 [lo, hi] 切成 scanChunk 大小的區段交給 workers，區段之間檢查 ctx。
func scan(ctx context.Context, lo, hi uint32, workers int, fn func(from, to uint64)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if hi < lo {
		return nil
	}
	jobs := make(chan [2]uint64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				fn(j[0], j[1])
			}
		}()
	}

	var err error
	end := uint64(hi)
feed:
	for from := uint64(lo); from <= end; from += scanChunk {
		to := min(from+scanChunk-1, end)
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- [2]uint64{from, to}:
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
