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

package stats

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CycleReport 除法例程週期分布的摘要。
type CycleReport struct {
	Divisor uint32  `json:"Divisor" yaml:"Divisor"`
	Lo      uint32  `json:"Lo" yaml:"Lo"`
	Hi      uint32  `json:"Hi" yaml:"Hi"`
	Total   uint64  `json:"Total" yaml:"Total"`
	Min     int     `json:"Min" yaml:"Min"`
	Max     int     `json:"Max" yaml:"Max"`
	Mode    int     `json:"Mode" yaml:"Mode"`
	Median  int     `json:"Median" yaml:"Median"`
	Mean    float64 `json:"Mean" yaml:"Mean"`
	Std     float64 `json:"Std" yaml:"Std"`
	// Buckets 只列出非空的週期數。
	Buckets map[int]uint64 `json:"Buckets" yaml:"Buckets"`
}

// SummarizeCycles 把 cycle.DistributionModU 的輸出（index 為週期數）整理成報告。
func SummarizeCycles(divisor, lo, hi uint32, dist []uint64) *CycleReport {
	out := &CycleReport{Divisor: divisor, Lo: lo, Hi: hi, Buckets: make(map[int]uint64)}
	xs := make([]float64, 0)
	ws := make([]float64, 0)
	for c, n := range dist {
		if n == 0 {
			continue
		}
		if out.Total == 0 {
			out.Min = c
		}
		out.Max = c
		out.Total += n
		out.Buckets[c] = n
		if n > out.Buckets[out.Mode] {
			out.Mode = c
		}
		xs = append(xs, float64(c))
		ws = append(ws, float64(n))
	}
	if out.Total == 0 {
		return out
	}
	out.Mean, out.Std = stat.MeanStdDev(xs, ws)
	out.Median = int(stat.Quantile(0.5, stat.Empirical, xs, ws))
	return out
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// quantileCI 把 order statistic 的秩視為二項，以 Beta 反推 p 範圍再轉回樣本。
// sorted 必須已遞增排序。
func quantileCI(sorted []float64, q, confidence float64) (float64, float64) {
	n := len(sorted)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return sorted[0], sorted[0]
	}
	alpha := 1 - confidence
	k := int(q * float64(n))
	k = max(1, min(k, n-1))

	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	pLo := bLo.Quantile(alpha / 2)
	pHi := bHi.Quantile(1 - alpha/2)

	li := int(pLo * float64(n))
	ui := int(pHi * float64(n))
	if ui > 0 {
		ui -= 1
	}
	li = max(0, min(li, n-1))
	ui = max(0, min(ui, n-1))
	return sorted[li], sorted[ui]
}

// quantilePoint 經驗分位數，sorted 必須已遞增排序。
func quantilePoint(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
