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
	"testing"
)

func TestModULiteralVectors(t *testing.T) {
	cases := []struct {
		dividend, divisor uint32
		want              int
	}{
		{24, 25, 18},
		{25, 25, 126},
		{1140479406, 25, 767},
		{0x5d555550, 25, 900},
		{0, 24, 18},
		{math.MaxUint32, 25, 779},
		{math.MaxUint32, 1, 934},
	}
	for _, c := range cases {
		if got := ModU(c.dividend, c.divisor); got != c.want {
			t.Fatalf("ModU(%d,%d) = %d, want %d", c.dividend, c.divisor, got, c.want)
		}
	}
}

func TestModUZeroDivisorSentinel(t *testing.T) {
	if got := ModU(12345, 0); got != 0 {
		t.Fatalf("expected sentinel 0, got %d", got)
	}
	if got := ModS(12345, 0); got != 0 {
		t.Fatalf("expected sentinel 0, got %d", got)
	}
}

func TestModSLiteralVectors(t *testing.T) {
	cases := []struct {
		dividend, divisor int32
		want              int
	}{
		{1881135926, 25, 836},
		{375357918, 25, 792},
		{1413825380, 25, 801},
		{-118428064, 25, 781},
		{1657444058, 25, 827},
		{38557744, 25, 782},
		{-1372116835, 25, 762},
		{1321724843, 99, 811},
		{-974761848, 99, 782},
		{660664920, 99, 751},
		{1843514586, 99, 803},
		{-1436296528, 99, 777},
		{-432991421, 99, 785},
		{1403756501, 49, 812},
		{-493429862, 48, 802},
		{-1001956674, 33, 824},
		{-321103627, 36, 765},
		{904862469, 14, 874},
		{-357004509, 83, 769},
		{396388959, 21, 785},
		{-367289968, 12, 843},
		{771082162, 15, 857},
	}
	for _, c := range cases {
		if got := ModS(c.dividend, c.divisor); got != c.want {
			t.Fatalf("ModS(%d,%d) = %d, want %d", c.dividend, c.divisor, got, c.want)
		}
	}
}

func TestModUSignedBitPattern(t *testing.T) {
	cases := []struct {
		dividend int32
		divisor  uint32
		want     int
	}{
		{-5304908, 74, 783},
		{-3153559, 76, 808},
		{-10278414, 10, 854},
		{-11024636, 87, 728},
		{-3041458, 22, 750},
		{-2424550, 41, 803},
		{-10575121, 75, 727},
		{-3202050, 10, 866},
		{-9188001, 97, 764},
		{-1854680, 4, 843},
	}
	for _, c := range cases {
		if got := ModUSigned(c.dividend, c.divisor); got != c.want {
			t.Fatalf("ModUSigned(%d,%d) = %d, want %d", c.dividend, c.divisor, got, c.want)
		}
	}
}

func TestModSMinInt(t *testing.T) {
	// 不可 panic，且結果固定
	a := ModS(math.MinInt32, 25)
	b := ModS(math.MinInt32, 25)
	if a != b || a == 0 {
		t.Fatalf("unexpected ModS(MinInt32,25)=%d", a)
	}
}

func TestLongestModURange(t *testing.T) {
	got, err := LongestModU(context.Background(), 25, 0, 0xFFFF, 4)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if got.Dividend != 44372 || got.Cycles != 526 {
		t.Fatalf("unexpected longest: %+v", got)
	}
	got, err = LongestModU(context.Background(), 25, 0x5d555540, 0x5d55555f, 2)
	if err != nil || got.Dividend != 0x5d555550 || got.Cycles != 900 {
		t.Fatalf("unexpected longest near peak: %+v err=%v", got, err)
	}
}

func TestDistributionModU(t *testing.T) {
	dist, err := DistributionModU(context.Background(), 24, 0, 0xFFFF, 3)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	var total uint64
	buckets := 0
	for _, n := range dist {
		total += n
		if n > 0 {
			buckets++
		}
	}
	if total != 1<<16 {
		t.Fatalf("total=%d", total)
	}
	if dist[18] != 24 || dist[126] != 1 || buckets != 257 {
		t.Fatalf("unexpected distribution: d18=%d d126=%d buckets=%d", dist[18], dist[126], buckets)
	}
}

func TestDistributionModULongestDividend(t *testing.T) {
	const peak = 1002159035
	if got := ModU(peak, 1); got != 1005 {
		t.Fatalf("ModU(%d,1) = %d, want 1005", peak, got)
	}
	dist, err := DistributionModU(context.Background(), 1, peak, peak, 1)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(dist) < 1006 || dist[1005] != 1 {
		t.Fatalf("peak bucket missing: len=%d", len(dist))
	}
	if b := grow(make([]uint64, 2), 1); len(b) != 2 {
		t.Fatalf("grow must not shrink, len=%d", len(b))
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LongestModUFull(ctx, 25); err == nil {
		t.Fatalf("expected context error")
	}
}
