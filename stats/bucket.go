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

import "sort"

// AdvBuckets 推進次數的分桶。
//
// 請勿修改預設值
//   - 區間: [0,100), [100,1k), [1k,10k), ..., [1M,10M), [10M,+inf)
type AdvBuckets struct {
	bounds []uint64
	labels []string
}

// Buckets 為報告使用的預設分桶。
var Buckets = &AdvBuckets{
	bounds: []uint64{100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000},
	labels: []string{"[0,100)", "[100,1k)", "[1k,10k)", "[10k,100k)", "[100k,1M)", "[1M,10M)", "[10M,+inf)"},
}

// Labels 回傳分桶標籤，長度 = len(bounds)+1。
func (b *AdvBuckets) Labels() []string {
	return b.labels
}

// Len 為分桶數。
func (b *AdvBuckets) Len() int {
	return len(b.labels)
}

// Index 回傳 adv 所在的分桶。
func (b *AdvBuckets) Index(adv uint64) int {
	return sort.Search(len(b.bounds), func(i int) bool { return adv < b.bounds[i] })
}
