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

import "github.com/zintix-labs/rnglab/sdk/codec"

// AcceptsPID 套用 PID 層級的過濾：異色、特性、性別、性格。
func (c *Config) AcceptsPID(pid uint32) bool {
	f := &c.Filter
	switch f.Shiny {
	case ShinyOnly:
		if !codec.Shiny(pid, c.TID, c.SID) {
			return false
		}
	case ShinyNever:
		if codec.Shiny(pid, c.TID, c.SID) {
			return false
		}
	}
	if f.Ability != nil && codec.AbilityFromPID(pid) != *f.Ability {
		return false
	}
	if f.Gender != nil && codec.GenderFromPID(pid, c.GenderRatio) != *f.Gender {
		return false
	}
	if f.Nature != nil && codec.NatureFromPID(pid) != *f.Nature {
		return false
	}
	return true
}

// AcceptsIVs 套用個體值範圍。
func (c *Config) AcceptsIVs(ivs codec.IVs) bool {
	return c.Filter.IVs.Contains(ivs)
}

// Coalesce 合併相鄰且相同的 method 5 結果。
//
// 兩筆結果的 PID 與個體值相同、且前一筆區間的 End 等於後一筆的 Start 時，
// 視為韌體重複推導同一個體，合併為一個區間。其他結果原樣保留。
func Coalesce(outs []Outcome) []Outcome {
	merged := make([]Outcome, 0, len(outs))
	for _, o := range outs {
		merged = appendCoalesced(merged, 0, o)
	}
	return merged
}

// appendCoalesced 只與 base 之後的最後一筆比較。
func appendCoalesced(out []Outcome, base int, o Outcome) []Outcome {
	if n := len(out); n > base && o.Method == Method5 {
		prev := &out[n-1]
		if prev.Method == Method5 && prev.PID == o.PID && prev.IVs == o.IVs && prev.Cycles.End == o.Cycles.Start {
			prev.Cycles.End = o.Cycles.End
			return out
		}
	}
	return append(out, o)
}
