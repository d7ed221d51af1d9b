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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zintix-labs/rnglab/sdk/codec"
)

// Method 為野生遭遇的產生方式 1..5。
//
// 差異來自 VBlank 中斷在不同時間點多消耗一次亂數：
//
//	1: 無中斷
//	2: PID 與 IV1 之間
//	3: PID 低位與高位之間
//	4: IV1 與 IV2 之間
//	5: PID 重抽迴圈中
type Method uint8

const (
	Method1 Method = 1 + iota
	Method2
	Method3
	Method4
	Method5
)

func (m Method) Valid() bool { return m >= Method1 && m <= Method5 }

func (m Method) String() string { return "method" + strconv.Itoa(int(m)) }

// MethodSet 為方法的位元集合。
type MethodSet uint8

// AllMethods 包含 1..5。
const AllMethods MethodSet = 1<<Method1 | 1<<Method2 | 1<<Method3 | 1<<Method4 | 1<<Method5

// Methods 建立集合，忽略非法值。
func Methods(ms ...Method) MethodSet {
	var s MethodSet
	for _, m := range ms {
		if m.Valid() {
			s |= 1 << m
		}
	}
	return s
}

func (s MethodSet) Has(m Method) bool { return s&(1<<m) != 0 }

// List 依編號遞增回傳集合內的方法。
func (s MethodSet) List() []Method {
	out := make([]Method, 0, 5)
	for m := Method1; m <= Method5; m++ {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// LeadKind 為隊首特性。
type LeadKind uint8

const (
	LeadNone LeadKind = iota
	LeadSynchronize
	LeadCuteCharm
)

func (k LeadKind) String() string {
	switch k {
	case LeadNone:
		return "none"
	case LeadSynchronize:
		return "synchronize"
	case LeadCuteCharm:
		return "cute_charm"
	}
	return fmt.Sprintf("LeadKind(%d)", uint8(k))
}

func (k LeadKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *LeadKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "none":
		*k = LeadNone
	case "synchronize", "sync":
		*k = LeadSynchronize
	case "cute_charm", "cutecharm":
		*k = LeadCuteCharm
	default:
		return fmt.Errorf("wild: unknown lead %q", b)
	}
	return nil
}

// Lead 為隊首設定。Nature 只對 Synchronize 有意義，Gender 只對 CuteCharm 有意義。
type Lead struct {
	Kind   LeadKind     `json:"kind" yaml:"kind"`
	Nature codec.Nature `json:"nature,omitempty" yaml:"nature,omitempty"`
	Gender codec.Gender `json:"gender,omitempty" yaml:"gender,omitempty"`
}

// NoLead 不影響產生。
func NoLead() Lead { return Lead{} }

// Synchronize 以隊首性格同步。
func Synchronize(n codec.Nature) Lead { return Lead{Kind: LeadSynchronize, Nature: n} }

// CuteCharm 以隊首性別迷人。
func CuteCharm(g codec.Gender) Lead { return Lead{Kind: LeadCuteCharm, Gender: g} }

// ShinyFilter 三態過濾。
type ShinyFilter uint8

const (
	ShinyAny ShinyFilter = iota
	ShinyOnly
	ShinyNever
)

func (f ShinyFilter) String() string {
	switch f {
	case ShinyOnly:
		return "shiny"
	case ShinyNever:
		return "not_shiny"
	}
	return "any"
}

func (f ShinyFilter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *ShinyFilter) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "any":
		*f = ShinyAny
	case "shiny", "true":
		*f = ShinyOnly
	case "not_shiny", "false":
		*f = ShinyNever
	default:
		return fmt.Errorf("wild: unknown shiny filter %q", b)
	}
	return nil
}

// Filter 為 PID 與 IV 層級的接受條件。nil 欄位表示不限制。
type Filter struct {
	Shiny   ShinyFilter    `json:"shiny" yaml:"shiny"`
	Ability *codec.Ability `json:"ability,omitempty" yaml:"ability,omitempty"`
	Gender  *codec.Gender  `json:"gender,omitempty" yaml:"gender,omitempty"`
	Nature  *codec.Nature  `json:"nature,omitempty" yaml:"nature,omitempty"`
	IVs     codec.IVRange  `json:"ivs" yaml:"ivs"`
}

// AnyFilter 接受所有個體。
func AnyFilter() Filter {
	return Filter{IVs: codec.FullIVRange()}
}

// Config 為一次產生的完整設定。使用 NewConfig 取得預設值再修改。
type Config struct {
	TID         uint16
	SID         uint16
	GenderRatio codec.GenderRatio
	Lead        Lead
	// Slots 為允許的遭遇欄位；空表示不限制。
	Slots   []codec.EncounterSlot
	Methods MethodSet
	Filter  Filter
	// Swarm 為 true 時以 SwarmTable 取代陸地表；SwarmTable 為外部資料。
	Swarm      bool
	SwarmTable *codec.SlotTable
}

// NewConfig 回傳寬鬆的預設設定：1:1、無隊首、全部方法、不過濾。
func NewConfig() *Config {
	return &Config{
		GenderRatio: codec.OneToOne,
		Methods:     AllMethods,
		Filter:      AnyFilter(),
	}
}

// Validate 檢查設定的一致性。
func (c *Config) Validate() error {
	if !c.GenderRatio.Valid() {
		return fmt.Errorf("wild: gender ratio %d not supported", uint8(c.GenderRatio))
	}
	switch c.Lead.Kind {
	case LeadNone:
	case LeadSynchronize:
		if !c.Lead.Nature.Valid() {
			return fmt.Errorf("wild: synchronize nature %d out of range", uint8(c.Lead.Nature))
		}
	case LeadCuteCharm:
		if c.Lead.Gender == codec.Genderless {
			return fmt.Errorf("wild: cute charm lead must be male or female")
		}
	default:
		return fmt.Errorf("wild: unknown lead kind %d", uint8(c.Lead.Kind))
	}
	for _, s := range c.Slots {
		if !s.Valid() {
			return fmt.Errorf("wild: encounter slot %d out of range", s)
		}
	}
	if c.Methods == 0 || c.Methods&^AllMethods != 0 {
		return fmt.Errorf("wild: method set %#x invalid", uint8(c.Methods))
	}
	if c.Swarm && c.SwarmTable == nil {
		return fmt.Errorf("wild: swarm requested without a swarm slot table")
	}
	if n := c.Filter.Nature; n != nil && !n.Valid() {
		return fmt.Errorf("wild: filter nature %d out of range", uint8(*n))
	}
	return c.Filter.IVs.Validate()
}

// table 回傳本次使用的遭遇表。
func (c *Config) table() *codec.SlotTable {
	if c.Swarm && c.SwarmTable != nil {
		return c.SwarmTable
	}
	return codec.LandTable()
}

// Interval 為半開區間 [Start, End) 的 CPU 週期。
type Interval struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (i Interval) Len() int { return i.End - i.Start }

// Outcome 為一個可能的遭遇結果。
type Outcome struct {
	Slot    codec.EncounterSlot
	PID     uint32
	IVs     codec.IVs
	Nature  codec.Nature
	Gender  codec.Gender
	Ability codec.Ability
	Shiny   bool
	Method  Method
	Cycles  Interval
}
