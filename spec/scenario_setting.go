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

// Package spec 讀取情境與產生設定（YAML / JSON），以嚴格模式解碼後初始化並檢查。
//
// 設定一律以 bytes 或 fs.FS 注入，不綁定檔案路徑。
package spec

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
)

// ScenarioSetting 一個遊戲版本中某個目標的全部搜尋條件。
type ScenarioSetting struct {
	Game        string           `yaml:"game"                  json:"game"`
	Target      string           `yaml:"target"                json:"target"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Seed        uint32           `yaml:"seed"                  json:"seed"`
	Combos      []ComboSetting   `yaml:"combos"                json:"combos"`
	Synchronize []string         `yaml:"synchronize"           json:"synchronize"`
	Methods     []wild.Method    `yaml:"methods,omitempty"     json:"methods,omitempty"`
	SwarmTable  []int            `yaml:"swarm_table,omitempty" json:"swarm_table,omitempty"`
	Objective   ObjectiveSetting `yaml:"objective"             json:"objective"`
	Search      SearchSetting    `yaml:"search"                json:"search"`

	scenario search.Scenario
}

// ComboSetting 一組欄位限制。slots 為空表示不限制。
type ComboSetting struct {
	Slots []codec.EncounterSlot `yaml:"slots" json:"slots"`
	Swarm bool                  `yaml:"swarm" json:"swarm"`
}

// SearchSetting 搜尋範圍，零值使用 search 的預設。
type SearchSetting struct {
	MaxAdvances uint64 `yaml:"max_advances" json:"max_advances"`
	ChunkSize   uint64 `yaml:"chunk_size"   json:"chunk_size"`
}

// 同步清單的特殊值
const (
	SyncNone = "none"
	SyncAll  = "all"
)

// ID 回傳 "<game>-<target>"。
func (ss *ScenarioSetting) ID() string {
	return ss.Game + "-" + ss.Target
}

// Scenario 回傳初始化後的搜尋情境。
func (ss *ScenarioSetting) Scenario() search.Scenario {
	return ss.scenario
}

// Options 把設定檔的搜尋範圍套到 base 上；base 已指定者優先。
func (ss *ScenarioSetting) Options(base search.Options) search.Options {
	if base.MaxAdvances == 0 {
		base.MaxAdvances = ss.Search.MaxAdvances
	}
	if base.ChunkSize == 0 {
		base.ChunkSize = ss.Search.ChunkSize
	}
	return base
}

func (ss *ScenarioSetting) init() error {
	ss.Game = strings.ToLower(strings.TrimSpace(ss.Game))
	ss.Target = strings.ToLower(strings.TrimSpace(ss.Target))
	if err := ss.valid(); err != nil {
		return err
	}

	syncs, err := ParseSynchronize(ss.Synchronize)
	if err != nil {
		return errs.WrapWarn(err, fmt.Sprintf("scenario %s", ss.ID()))
	}
	table, err := slotTable(ss.SwarmTable)
	if err != nil {
		return errs.WrapWarn(err, fmt.Sprintf("scenario %s", ss.ID()))
	}
	combos := make([]search.Combo, len(ss.Combos))
	for i, c := range ss.Combos {
		combos[i] = search.Combo{Slots: c.Slots, SwarmPossible: c.Swarm}
	}
	ss.scenario = search.Scenario{
		Name:        ss.ID(),
		Seed:        ss.Seed,
		Combos:      combos,
		Synchronize: syncs,
		Methods:     ss.Methods,
		SwarmTable:  table,
	}
	return nil
}

// valid 執行最基本的設定檔檢查。combos 可以為空（該版本沒有此目標）。
func (ss *ScenarioSetting) valid() error {
	if ss.Game == "" || ss.Target == "" {
		return errs.NewWarn("scenario err: game and target are required")
	}
	swarm := false
	for i, c := range ss.Combos {
		for _, s := range c.Slots {
			if !s.Valid() {
				return errs.Warnf("scenario %s err: combo %d slot %d out of range", ss.ID(), i, s)
			}
		}
		swarm = swarm || c.Swarm
	}
	for _, m := range ss.Methods {
		if !m.Valid() {
			return errs.Warnf("scenario %s err: invalid method %d", ss.ID(), m)
		}
	}
	if swarm && len(ss.SwarmTable) == 0 {
		return errs.Warnf("scenario %s err: swarm combo without swarm_table", ss.ID())
	}
	if s := ss.Search; s.MaxAdvances > 0 && s.ChunkSize > s.MaxAdvances {
		return errs.Warnf("scenario %s err: chunk_size %d exceeds max_advances %d", ss.ID(), s.ChunkSize, s.MaxAdvances)
	}
	return ss.Objective.Validate()
}

// ParseSynchronize 把名稱清單轉為隊首清單："none" 為沒有同步，"all" 為 25 種性格加上沒有同步。
// 空清單視為只有 "none"。
func ParseSynchronize(names []string) ([]*codec.Nature, error) {
	if len(names) == 0 {
		return []*codec.Nature{nil}, nil
	}
	out := make([]*codec.Nature, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case SyncNone:
			out = append(out, nil)
		case SyncAll:
			out = append(out, search.SyncAll()...)
		default:
			n, err := codec.ParseNature(name)
			if err != nil {
				return nil, err
			}
			out = append(out, &n)
		}
	}
	return out, nil
}

// slotTable 由 12 個權重建立遭遇表；空切片回傳 nil。
func slotTable(weights []int) (*codec.SlotTable, error) {
	if len(weights) == 0 {
		return nil, nil
	}
	if len(weights) != codec.SlotCount {
		return nil, fmt.Errorf("slot table needs %d weights, got %d", codec.SlotCount, len(weights))
	}
	var w [codec.SlotCount]uint8
	for i, v := range weights {
		if v < 0 || v > 100 {
			return nil, fmt.Errorf("slot weight %d out of range", v)
		}
		w[i] = uint8(v)
	}
	return codec.NewSlotTable(w)
}
