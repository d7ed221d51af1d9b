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

package spec

import (
	"strings"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/wild"
)

// GenerateSetting 單次產生的設定。未給的欄位沿用 wild.NewConfig 的預設。
type GenerateSetting struct {
	TID         uint16                `yaml:"tid"                   json:"tid"`
	SID         uint16                `yaml:"sid"                   json:"sid"`
	GenderRatio codec.GenderRatio     `yaml:"gender_ratio"          json:"gender_ratio"`
	Lead        wild.Lead             `yaml:"lead"                  json:"lead"`
	Slots       []codec.EncounterSlot `yaml:"slots,omitempty"       json:"slots,omitempty"`
	Methods     []wild.Method         `yaml:"methods,omitempty"     json:"methods,omitempty"`
	Filter      wild.Filter           `yaml:"filter"                json:"filter"`
	Swarm       bool                  `yaml:"swarm"                 json:"swarm"`
	SwarmTable  []int                 `yaml:"swarm_table,omitempty" json:"swarm_table,omitempty"`
	Timing      TimingSetting         `yaml:"timing"                json:"timing"`

	cfg *wild.Config
}

// TimingSetting 週期模型參數。
type TimingSetting struct {
	LeadPID    uint32 `yaml:"lead_pid"    json:"lead_pid"`
	LevelRange int32  `yaml:"level_range" json:"level_range"`
	// Fidelity: firmware（預設）或 coarse
	Fidelity string `yaml:"fidelity" json:"fidelity"`
}

// NewGenerateSetting 回傳帶有預設值的設定，供解碼時覆寫。
func NewGenerateSetting() *GenerateSetting {
	cfg := wild.NewConfig()
	return &GenerateSetting{
		GenderRatio: cfg.GenderRatio,
		Filter:      cfg.Filter,
		Timing:      TimingSetting{LevelRange: 1},
		cfg:         cfg,
	}
}

func (gs *GenerateSetting) init() error {
	table, err := slotTable(gs.SwarmTable)
	if err != nil {
		return errs.WrapWarn(err, "generate setting err")
	}
	cfg := wild.NewConfig()
	cfg.TID, cfg.SID = gs.TID, gs.SID
	cfg.GenderRatio = gs.GenderRatio
	cfg.Lead = gs.Lead
	cfg.Slots = gs.Slots
	if len(gs.Methods) > 0 {
		cfg.Methods = wild.Methods(gs.Methods...)
	}
	cfg.Filter = gs.Filter
	cfg.Swarm = gs.Swarm
	cfg.SwarmTable = table
	gs.cfg = cfg
	return gs.valid()
}

func (gs *GenerateSetting) valid() error {
	for _, m := range gs.Methods {
		if !m.Valid() {
			return errs.Warnf("generate setting err: invalid method %d", m)
		}
	}
	if gs.Timing.LevelRange < 1 {
		return errs.Warnf("generate setting err: level_range must be >= 1, got %d", gs.Timing.LevelRange)
	}
	if _, err := ParseFidelity(gs.Timing.Fidelity); err != nil {
		return err
	}
	if err := gs.cfg.Validate(); err != nil {
		return errs.WrapWarn(err, "generate setting err")
	}
	return nil
}

// Config 回傳設定的副本。未經解碼的零值設定回傳 wild.NewConfig 的預設。
func (gs *GenerateSetting) Config() *wild.Config {
	if gs.cfg == nil {
		return wild.NewConfig()
	}
	c := *gs.cfg
	return &c
}

// GeneratorOptions 回傳建立 wild.Generator 所需的選項。
func (gs *GenerateSetting) GeneratorOptions() []wild.Option {
	f, _ := ParseFidelity(gs.Timing.Fidelity)
	return []wild.Option{
		wild.WithLeadPID(gs.Timing.LeadPID),
		wild.WithLevelRange(gs.Timing.LevelRange),
		wild.WithFidelity(f),
	}
}

// ParseFidelity 解析週期模型名稱，空字串為 firmware。
func ParseFidelity(s string) (wild.Fidelity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "firmware":
		return wild.FidelityFirmware, nil
	case "coarse":
		return wild.FidelityCoarse, nil
	}
	return 0, errs.Warnf("unknown fidelity %q", s)
}
