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
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/codec"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
	"github.com/zintix-labs/rnglab/sizing"
)

// ObjectiveSetting 搜尋目標。所有條件取交集；零值接受任何結果。
type ObjectiveSetting struct {
	Largest  bool             `yaml:"largest"             json:"largest"`
	MinScale uint16           `yaml:"min_scale,omitempty" json:"min_scale,omitempty"`
	Shiny    wild.ShinyFilter `yaml:"shiny,omitempty"     json:"shiny,omitempty"`
	Nature   *codec.Nature    `yaml:"nature,omitempty"    json:"nature,omitempty"`
	Gender   *codec.Gender    `yaml:"gender,omitempty"    json:"gender,omitempty"`
	Ability  *codec.Ability   `yaml:"ability,omitempty"   json:"ability,omitempty"`
	IVs      *codec.IVRange   `yaml:"ivs,omitempty"       json:"ivs,omitempty"`
}

// Validate 檢查 IV 範圍與性格是否合法。
func (o *ObjectiveSetting) Validate() error {
	if o.IVs != nil {
		if err := o.IVs.Validate(); err != nil {
			return errs.WrapWarn(err, "objective err")
		}
	}
	if o.Nature != nil && !o.Nature.Valid() {
		return errs.Warnf("objective err: nature %d out of range", uint8(*o.Nature))
	}
	return nil
}

// Objective 組合出搜尋用的判斷函數。
func (o ObjectiveSetting) Objective() search.Objective {
	checks := make([]func(wild.Outcome) bool, 0, 6)
	if o.Largest {
		checks = append(checks, sizing.Largest)
	} else if o.MinScale > 0 {
		checks = append(checks, sizing.AtLeast(o.MinScale))
	}
	switch o.Shiny {
	case wild.ShinyOnly:
		checks = append(checks, func(x wild.Outcome) bool { return x.Shiny })
	case wild.ShinyNever:
		checks = append(checks, func(x wild.Outcome) bool { return !x.Shiny })
	}
	if o.Nature != nil {
		n := *o.Nature
		checks = append(checks, func(x wild.Outcome) bool { return x.Nature == n })
	}
	if o.Gender != nil {
		g := *o.Gender
		checks = append(checks, func(x wild.Outcome) bool { return x.Gender == g })
	}
	if o.Ability != nil {
		a := *o.Ability
		checks = append(checks, func(x wild.Outcome) bool { return x.Ability == a })
	}
	if o.IVs != nil {
		r := *o.IVs
		checks = append(checks, func(x wild.Outcome) bool { return r.Contains(x.IVs) })
	}
	return func(x wild.Outcome) bool {
		for _, c := range checks {
			if !c(x) {
				return false
			}
		}
		return true
	}
}
