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
)

// GetScenarioByYAML
// 會以嚴格模式讀取 YAML 情境設定、初始化並執行基本檢查後回傳
func GetScenarioByYAML(data []byte) (*ScenarioSetting, error) {
	ss := &ScenarioSetting{}
	if err := decodeYAML(data, ss); err != nil {
		return nil, errs.WrapWarn(err, "failed to unmarshall scenario yaml")
	}
	if err := ss.init(); err != nil {
		return nil, errs.Wrap(err, "scenario setting initialized err")
	}
	return ss, nil
}

// GetScenarioByJSON
// 會讀取 Json 情境設定、初始化並執行基本檢查後回傳
func GetScenarioByJSON(data []byte) (*ScenarioSetting, error) {
	ss := &ScenarioSetting{}
	if err := decodeJSON(data, ss); err != nil {
		return nil, errs.WrapWarn(err, "can not unmarshall scenario json")
	}
	if err := ss.init(); err != nil {
		return nil, errs.Wrap(err, "scenario setting initialized err")
	}
	return ss, nil
}

// GetGenerateSettingByYAML 讀取單次產生的設定。
func GetGenerateSettingByYAML(data []byte) (*GenerateSetting, error) {
	gs := NewGenerateSetting()
	if err := decodeYAML(data, gs); err != nil {
		return nil, errs.WrapWarn(err, "failed to unmarshall generate yaml")
	}
	if err := gs.init(); err != nil {
		return nil, errs.Wrap(err, "generate setting initialized err")
	}
	return gs, nil
}

// GetGenerateSettingByJSON 讀取單次產生的設定。
func GetGenerateSettingByJSON(data []byte) (*GenerateSetting, error) {
	gs := NewGenerateSetting()
	if err := decodeJSON(data, gs); err != nil {
		return nil, errs.WrapWarn(err, "can not unmarshall generate json")
	}
	if err := gs.init(); err != nil {
		return nil, errs.Wrap(err, "generate setting initialized err")
	}
	return gs, nil
}
