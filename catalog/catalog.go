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

// Package catalog 從 fs.FS 載入情境設定，以 "<game>-<target>" 為 ID 建立索引。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/search"
	"github.com/zintix-labs/rnglab/spec"
)

var (
	ErrDupID     = errs.NewFatal("duplicate scenario id")
	ErrDupConfig = errs.NewFatal("duplicate config name")
)

// Entry 一個已註冊的情境。
type Entry struct {
	ID         string
	Game       string
	Target     string
	ConfigName string
	setting    *spec.ScenarioSetting
}

// Setting 回傳已初始化的設定。
func (e Entry) Setting() *spec.ScenarioSetting { return e.setting }

// Summary 對外列表用。
type Summary struct {
	ID          string `json:"id"`
	Game        string `json:"game"`
	Target      string `json:"target"`
	Description string `json:"description,omitempty"`
	Seed        uint32 `json:"seed"`
	Combos      int    `json:"combos"`
	Setups      int    `json:"setups"`
}

type Catalog struct {
	byID   map[string]Entry
	ids    []string            // 用來穩定排序
	unique map[string]struct{} // 一個設定檔只能註冊一次
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byID:   map[string]Entry{},
		ids:    make([]string, 0, 16),
		unique: map[string]struct{}{},
		config: multFS,
		frozen: false,
	}, nil
}

// Register 解析並註冊指定的設定檔；任一檔案失敗時整批不生效。
func (c *Catalog) Register(configNames ...string) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	pending := make([]Entry, 0, len(configNames))
	seenID := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for _, name := range configNames {
		if err := validFileName(name); err != nil {
			return err
		}
		if _, ok := c.unique[name]; ok {
			return errs.WrapWithExtra(ErrDupConfig, "register", name)
		}
		if _, ok := seenCfg[name]; ok {
			return errs.WrapWithExtra(ErrDupConfig, "register", name)
		}
		ss, err := c.parse(name)
		if err != nil {
			return err
		}
		id := ss.ID()
		if _, ok := c.byID[id]; ok {
			return errs.WrapWithExtra(ErrDupID, "register", id)
		}
		if _, ok := seenID[id]; ok {
			return errs.WrapWithExtra(ErrDupID, "register", id)
		}
		seenID[id] = struct{}{}
		seenCfg[name] = struct{}{}
		pending = append(pending, Entry{ID: id, Game: ss.Game, Target: ss.Target, ConfigName: name, setting: ss})
	}
	for _, e := range pending {
		c.unique[e.ConfigName] = struct{}{}
		c.byID[e.ID] = e
		c.ids = append(c.ids, e.ID)
	}
	slices.Sort(c.ids)
	return nil
}

// LoadAll 註冊 FS 中所有尚未註冊的設定檔，依檔名排序。
func (c *Catalog) LoadAll() error {
	names := make([]string, 0, len(c.config.index))
	for name := range c.config.index {
		if _, ok := c.unique[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return c.Register(names...)
}

func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.byID[normalize(id)]
	return e, ok
}

// Scenario 回傳指定 ID 的設定。
func (c *Catalog) Scenario(id string) (*spec.ScenarioSetting, error) {
	e, ok := c.Get(id)
	if !ok {
		return nil, errs.Warnf("scenario %q dose not exist in catalog", id)
	}
	return e.setting, nil
}

// ByTarget 回傳同一目標在各版本的設定，依 ID 排序。
func (c *Catalog) ByTarget(target string) []*spec.ScenarioSetting {
	target = normalize(target)
	out := make([]*spec.ScenarioSetting, 0, 3)
	for _, id := range c.ids {
		if e := c.byID[id]; e.Target == target {
			out = append(out, e.setting)
		}
	}
	return out
}

// Targets 回傳所有目標名稱（去重、排序）。
func (c *Catalog) Targets() []string {
	out := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id].Target)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (c *Catalog) IDs() []string {
	if len(c.ids) == 0 {
		return nil
	}
	return append([]string(nil), c.ids...)
}

func (c *Catalog) All() []Entry {
	m := make([]Entry, 0, len(c.ids))
	for _, id := range c.ids {
		m = append(m, c.byID[id])
	}
	return m
}

func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(c.ids))
	for _, e := range c.All() {
		ss := e.setting
		sc := ss.Scenario()
		out = append(out, Summary{
			ID:          e.ID,
			Game:        e.Game,
			Target:      e.Target,
			Description: ss.Description,
			Seed:        sc.Seed,
			Combos:      len(sc.Combos),
			Setups:      len(search.Enumerate(sc)),
		})
	}
	return out
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

func (c *Catalog) parse(name string) (*spec.ScenarioSetting, error) {
	src, ok := c.config.GetFS(name)
	if !ok {
		return nil, errs.NewFatal(fmt.Sprintf("config file not found: %s", name))
	}
	raw, err := fs.ReadFile(src, name)
	if err != nil {
		return nil, errs.Wrap(err, "catalog parse file error")
	}
	ss, err := parseScenarioByExt(name, raw)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "catalog parse file error", name)
	}
	return ss, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	// 1) 不能包含路徑或類似字元
	if strings.ContainsAny(file, `/\:`) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must be a basename; no / \\ :) ", file))
	}
	// 2) 必須以 .yaml/.yml/.json 結尾（大小寫不敏感）
	if !isConfigFile(file) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file))
	}
	// 3) 不能以 . 開頭
	if strings.HasPrefix(file, ".") {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (cannot start with '.')", file))
	}
	return nil
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func parseScenarioByExt(filename string, raw []byte) (*spec.ScenarioSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetScenarioByYAML(raw)
	case ".json":
		return spec.GetScenarioByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", filename))
	}
}
