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

// Package rnglab 提供 rnglab 的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// Lab 把下列地基組裝在一起：
//  1. Catalog：情境目錄，定義有哪些遊戲版本 × 目標，以及各自的設定檔。
//  2. Generator：野生遭遇產生器（含週期模型），所有搜尋共用。
//  3. Logger：log/slog，預設靜音。
//
// 設計重點：
//   - Lab 本身不綁定任何「檔案路徑」概念：設定檔來源一律以 fs.FS 的形式注入。
//   - 產生與搜尋皆為純計算，Lab 建好並 Freeze 後可在多個 goroutine 間共用。
//   - 對外服務時請透過 BuildRuntime 取得有上限的 SearchRuntime。
package rnglab

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/zintix-labs/rnglab/catalog"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/scenarios"
	"github.com/zintix-labs/rnglab/sdk/core"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/search"
	"github.com/zintix-labs/rnglab/spec"
)

// Configs 用來把一或多個設定檔來源（fs.FS）打包成 New() 需要的參數。
//
// 可以用 go:embed 把設定編進 binary，也可以用 os.DirFS 在本機開發時讀取目錄。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Option 調整 Lab。
type Option func(*Lab)

// WithLogger 指定 logger；nil 表示靜音。
func WithLogger(l *slog.Logger) Option {
	return func(lab *Lab) {
		if l != nil {
			lab.log = l
		}
	}
}

// WithGenerator 指定搜尋與產生使用的產生器（例如不同的隊首 PID 或週期模型）。
func WithGenerator(g *wild.Generator) Option {
	return func(lab *Lab) {
		if g != nil {
			lab.gen = g
		}
	}
}

// Lab 是組裝器與運行入口。
//
// 使用流程通常分成兩階段：
//
//   - 註冊/組裝階段：建立 catalog、載入情境設定、檢查重複與缺漏。
//   - 執行階段：Freeze 之後產生、搜尋。
//
// 範例：
//
//	lab, _ := rnglab.NewAuto(rnglab.Configs(scenarios.FS))
//	res, _ := lab.SearchScenario(ctx, "emerald-seedot", nil, search.Options{})
type Lab struct {
	cat *catalog.Catalog
	gen *wild.Generator
	log *slog.Logger
	sum []catalog.Summary
}

// New 建立一個 Lab instance，尚未註冊任何情境。
func New(cfgs []fs.FS, opts ...Option) (*Lab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	cata, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	lab := &Lab{
		cat: cata,
		gen: wild.NewGenerator(),
		log: slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(lab)
	}
	return lab, nil
}

// NewAuto 建立一個直接進入執行階段的 Lab：註冊所有設定檔並 Freeze。
func NewAuto(cfgs []fs.FS, opts ...Option) (*Lab, error) {
	lab, err := New(cfgs, opts...)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

// NewDefault 以內建情境建立 Lab。
func NewDefault(opts ...Option) (*Lab, error) {
	return NewAuto(Configs(scenarios.FS), opts...)
}

func (l *Lab) Register(configNames ...string) error {
	return l.cat.Register(configNames...)
}

// RegisterAll 註冊所有設定檔；任一檔案失敗時整批不生效。
func (l *Lab) RegisterAll() error {
	if err := l.cat.LoadAll(); err != nil {
		return err
	}
	if len(l.cat.IDs()) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	l.log.Info("lab.registered", slog.Any("scenarios", l.cat.IDs()))
	return nil
}

func (l *Lab) Freeze() {
	l.cat.Freeze()
}

func (l *Lab) IDs() []string {
	return l.cat.IDs()
}

func (l *Lab) All() []catalog.Entry {
	return l.cat.All()
}

func (l *Lab) Targets() []string {
	return l.cat.Targets()
}

func (l *Lab) Logger() *slog.Logger {
	return l.log
}

func (l *Lab) Generator() *wild.Generator {
	return l.gen
}

func (l *Lab) Summary() ([]catalog.Summary, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if l.sum == nil {
		l.sum = l.cat.Summaries()
	}
	return l.sum, nil
}

// Scenario 回傳指定 ID 的情境設定。
func (l *Lab) Scenario(id string) (*spec.ScenarioSetting, error) {
	return l.cat.Scenario(id)
}

// Generate 以 Lab 的產生器列出 seed 可能產生的所有結果。
func (l *Lab) Generate(seed uint32, cfg *wild.Config) ([]wild.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errs.WrapWarn(err, "invalid config")
	}
	return l.gen.Generate(core.New(seed), cfg), nil
}

// GenerateSetting 以設定檔自帶的週期參數產生，不使用 Lab 的產生器。
func (l *Lab) GenerateSetting(seed uint32, gs *spec.GenerateSetting) []wild.Outcome {
	return wild.NewGenerator(gs.GeneratorOptions()...).Generate(core.New(seed), gs.Config())
}

// AdvanceSeed 回傳 seed 推進 n 次後的狀態。
func (l *Lab) AdvanceSeed(seed uint32, n uint64) uint32 {
	return wild.AdvanceSeed(seed, n)
}

// SearchEarliest 搜尋單一 Setup。
func (l *Lab) SearchEarliest(ctx context.Context, setup search.Setup, obj search.Objective, opts search.Options) (search.Result, error) {
	return search.SearchEarliest(ctx, setup, obj, l.options(opts))
}

// SearchScenario 對目錄中的情境執行 search.SearchAll。obj 為 nil 時使用情境設定的目標。
func (l *Lab) SearchScenario(ctx context.Context, id string, obj search.Objective, opts search.Options) ([]search.Result, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	ss, err := l.cat.Scenario(id)
	if err != nil {
		return nil, err
	}
	return l.searchSetting(ctx, ss, obj, opts)
}

// SearchTarget 對同一目標的所有遊戲版本搜尋並合併排序。
func (l *Lab) SearchTarget(ctx context.Context, target string, obj search.Objective, opts search.Options) ([]search.Result, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	settings := l.cat.ByTarget(target)
	if len(settings) == 0 {
		return nil, errs.Warnf("target %q dose not exist in catalog", target)
	}
	lists := make([][]search.Result, 0, len(settings))
	for _, ss := range settings {
		rs, err := l.searchSetting(ctx, ss, obj, opts)
		if err != nil {
			return nil, err
		}
		lists = append(lists, rs)
	}
	return search.Merge(lists...), nil
}

func (l *Lab) searchSetting(ctx context.Context, ss *spec.ScenarioSetting, obj search.Objective, opts search.Options) ([]search.Result, error) {
	if obj == nil {
		obj = ss.Objective.Objective()
	}
	start := time.Now()
	rs, err := search.SearchAll(ctx, ss.Scenario(), obj, l.options(ss.Options(opts)))
	if err != nil {
		l.log.Warn("lab.search", slog.String("scenario", ss.ID()), slog.String("err", err.Error()))
		return nil, err
	}
	l.log.Info("lab.search",
		slog.String("scenario", ss.ID()),
		slog.Int("results", len(rs)),
		slog.Duration("used", time.Since(start)),
	)
	return rs, nil
}

func (l *Lab) options(opts search.Options) search.Options {
	if opts.Generator == nil {
		opts.Generator = l.gen
	}
	if opts.Logger == nil {
		opts.Logger = l.log
	}
	return opts
}
