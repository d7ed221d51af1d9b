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

// gen 列出 seed 的產生結果，或統計取餘例程的週期分布。
//
//	go run ./cmd/gen -seed 0x5A0 -from 0 -count 10000 -setting gen.yaml
//	go run ./cmd/gen -cycles -divisor 25 -hi 0xFFFF -format yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/corefmt"
	"github.com/zintix-labs/rnglab/errs"
	"github.com/zintix-labs/rnglab/sdk/cycle"
	"github.com/zintix-labs/rnglab/sdk/perf"
	"github.com/zintix-labs/rnglab/sdk/wild"
	"github.com/zintix-labs/rnglab/spec"
	"github.com/zintix-labs/rnglab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	seed      string
	from      string
	count     uint64
	setting   string
	workers   int
	cycles    bool
	divisor   string
	lo        string
	hi        string
	format    string
	pprofmode string
}

var cfg = new(config)

func main() {
	log.SetFlags(0)
	flag.StringVar(&cfg.seed, "seed", "0", "initial seed (hex with 0x or decimal)")
	flag.StringVar(&cfg.from, "from", "0", "first advance")
	flag.Uint64Var(&cfg.count, "count", 1, "number of advances to scan")
	flag.StringVar(&cfg.setting, "setting", "", "generate setting file (yaml/json), empty uses defaults")
	flag.IntVar(&cfg.workers, "worker", 4, "number of workers")
	flag.BoolVar(&cfg.cycles, "cycles", false, "summarize ModU cycle counts instead of generating")
	flag.StringVar(&cfg.divisor, "divisor", "25", "divisor for -cycles, 1..0xFFFFFFFF")
	flag.StringVar(&cfg.lo, "lo", "0", "first dividend for -cycles")
	flag.StringVar(&cfg.hi, "hi", "0xFFFF", "last dividend for -cycles (inclusive)")
	flag.StringVar(&cfg.format, "format", "text", "cycles report format: text|json|yaml")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.Parse()

	exe := generate
	if cfg.cycles {
		exe = cycles
	}
	if err := perf.Run(perf.DefaultDir, cfg.pprofmode, exe); err != nil {
		log.Fatal(err)
	}
}

func loadSetting(path string) (*spec.GenerateSetting, error) {
	if path == "" {
		return spec.GetGenerateSettingByYAML(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return spec.GetGenerateSettingByJSON(data)
	}
	return spec.GetGenerateSettingByYAML(data)
}

func generate() error {
	seed, err := corefmt.ParseSeed(cfg.seed)
	if err != nil {
		return err
	}
	from, err := corefmt.ParseAdvance(cfg.from)
	if err != nil {
		return err
	}
	gs, err := loadSetting(cfg.setting)
	if err != nil {
		return err
	}
	lab, err := rnglab.NewDefault(rnglab.WithGenerator(wildGenerator(gs)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rows, used, err := lab.Scan(ctx, seed, gs.Config(), from, cfg.count, cfg.workers, cfg.count > rnglab.MaxScan/16)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	header := []string{"Advance", "Seed", "Slot", "PID", "Nature", "Gender", "Ability", "Shiny", "IVs", "Method", "Cycles"}
	width := make([]int, len(header))
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		for _, o := range r.Outcomes {
			lines = append(lines, []string{
				p.Sprintf("%d", r.Advance), corefmt.FormatSeed(r.Seed), fmt.Sprint(o.Slot),
				corefmt.FormatPID(o.PID), o.Nature.String(), o.Gender.String(), o.Ability.String(),
				fmt.Sprint(o.Shiny), o.IVs.String(), o.Method.String(),
				fmt.Sprintf("%d-%d", o.Cycles.Start, o.Cycles.End),
			})
		}
	}
	for i, h := range header {
		width[i] = runewidth.StringWidth(h)
	}
	for _, l := range lines {
		for i, c := range l {
			width[i] = max(width[i], runewidth.StringWidth(c))
		}
	}
	printRow := func(cells []string) {
		for i, c := range cells {
			fmt.Print(runewidth.FillRight(c, width[i]+2))
		}
		fmt.Println()
	}
	printRow(header)
	for _, l := range lines {
		printRow(l)
	}
	p.Printf("%d outcomes on %d advances, used %v\n", len(lines), len(rows), used)
	return nil
}

// parseDivisor 解析 -divisor，超出 32-bit 或為 0 時回傳 Warn，不做截斷。
func parseDivisor(s string) (uint32, error) {
	v, err := corefmt.ParseAdvance(s)
	if err != nil {
		return 0, err
	}
	if v == 0 || v > math.MaxUint32 {
		return 0, errs.Warnf("divisor %s out of range [1, %d]", s, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

func cycles() error {
	lo, err := corefmt.ParseSeed(cfg.lo)
	if err != nil {
		return err
	}
	hi, err := corefmt.ParseSeed(cfg.hi)
	if err != nil {
		return err
	}
	div, err := parseDivisor(cfg.divisor)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	dist, err := cycle.DistributionModU(ctx, div, lo, hi, cfg.workers)
	if err != nil {
		return err
	}
	rep := stats.SummarizeCycles(div, lo, hi, dist)
	if cfg.format != "text" {
		return stats.RenderByName(cfg.format).Write(os.Stdout, rep)
	}
	longest, err := cycle.LongestModU(ctx, div, lo, hi, cfg.workers)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Printf("ModU(x, %d) for x in [%d, %d]: %d dividends\n", div, lo, hi, rep.Total)
	p.Printf("min=%d max=%d mode=%d median=%d mean=%.3f std=%.3f\n", rep.Min, rep.Max, rep.Mode, rep.Median, rep.Mean, rep.Std)
	p.Printf("longest: x=%d (%d cycles)\n", longest.Dividend, longest.Cycles)
	return nil
}

func wildGenerator(gs *spec.GenerateSetting) *wild.Generator {
	return wild.NewGenerator(gs.GeneratorOptions()...)
}
