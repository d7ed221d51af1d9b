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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/scenarios"
	"github.com/zintix-labs/rnglab/search"
	"github.com/zintix-labs/rnglab/server/logger"
	"github.com/zintix-labs/rnglab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg = new(config)

type config struct {
	scenario  string
	target    string
	dir       string
	start     uint64
	max       uint64
	chunk     uint64
	workers   int
	format    string
	results   bool
	list      bool
	logMode   string
	pprofmode string
}

func bindVar() {
	flag.StringVar(&cfg.scenario, "scenario", "", "scenario id, e.g. emerald-seedot")
	flag.StringVar(&cfg.target, "target", "", "search every game for a target, e.g. lotad")
	flag.StringVar(&cfg.dir, "dir", "", "extra scenario directory (yaml/json)")
	flag.Uint64Var(&cfg.start, "start", 0, "first advance (inclusive)")
	flag.Uint64Var(&cfg.max, "max", 0, "last advance (exclusive), 0 uses the scenario setting")
	flag.Uint64Var(&cfg.chunk, "chunk", 0, "advances per chunk between cancellation checks")
	flag.IntVar(&cfg.workers, "worker", 0, "number of workers, 0 uses all CPUs")
	flag.StringVar(&cfg.format, "format", "text", "report format: text|json|yaml")
	flag.BoolVar(&cfg.results, "results", true, "print every setup result (text format)")
	flag.BoolVar(&cfg.list, "list", false, "list scenarios and exit")
	flag.StringVar(&cfg.logMode, "log", "silence", "log mode: dev|prod|silence")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.Parse()
}

func (c *config) valid() error {
	if c.list {
		return nil
	}
	if (c.scenario == "") == (c.target == "") {
		return fmt.Errorf("value err : exactly one of -scenario or -target is required")
	}
	if c.max != 0 && c.start >= c.max {
		return fmt.Errorf("value err : start must be less than max")
	}
	switch c.format {
	case "text", "json", "yaml", "yml":
	default:
		return fmt.Errorf("value err : unknown format %q", c.format)
	}
	return nil
}

func newLab() (*rnglab.Lab, error) {
	mode, err := logger.ParseLogMode(cfg.logMode)
	if err != nil {
		return nil, err
	}
	cfgs := rnglab.Configs(scenarios.FS)
	if cfg.dir != "" {
		cfgs = append(cfgs, os.DirFS(cfg.dir))
	}
	return rnglab.NewAuto(cfgs, rnglab.WithLogger(logger.New(mode)))
}

func executeSearch() error {
	if err := cfg.valid(); err != nil {
		return err
	}
	lab, err := newLab()
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	if cfg.list {
		sum, err := lab.Summary()
		if err != nil {
			return err
		}
		for _, s := range sum {
			p.Printf("%-18s seed=%#08x combos=%d setups=%d\n", s.ID, s.Seed, s.Combos, s.Setups)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	opts := search.Options{
		StartAdvance: cfg.start,
		MaxAdvances:  cfg.max,
		ChunkSize:    cfg.chunk,
		Workers:      cfg.workers,
		ShowProgress: cfg.format == "text",
	}

	name := cfg.scenario
	green, reset := "\033[1;32m", "\033[0m"
	start := time.Now()
	var rs []search.Result
	if cfg.target != "" {
		name = cfg.target
		if cfg.format == "text" {
			p.Printf("%s[TARGET:%s] [GAMES:%d]%s\n", green, name, len(lab.IDs()), reset)
		}
		rs, err = lab.SearchTarget(ctx, cfg.target, nil, opts)
	} else {
		if cfg.format == "text" {
			p.Printf("%s[SCENARIO:%s] [WORKERS:%d]%s\n", green, name, cfg.workers, reset)
		}
		rs, err = lab.SearchScenario(ctx, cfg.scenario, nil, opts)
	}
	if err != nil {
		return err
	}
	used := time.Since(start)

	rep := stats.Summarize(name, rs)
	if cfg.format != "text" {
		return rep.WriteWith(os.Stdout, stats.RenderByName(cfg.format))
	}
	rep.StdOut(os.Stdout, used)
	if cfg.results {
		fmt.Println(stats.ResultTable(rs))
	}
	return nil
}

func init() {
	log.SetFlags(0)
}
