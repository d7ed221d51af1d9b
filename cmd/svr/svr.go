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

// svr 啟動 HTTP 搜尋服務。
//
//	go run ./cmd/svr -addr :5808 -slots 4 -log prod
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/scenarios"
	"github.com/zintix-labs/rnglab/server"
	"github.com/zintix-labs/rnglab/server/logger"
	"github.com/zintix-labs/rnglab/server/svrcfg"
)

func main() {
	sCfg, closeLog, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	err = server.Run(sCfg)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

type config struct {
	addr    string
	logMode string
	slots   int
	workers int
	timeout time.Duration
	dir     string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, func(), error) {
	cfg := new(config)
	flag.StringVar(&cfg.addr, "addr", svrcfg.DefaultAddr, "listen address")
	flag.StringVar(&cfg.logMode, "log", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.slots, "slots", 3, "concurrent searches (1..16)")
	flag.IntVar(&cfg.workers, "worker", 0, "workers per search, 0 uses all CPUs")
	flag.DurationVar(&cfg.timeout, "timeout", svrcfg.DefaultTimeout, "per-request search timeout")
	flag.StringVar(&cfg.dir, "dir", "", "extra scenario directory (yaml/json)")
	flag.Parse()

	mode, err := logger.ParseLogMode(cfg.logMode)
	if err != nil {
		return nil, nil, err
	}
	log, ah := logger.NewAsync(4096, mode)

	cfgs := rnglab.Configs(scenarios.FS)
	if cfg.dir != "" {
		cfgs = append(cfgs, os.DirFS(cfg.dir))
	}
	lab, err := rnglab.NewAuto(cfgs, rnglab.WithLogger(log))
	if err != nil {
		ah.Close()
		return nil, nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:     log,
		Addr:    cfg.addr,
		Slots:   cfg.slots,
		Workers: cfg.workers,
		Timeout: cfg.timeout,
		Lab:     lab,
	}
	return sCfg, ah.Close, nil
}
