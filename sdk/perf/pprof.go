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

// Package perf 在 CLI 執行期間收集 pprof 檔案。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/rnglab/errs"
)

// DefaultDir pprof 檔案寫入路徑
const DefaultDir = "build/profiling"

// Run 依 mode 執行 exe 並寫出對應 profile：
//   - ""：只執行
//   - cpu：exe 期間的 CPU profile
//   - heap / allocs：exe 結束後的快照
func Run(dir, mode string, exe func() error) error {
	switch mode {
	case "":
		return exe()
	case "cpu":
		return CPU(dir, exe)
	case "heap", "allocs":
		if err := exe(); err != nil {
			return err
		}
		return Snapshot(dir, mode)
	}
	return errs.Warnf("unknown pprof mode %q (cpu|heap|allocs)", mode)
}

func create(dir, name string) (*os.File, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create pprof dir failed")
	}
	f, err := os.Create(filepath.Join(dir, name+".pprof"))
	if err != nil {
		return nil, errs.Wrap(err, "create "+name+".pprof failed")
	}
	return f, nil
}

func CPU(dir string, exe func() error) error {
	f, err := create(dir, "cpu")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile failed")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// Snapshot 寫出 heap 或 allocs profile；heap 前先 GC 讓快照貼近最新狀態。
func Snapshot(dir, name string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return errs.Warnf("unknown profile %q", name)
	}
	if name == "heap" {
		runtime.GC()
	}
	f, err := create(dir, name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+name+" profile failed")
	}
	return nil
}
