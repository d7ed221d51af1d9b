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
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func runTest([]string) error {
	PrintGreen("running tests")
	cleanCache(false)
	if err := goRun(onlyResults, "test", "./...", "-cover", "-count=1"); err != nil {
		return fmt.Errorf("tests finished with errors")
	}
	return nil
}

func runTestAll([]string) error {
	PrintGreen("running tests (all with coverage)")
	if err := cleanCache(true); err != nil {
		return err
	}
	if err := goRun(nil, "test", "./...", "-cover"); err != nil {
		return fmt.Errorf("tests (with coverage) finished with errors")
	}
	return nil
}

func runTestDetail([]string) error {
	PrintGreen("running tests (detail)")
	if err := cleanCache(true); err != nil {
		return err
	}
	if err := goRun(skipNoTests, "test", "./...", "-v", "-count=1"); err != nil {
		return fmt.Errorf("tests (detail) finished with errors")
	}
	return nil
}

// cleanCache 執行 go clean -testcache；strict 為 false 時失敗只印出。
func cleanCache(strict bool) error {
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		if strict {
			return fmt.Errorf("go clean -testcache failed: %v", err)
		}
		PrintRed(err.Error())
	}
	return nil
}

// goRun 執行 go 子指令，stdout/stderr 合併後逐行上色輸出。
// keep 為 nil 時輸出全部行。
func goRun(keep func(string) bool, args ...string) error {
	cmd := exec.Command("go", args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting go %s: %v", args[0], err)
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		if keep != nil && !keep(line) {
			continue
		}
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"):
			PrintRed(line)
		default:
			fmt.Fprintln(os.Stdout, line)
		}
	}
	if err := sc.Err(); err != nil {
		PrintRed(fmt.Sprintf("scanner error: %v", err))
	}
	return cmd.Wait()
}
