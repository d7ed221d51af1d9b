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
	"fmt"
	"os"
	"sort"
	"strings"
)

// task 一個開發用指令。
type task struct {
	desc string
	run  func(args []string) error
}

var tasks = map[string]task{
	"test":        {"go test ./... -cover -count=1, only ok/FAIL lines", runTest},
	"test-all":    {"go test ./... -cover", runTestAll},
	"test-detail": {"go test ./... -v -count=1 without [no test files]", runTestDetail},
	"scenarios":   {"list built-in scenarios", runScenarios},
	"cycles":      {"ModU cycle summary, e.g. cycles 25 0xFFFF", runCycles},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		PrintYellow(fmt.Sprintf("Unknown task: %s", os.Args[1]))
		usage()
		os.Exit(1)
	}
	if err := t.run(os.Args[2:]); err != nil {
		PrintRed(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: go run ./scripts [task]")
	names := make([]string, 0, len(tasks))
	for n := range tasks {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].desc)
	}
}

func runScenarios([]string) error {
	PrintGreen("built-in scenarios")
	return goRun(nil, "run", "./cmd/run", "-list")
}

func runCycles(args []string) error {
	divisor, hi := "25", "0xFFFF"
	if len(args) > 0 {
		divisor = args[0]
	}
	if len(args) > 1 {
		hi = args[1]
	}
	PrintGreen(fmt.Sprintf("ModU(x, %s) for x in [0, %s]", divisor, hi))
	return goRun(nil, "run", "./cmd/gen", "-cycles", "-divisor", divisor, "-hi", hi)
}

// onlyResults 等同 grep -E '^(ok|FAIL)'，另外保留編譯失敗的訊息。
func onlyResults(line string) bool {
	return strings.HasPrefix(line, "ok") || strings.HasPrefix(line, "FAIL") ||
		strings.Contains(line, "build failed") || strings.Contains(line, "setup failed")
}

func skipNoTests(line string) bool {
	return !strings.Contains(line, "[no test files]")
}
