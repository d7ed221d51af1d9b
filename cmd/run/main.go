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

// run 以命令列搜尋內建（或外部目錄）情境，輸出統計摘要與逐筆結果。
//
//	go run ./cmd/run -scenario emerald-seedot
//	go run ./cmd/run -target lotad -max 2000000 -format yaml
package main

import (
	"log"

	"github.com/zintix-labs/rnglab/sdk/perf"
)

func main() {
	bindVar()
	if err := perf.Run(perf.DefaultDir, cfg.pprofmode, executeSearch); err != nil {
		log.Fatal(err)
	}
}
