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

// Package scenarios 內建的情境設定檔（Ruby / Sapphire / Emerald × Lotad / Seedot）。
package scenarios

import (
	"embed"

	"github.com/zintix-labs/rnglab/catalog"
)

// FS provides embedded default scenario YAMLs for external usage.
//
//go:embed *.yaml
var FS embed.FS

// New 以內建情境建立 catalog 並凍結。
func New() (*catalog.Catalog, error) {
	c, err := catalog.New(FS)
	if err != nil {
		return nil, err
	}
	if err := c.LoadAll(); err != nil {
		return nil, err
	}
	c.Freeze()
	return c, nil
}
