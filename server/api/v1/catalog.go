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

package v1

import (
	"net/http"

	"github.com/zintix-labs/rnglab"
	"github.com/zintix-labs/rnglab/catalog"
	"github.com/zintix-labs/rnglab/dto"
)

type scenariosResponse struct {
	Schema    string            `json:"schema"`
	Targets   []string          `json:"targets"`
	Scenarios []catalog.Summary `json:"scenarios"`
}

// Scenarios 列出目錄中的情境（GET /v1/scenarios?target=）。
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	lab := h.rt.Lab()
	sum, err := lab.Summary()
	if err != nil {
		h.fail(w, r, "v1.scenarios", err)
		return
	}
	target := r.URL.Query().Get("target")
	out := make([]catalog.Summary, 0, len(sum))
	for _, s := range sum {
		if target == "" || s.Target == target {
			out = append(out, s)
		}
	}
	writeJSON(w, r, scenariosResponse{Schema: dto.Schema, Targets: lab.Targets(), Scenarios: out})
}

type runtimeResponse struct {
	Schema  string                `json:"schema"`
	Runtime rnglab.RuntimeMetrics `json:"runtime"`
}

// Metrics 回傳搜尋 runtime 的觀測快照（GET /v1/runtime）。
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, runtimeResponse{Schema: dto.Schema, Runtime: h.rt.Metrics()})
}
