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

	"github.com/zintix-labs/rnglab/dto"
)

// Generate 列出單一 seed 的產生結果（POST /v1/generate）。
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeGenerateRequest(r)
	if err != nil {
		h.fail(w, r, "v1.generate", err)
		return
	}
	seed, gs, err := req.Parse()
	if err != nil {
		h.fail(w, r, "v1.generate", err)
		return
	}
	ctx, cancel := h.context(r)
	defer cancel()
	outs, err := h.rt.Generate(ctx, seed, gs)
	if err != nil {
		h.fail(w, r, "v1.generate", err)
		return
	}
	writeJSON(w, r, dto.NewGenerateResponse(seed, outs))
}

// Advance 計算推進後的 seed（GET /v1/advance?seed=&n=）。純計算，不佔 slot。
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeAdvanceRequest(r)
	if err != nil {
		h.fail(w, r, "v1.advance", err)
		return
	}
	writeJSON(w, r, dto.NewAdvanceResponse(req.Seed, req.Advance))
}

// Cycles 查詢取餘例程的週期數（GET /v1/cycles?dividend=&divisor=&signed=）。
func (h *Handler) Cycles(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeCyclesRequest(r)
	if err != nil {
		h.fail(w, r, "v1.cycles", err)
		return
	}
	writeJSON(w, r, dto.NewCyclesResponse(req))
}
